package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
)

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) error {
	query := `
		INSERT INTO reports (
			id, user_id, title, report_type, file_url, file_public_id, file_type,
			report_date, hospital_name, doctor_name, notes, analyzed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	report.CreatedAt = time.Now()
	report.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.UserID,
		report.Title,
		report.ReportType,
		report.FileURL,
		report.FilePublicID,
		report.FileType,
		report.ReportDate,
		report.HospitalName,
		report.DoctorName,
		report.Notes,
		report.Analyzed,
		report.CreatedAt,
		report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id, userID uuid.UUID) (*model.Report, error) {
	query := `SELECT * FROM reports WHERE id = $1 AND user_id = $2`
	var report model.Report
	if err := r.db.GetContext(ctx, &report, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return &report, nil
}

func (r *reportRepository) List(ctx context.Context, userID uuid.UUID) ([]*model.Report, error) {
	query := `SELECT * FROM reports WHERE user_id = $1 ORDER BY report_date DESC`
	reports := []*model.Report{}
	if err := r.db.SelectContext(ctx, &reports, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}

func (r *reportRepository) Update(ctx context.Context, report *model.Report) error {
	query := `
		UPDATE reports SET
			title = $1, report_type = $2, report_date = $3,
			hospital_name = $4, doctor_name = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
	`
	report.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		report.Title,
		report.ReportType,
		report.ReportDate,
		report.HospitalName,
		report.DoctorName,
		report.Notes,
		report.UpdatedAt,
		report.ID,
		report.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM reports WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *reportRepository) MarkAnalyzed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE reports SET analyzed = true, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark report analyzed: %w", err)
	}
	return nil
}
