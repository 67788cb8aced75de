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

const defaultVitalsLimit = 50

type vitalsRepository struct {
	db *sqlx.DB
}

func NewVitalsRepository(db *sqlx.DB) repository.VitalsRepository {
	return &vitalsRepository{db: db}
}

func (r *vitalsRepository) Create(ctx context.Context, vitals *model.Vitals) error {
	query := `
		INSERT INTO vitals (
			id, user_id, date, systolic, diastolic, blood_sugar, blood_sugar_type,
			weight, height, bmi, heart_rate, temperature, oxygen_level,
			notes, symptoms, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	vitals.CreatedAt = time.Now()
	vitals.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		vitals.ID,
		vitals.UserID,
		vitals.Date,
		vitals.Systolic,
		vitals.Diastolic,
		vitals.BloodSugar,
		vitals.BloodSugarType,
		vitals.Weight,
		vitals.Height,
		vitals.BMI,
		vitals.HeartRate,
		vitals.Temperature,
		vitals.OxygenLevel,
		vitals.Notes,
		vitals.Symptoms,
		vitals.CreatedAt,
		vitals.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create vitals: %w", err)
	}
	return nil
}

func (r *vitalsRepository) Get(ctx context.Context, id, userID uuid.UUID) (*model.Vitals, error) {
	query := `SELECT * FROM vitals WHERE id = $1 AND user_id = $2`
	var vitals model.Vitals
	if err := r.db.GetContext(ctx, &vitals, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vitals: %w", err)
	}
	return &vitals, nil
}

func (r *vitalsRepository) List(ctx context.Context, userID uuid.UUID, filter *model.VitalsFilter) ([]*model.Vitals, error) {
	query := `SELECT * FROM vitals WHERE user_id = $1`
	args := []interface{}{userID}

	if filter != nil && filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter != nil && filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	limit := defaultVitalsLimit
	if filter != nil && filter.Limit > 0 {
		limit = filter.Limit
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d", len(args))

	vitals := []*model.Vitals{}
	if err := r.db.SelectContext(ctx, &vitals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list vitals: %w", err)
	}
	return vitals, nil
}

func (r *vitalsRepository) ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*model.Vitals, error) {
	query := `SELECT * FROM vitals WHERE user_id = $1 AND date >= $2 ORDER BY date ASC`
	vitals := []*model.Vitals{}
	if err := r.db.SelectContext(ctx, &vitals, query, userID, since); err != nil {
		return nil, fmt.Errorf("failed to list vitals: %w", err)
	}
	return vitals, nil
}

func (r *vitalsRepository) Update(ctx context.Context, vitals *model.Vitals) error {
	query := `
		UPDATE vitals SET
			date = $1, systolic = $2, diastolic = $3, blood_sugar = $4,
			blood_sugar_type = $5, weight = $6, height = $7, bmi = $8,
			heart_rate = $9, temperature = $10, oxygen_level = $11,
			notes = $12, symptoms = $13, updated_at = $14
		WHERE id = $15 AND user_id = $16
	`
	vitals.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		vitals.Date,
		vitals.Systolic,
		vitals.Diastolic,
		vitals.BloodSugar,
		vitals.BloodSugarType,
		vitals.Weight,
		vitals.Height,
		vitals.BMI,
		vitals.HeartRate,
		vitals.Temperature,
		vitals.OxygenLevel,
		vitals.Notes,
		vitals.Symptoms,
		vitals.UpdatedAt,
		vitals.ID,
		vitals.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vitals: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *vitalsRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM vitals WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete vitals: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
