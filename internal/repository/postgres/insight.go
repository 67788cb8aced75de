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

type insightRepository struct {
	db *sqlx.DB
}

func NewInsightRepository(db *sqlx.DB) repository.InsightRepository {
	return &insightRepository{db: db}
}

// Create inserts the insight if none exists for the report yet. The unique
// index on report_id plus ON CONFLICT DO NOTHING makes the at-most-one
// guarantee hold under concurrent writers; the loser gets ErrDuplicate.
func (r *insightRepository) Create(ctx context.Context, insight *model.Insight) error {
	query := `
		INSERT INTO ai_insights (
			id, report_id, user_id, summary_english, summary_urdu,
			key_findings, recommendations, doctor_questions, suggestions,
			health_score, disclaimer, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (report_id) DO NOTHING
	`
	insight.CreatedAt = time.Now()
	insight.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		insight.ID,
		insight.ReportID,
		insight.UserID,
		insight.SummaryEnglish,
		insight.SummaryUrdu,
		insight.KeyFindingsJSON,
		insight.RecommendationsJSON,
		insight.DoctorQuestionsJSON,
		insight.SuggestionsJSON,
		insight.HealthScore,
		insight.Disclaimer,
		insight.CreatedAt,
		insight.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create insight: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *insightRepository) GetByReport(ctx context.Context, reportID, userID uuid.UUID) (*model.Insight, error) {
	query := `SELECT * FROM ai_insights WHERE report_id = $1 AND user_id = $2`
	var insight model.Insight
	if err := r.db.GetContext(ctx, &insight, query, reportID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}
	return &insight, nil
}

func (r *insightRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Insight, error) {
	query := `SELECT * FROM ai_insights WHERE user_id = $1 ORDER BY created_at DESC`
	insights := []*model.Insight{}
	if err := r.db.SelectContext(ctx, &insights, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}
	return insights, nil
}
