package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/healthmate/healthmate-api/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a uniqueness constraint rejects a write
	ErrDuplicate = errors.New("record already exists")
)

// UserRepository persists account records
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// ReportRepository persists report records, always scoped to the owning user
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) error
	Get(ctx context.Context, id, userID uuid.UUID) (*model.Report, error)
	List(ctx context.Context, userID uuid.UUID) ([]*model.Report, error)
	Update(ctx context.Context, report *model.Report) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	MarkAnalyzed(ctx context.Context, id uuid.UUID) error
}

// InsightRepository persists AI insights. Create is an atomic conditional
// insert: it returns ErrDuplicate when an insight already exists for the
// report, so at most one insight per report survives concurrent writers.
type InsightRepository interface {
	Create(ctx context.Context, insight *model.Insight) error
	GetByReport(ctx context.Context, reportID, userID uuid.UUID) (*model.Insight, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Insight, error)
}

// VitalsRepository persists vitals snapshots
type VitalsRepository interface {
	Create(ctx context.Context, vitals *model.Vitals) error
	Get(ctx context.Context, id, userID uuid.UUID) (*model.Vitals, error)
	List(ctx context.Context, userID uuid.UUID, filter *model.VitalsFilter) ([]*model.Vitals, error)
	ListSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]*model.Vitals, error)
	Update(ctx context.Context, vitals *model.Vitals) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// TokenRevoker records tokens invalidated by logout
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
