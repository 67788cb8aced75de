package vitals

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
)

const defaultStatsWindowDays = 30

// VitalsService manages measurement snapshots
type VitalsService interface {
	Create(ctx context.Context, userID uuid.UUID, req *model.VitalsRequest) (*model.Vitals, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.Vitals, error)
	List(ctx context.Context, userID uuid.UUID, filter *model.VitalsFilter) ([]*model.Vitals, error)
	Update(ctx context.Context, id, userID uuid.UUID, req *model.VitalsRequest) (*model.Vitals, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Stats(ctx context.Context, userID uuid.UUID, days int) (*model.VitalsStats, error)
}

type Service struct {
	repo repository.VitalsRepository
}

func NewService(repo repository.VitalsRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.VitalsRequest) (*model.Vitals, error) {
	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	vitals := &model.Vitals{
		Base:   model.Base{ID: uuid.New()},
		UserID: userID,
		Date:   date,
	}
	applyRequest(vitals, req)
	vitals.ComputeBMI()

	if err := s.repo.Create(ctx, vitals); err != nil {
		return nil, apperrors.Internal(err)
	}
	return vitals, nil
}

func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*model.Vitals, error) {
	vitals, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("vitals record", err)
		}
		return nil, apperrors.Internal(err)
	}
	return vitals, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter *model.VitalsFilter) ([]*model.Vitals, error) {
	vitals, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return vitals, nil
}

func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *model.VitalsRequest) (*model.Vitals, error) {
	vitals, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("vitals record", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.Date != nil {
		vitals.Date = *req.Date
	}
	applyRequest(vitals, req)
	vitals.ComputeBMI()

	if err := s.repo.Update(ctx, vitals); err != nil {
		return nil, apperrors.Internal(err)
	}
	return vitals, nil
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("vitals record", err)
		}
		return apperrors.Internal(err)
	}
	return nil
}

// Stats aggregates readings over a trailing window of days
func (s *Service) Stats(ctx context.Context, userID uuid.UUID, days int) (*model.VitalsStats, error) {
	if days <= 0 {
		days = defaultStatsWindowDays
	}
	since := time.Now().AddDate(0, 0, -days)

	records, err := s.repo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	stats := &model.VitalsStats{TotalRecords: len(records)}

	var sysSum, diaSum, sysN int
	var sugarSum float64
	var sugarN int
	var weightSum float64
	var weightN int

	for _, v := range records {
		if v.Systolic != nil && v.Diastolic != nil {
			sysSum += *v.Systolic
			diaSum += *v.Diastolic
			sysN++
		}
		if v.BloodSugar != nil {
			sugarSum += *v.BloodSugar
			sugarN++
		}
		if v.Weight != nil {
			weightSum += *v.Weight
			weightN++
		}
	}

	if sysN > 0 {
		sys := int(math.Round(float64(sysSum) / float64(sysN)))
		dia := int(math.Round(float64(diaSum) / float64(sysN)))
		stats.Averages.Systolic = &sys
		stats.Averages.Diastolic = &dia
	}
	if sugarN > 0 {
		sugar := math.Round(sugarSum / float64(sugarN))
		stats.Averages.BloodSugar = &sugar
	}
	if weightN > 0 {
		weight := math.Round(weightSum/float64(weightN)*10) / 10
		stats.Averages.Weight = &weight
	}

	return stats, nil
}

func applyRequest(vitals *model.Vitals, req *model.VitalsRequest) {
	if req.Systolic != nil {
		vitals.Systolic = req.Systolic
	}
	if req.Diastolic != nil {
		vitals.Diastolic = req.Diastolic
	}
	if req.BloodSugar != nil {
		vitals.BloodSugar = req.BloodSugar
	}
	if req.BloodSugarType != nil {
		vitals.BloodSugarType = req.BloodSugarType
	}
	if req.Weight != nil {
		vitals.Weight = req.Weight
	}
	if req.Height != nil {
		vitals.Height = req.Height
	}
	if req.HeartRate != nil {
		vitals.HeartRate = req.HeartRate
	}
	if req.Temperature != nil {
		vitals.Temperature = req.Temperature
	}
	if req.OxygenLevel != nil {
		vitals.OxygenLevel = req.OxygenLevel
	}
	if req.Notes != nil {
		vitals.Notes = req.Notes
	}
	if req.Symptoms != nil {
		vitals.Symptoms = req.Symptoms
	}
}
