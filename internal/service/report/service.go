package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
	"github.com/healthmate/healthmate-api/pkg/storage"
)

// MaxFileSize caps uploads at 10MB
const MaxFileSize = 10 << 20

// Upload carries a validated report file plus its metadata
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
	Meta        model.UploadReportRequest
}

// ReportService manages uploaded report documents
type ReportService interface {
	Upload(ctx context.Context, userID uuid.UUID, upload *Upload) (*model.Report, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*model.Report, error)
	List(ctx context.Context, userID uuid.UUID) ([]*model.Report, error)
	Update(ctx context.Context, id, userID uuid.UUID, req *model.UpdateReportRequest) (*model.Report, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type Service struct {
	repo  repository.ReportRepository
	store storage.Service
}

func NewService(repo repository.ReportRepository, store storage.Service) *Service {
	return &Service{repo: repo, store: store}
}

// Upload validates the file, stores it and creates the report record.
// Exactly one storage object per report.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, upload *Upload) (*model.Report, error) {
	fileType, ok := model.FileTypeFromMIME(upload.ContentType)
	if !ok {
		return nil, apperrors.BadRequest("invalid file type, only JPG, PNG and PDF allowed", nil)
	}
	if upload.Size > MaxFileSize {
		return nil, apperrors.BadRequest("file too large, maximum size is 10MB", nil)
	}

	obj, err := s.store.Upload(ctx, upload.Filename, upload.File)
	if err != nil {
		return nil, apperrors.Upstream("failed to store report file", err)
	}

	title := upload.Meta.Title
	if title == "" {
		title = "Medical Report"
	}
	reportType := upload.Meta.ReportType
	if reportType == "" {
		reportType = model.ReportTypeOther
	}
	reportDate := time.Now()
	if upload.Meta.ReportDate != nil {
		reportDate = *upload.Meta.ReportDate
	}

	report := &model.Report{
		Base:         model.Base{ID: uuid.New()},
		UserID:       userID,
		Title:        title,
		ReportType:   reportType,
		FileURL:      obj.URL,
		FilePublicID: obj.PublicID,
		FileType:     fileType,
		ReportDate:   reportDate,
		HospitalName: upload.Meta.HospitalName,
		DoctorName:   upload.Meta.DoctorName,
		Notes:        upload.Meta.Notes,
	}

	if err := s.repo.Create(ctx, report); err != nil {
		// the record is the source of truth; clean up the orphaned object
		if destroyErr := s.store.Destroy(ctx, obj.PublicID); destroyErr != nil {
			log.Warn().Err(destroyErr).Str("public_id", obj.PublicID).Msg("failed to clean up stored file")
		}
		return nil, apperrors.Internal(err)
	}

	return report, nil
}

func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*model.Report, error) {
	report, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("report", err)
		}
		return nil, apperrors.Internal(err)
	}
	return report, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.Report, error) {
	reports, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return reports, nil
}

func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *model.UpdateReportRequest) (*model.Report, error) {
	report, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("report", err)
		}
		return nil, apperrors.Internal(err)
	}

	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.ReportType != nil {
		report.ReportType = *req.ReportType
	}
	if req.ReportDate != nil {
		report.ReportDate = *req.ReportDate
	}
	if req.HospitalName != nil {
		report.HospitalName = req.HospitalName
	}
	if req.DoctorName != nil {
		report.DoctorName = req.DoctorName
	}
	if req.Notes != nil {
		report.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, report); err != nil {
		return nil, apperrors.Internal(err)
	}
	return report, nil
}

// Delete removes the report and cascades to its storage object
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	report, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("report", err)
		}
		return apperrors.Internal(err)
	}

	if err := s.store.Destroy(ctx, report.FilePublicID); err != nil {
		return apperrors.Upstream("failed to delete stored file", err)
	}

	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete report record: %w", err))
	}
	return nil
}
