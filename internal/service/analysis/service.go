package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/repository"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
)

// ModelClient is the generative model boundary
type ModelClient interface {
	GenerateFromFile(ctx context.Context, prompt string, data []byte, mimeType string) (string, error)
}

// FileFetcher downloads a stored report file by URL
type FileFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AnalysisService runs report analysis and serves stored insights
type AnalysisService interface {
	// Analyze returns the insight for the report, creating it via the model
	// on first call. The bool is true when an existing insight was returned
	// without invoking the model.
	Analyze(ctx context.Context, reportID, userID uuid.UUID) (*model.Insight, bool, error)
	GetInsight(ctx context.Context, reportID, userID uuid.UUID) (*model.Insight, error)
	ListInsights(ctx context.Context, userID uuid.UUID) ([]*model.Insight, error)
}

type Service struct {
	reports  repository.ReportRepository
	insights repository.InsightRepository
	files    FileFetcher
	ai       ModelClient
}

func NewService(reports repository.ReportRepository, insights repository.InsightRepository, files FileFetcher, ai ModelClient) *Service {
	return &Service{
		reports:  reports,
		insights: insights,
		files:    files,
		ai:       ai,
	}
}

// Analyze performs the end-to-end analysis flow: load the report, return any
// existing insight unchanged, otherwise download the file, call the model,
// normalize its reply, persist the insight atomically and flag the report.
// Any step failing before the insert leaves nothing persisted.
func (s *Service) Analyze(ctx context.Context, reportID, userID uuid.UUID) (*model.Insight, bool, error) {
	report, err := s.reports.Get(ctx, reportID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, apperrors.NotFound("report", err)
		}
		return nil, false, apperrors.Internal(err)
	}

	existing, err := s.insights.GetByReport(ctx, reportID, userID)
	if err == nil {
		if err := s.unmarshalInsightFields(existing); err != nil {
			return nil, false, apperrors.Internal(err)
		}
		return existing, true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, apperrors.Internal(err)
	}

	data, err := s.files.Fetch(ctx, report.FileURL)
	if err != nil {
		return nil, false, apperrors.Upstream("failed to download report file", err)
	}

	prompt := BuildReportPrompt(report.ReportType)

	rawText, err := s.ai.GenerateFromFile(ctx, prompt, data, report.FileType.MIMEType())
	if err != nil {
		return nil, false, apperrors.Upstream("AI model request failed", err)
	}

	fields, err := Normalize(rawText)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			log.Error().Err(parseErr).Str("raw_response", parseErr.Raw).Msg("model returned unparseable text")
		}
		return nil, false, apperrors.Parse("failed to parse AI response", err)
	}

	insight := &model.Insight{
		Base:            model.Base{ID: uuid.New()},
		ReportID:        report.ID,
		UserID:          userID,
		SummaryEnglish:  fields.SummaryEnglish,
		SummaryUrdu:     fields.SummaryUrdu,
		KeyFindings:     fields.KeyFindings,
		Recommendations: fields.Recommendations,
		DoctorQuestions: fields.DoctorQuestions,
		Suggestions:     fields.Suggestions,
		HealthScore:     *fields.HealthScore,
		Disclaimer:      model.Disclaimer,
	}
	if err := s.marshalInsightFields(insight); err != nil {
		return nil, false, apperrors.Internal(err)
	}

	if err := s.insights.Create(ctx, insight); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// lost the race to a concurrent analyze; return the winner's insight
			winner, getErr := s.insights.GetByReport(ctx, reportID, userID)
			if getErr != nil {
				return nil, false, apperrors.Internal(getErr)
			}
			if err := s.unmarshalInsightFields(winner); err != nil {
				return nil, false, apperrors.Internal(err)
			}
			return winner, true, nil
		}
		return nil, false, apperrors.Internal(err)
	}

	if err := s.reports.MarkAnalyzed(ctx, report.ID); err != nil {
		return nil, false, apperrors.Internal(err)
	}

	return insight, false, nil
}

func (s *Service) GetInsight(ctx context.Context, reportID, userID uuid.UUID) (*model.Insight, error) {
	insight, err := s.insights.GetByReport(ctx, reportID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("analysis", err)
		}
		return nil, apperrors.Internal(err)
	}
	if err := s.unmarshalInsightFields(insight); err != nil {
		return nil, apperrors.Internal(err)
	}
	return insight, nil
}

func (s *Service) ListInsights(ctx context.Context, userID uuid.UUID) ([]*model.Insight, error) {
	insights, err := s.insights.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	for _, insight := range insights {
		if err := s.unmarshalInsightFields(insight); err != nil {
			return nil, apperrors.Internal(err)
		}
	}
	return insights, nil
}

func (s *Service) marshalInsightFields(insight *model.Insight) error {
	var err error
	if insight.KeyFindingsJSON, err = json.Marshal(insight.KeyFindings); err != nil {
		return fmt.Errorf("failed to marshal key findings: %w", err)
	}
	if insight.RecommendationsJSON, err = json.Marshal(insight.Recommendations); err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}
	if insight.DoctorQuestionsJSON, err = json.Marshal(insight.DoctorQuestions); err != nil {
		return fmt.Errorf("failed to marshal doctor questions: %w", err)
	}
	if insight.SuggestionsJSON, err = json.Marshal(insight.Suggestions); err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	return nil
}

func (s *Service) unmarshalInsightFields(insight *model.Insight) error {
	if len(insight.KeyFindingsJSON) > 0 {
		if err := json.Unmarshal(insight.KeyFindingsJSON, &insight.KeyFindings); err != nil {
			return fmt.Errorf("failed to unmarshal key findings: %w", err)
		}
	}
	if len(insight.RecommendationsJSON) > 0 {
		if err := json.Unmarshal(insight.RecommendationsJSON, &insight.Recommendations); err != nil {
			return fmt.Errorf("failed to unmarshal recommendations: %w", err)
		}
	}
	if len(insight.DoctorQuestionsJSON) > 0 {
		if err := json.Unmarshal(insight.DoctorQuestionsJSON, &insight.DoctorQuestions); err != nil {
			return fmt.Errorf("failed to unmarshal doctor questions: %w", err)
		}
	}
	if len(insight.SuggestionsJSON) > 0 {
		if err := json.Unmarshal(insight.SuggestionsJSON, &insight.Suggestions); err != nil {
			return fmt.Errorf("failed to unmarshal suggestions: %w", err)
		}
	}
	return nil
}
