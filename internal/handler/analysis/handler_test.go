package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthmate/healthmate-api/internal/model"
	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
)

type fakeAnalysisService struct {
	insight *model.Insight
	existed bool
	err     error
}

func (f *fakeAnalysisService) Analyze(_ context.Context, _, _ uuid.UUID) (*model.Insight, bool, error) {
	return f.insight, f.existed, f.err
}

func (f *fakeAnalysisService) GetInsight(_ context.Context, _, _ uuid.UUID) (*model.Insight, error) {
	return f.insight, f.err
}

func (f *fakeAnalysisService) ListInsights(_ context.Context, _ uuid.UUID) ([]*model.Insight, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*model.Insight{f.insight}, nil
}

func newTestRouter(svc *fakeAnalysisService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{service: svc}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", uuid.New())
	})
	r.POST("/analysis/analyze/:reportId", h.Analyze)
	r.GET("/analysis/insight/:reportId", h.GetInsight)
	return r
}

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func testInsight() *model.Insight {
	return &model.Insight{
		Base:           model.Base{ID: uuid.New()},
		ReportID:       uuid.New(),
		UserID:         uuid.New(),
		SummaryEnglish: "All good",
		HealthScore:    85,
		Disclaimer:     model.Disclaimer,
	}
}

func TestAnalyzeFirstRun(t *testing.T) {
	r := newTestRouter(&fakeAnalysisService{insight: testInsight()})

	w := doRequest(r, http.MethodPost, "/analysis/analyze/"+uuid.NewString())
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    struct {
			Insight *model.Insight `json:"insight"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, "Report analyzed successfully", body.Message)
	require.NotNil(t, body.Data.Insight)
	assert.Equal(t, "All good", body.Data.Insight.SummaryEnglish)
}

func TestAnalyzeAlreadyAnalyzed(t *testing.T) {
	r := newTestRouter(&fakeAnalysisService{insight: testInsight(), existed: true})

	w := doRequest(r, http.MethodPost, "/analysis/analyze/"+uuid.NewString())
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Report already analyzed", body.Message)
}

func TestAnalyzeInvalidReportID(t *testing.T) {
	r := newTestRouter(&fakeAnalysisService{})

	w := doRequest(r, http.MethodPost, "/analysis/analyze/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeReportNotFound(t *testing.T) {
	r := newTestRouter(&fakeAnalysisService{err: apperrors.NotFound("report", nil)})

	w := doRequest(r, http.MethodPost, "/analysis/analyze/"+uuid.NewString())
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	r := newTestRouter(&fakeAnalysisService{err: apperrors.Upstream("AI model request failed", nil)})

	w := doRequest(r, http.MethodPost, "/analysis/analyze/"+uuid.NewString())
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "AI model request failed", body.Message)
}

func TestGetInsight(t *testing.T) {
	insight := testInsight()
	r := newTestRouter(&fakeAnalysisService{insight: insight})

	w := doRequest(r, http.MethodGet, "/analysis/insight/"+insight.ReportID.String())
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data *model.Insight `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Data)
	assert.Equal(t, insight.ID, body.Data.ID)
}
