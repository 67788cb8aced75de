package analysis

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthmate/healthmate-api/internal/handler"
	"github.com/healthmate/healthmate-api/internal/middleware"
	"github.com/healthmate/healthmate-api/internal/service/analysis"
)

type Handler struct {
	service analysis.AnalysisService
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service analysis.AnalysisService, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/analysis")
	group.Use(h.authMW.Authenticate())
	{
		group.POST("/analyze/:reportId", h.Analyze)
		group.GET("/insight/:reportId", h.GetInsight)
		group.GET("/insights", h.ListInsights)
	}
}

func (h *Handler) Analyze(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("reportId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report ID"))
		return
	}

	insight, existed, err := h.service.Analyze(c.Request.Context(), reportID, handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	message := "Report analyzed successfully"
	if existed {
		message = "Report already analyzed"
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse(message, gin.H{"insight": insight}))
}

func (h *Handler) GetInsight(c *gin.Context) {
	reportID, err := uuid.Parse(c.Param("reportId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid report ID"))
		return
	}

	insight, err := h.service.GetInsight(c.Request.Context(), reportID, handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(insight))
}

func (h *Handler) ListInsights(c *gin.Context) {
	insights, err := h.service.ListInsights(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(insights))
}
