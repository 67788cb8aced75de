package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/healthmate/healthmate-api/pkg/errors"
)

// TextGenerator is the minimal model surface the diagnostics endpoint needs
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Handler carries the cross-cutting endpoints (health, diagnostics)
type Handler struct {
	ai TextGenerator
}

func NewHandler(ai TextGenerator) *Handler {
	return &Handler{ai: ai}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"status": "healthy",
		},
	})
}

// TestAI verifies connectivity to the model service with a trivial prompt
func (h *Handler) TestAI(c *gin.Context) {
	reply, err := h.ai.GenerateText(c.Request.Context(), "Say hello in one short sentence.")
	if err != nil {
		RespondError(c, apperrors.Upstream("AI model request failed", err))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{"reply": reply}))
}

// UserID extracts the authenticated user id set by the auth middleware
func UserID(c *gin.Context) uuid.UUID {
	id, _ := c.MustGet("userID").(uuid.UUID)
	return id
}
