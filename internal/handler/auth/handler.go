package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthmate/healthmate-api/internal/handler"
	"github.com/healthmate/healthmate-api/internal/middleware"
	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/service/auth"
)

const cookieMaxAge = 30 * 24 * 60 * 60

type Handler struct {
	service auth.AuthService
	authMW  *middleware.AuthMiddleware
}

func NewHandler(service auth.AuthService, authMW *middleware.AuthMiddleware) *Handler {
	return &Handler{service: service, authMW: authMW}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)

		protected := authGroup.Group("")
		protected.Use(h.authMW.Authenticate())
		{
			protected.POST("/logout", h.Logout)
			protected.GET("/check", h.Check)
			protected.GET("/profile", h.GetProfile)
			protected.PUT("/profile", h.UpdateProfile)
			protected.PUT("/change-password", h.ChangePassword)
		}
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewMessageResponse("Account created successfully. Please login.", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, cookieMaxAge, "/", "", false, true)

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"user":  user,
		"token": token,
	}))
}

func (h *Handler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, handler.NewMessageResponse("Logged out successfully", nil))
}

func (h *Handler) Check(c *gin.Context) {
	user, _ := c.Get(middleware.ContextUser)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"user": user}))
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), handler.UserID(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	userID := handler.UserID(c)
	user, err := h.service.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	h.authMW.InvalidateUser(userID)
	c.JSON(http.StatusOK, handler.NewMessageResponse("Profile updated successfully", user))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), handler.UserID(c), &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewMessageResponse("Password changed successfully", nil))
}
