package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/healthmate/healthmate-api/internal/handler"
	"github.com/healthmate/healthmate-api/internal/model"
	"github.com/healthmate/healthmate-api/internal/service/auth"
)

const (
	// ContextUserID holds the authenticated user's uuid.UUID
	ContextUserID = "userID"
	// ContextUser holds the cached *model.User
	ContextUser = "user"
	// ContextToken holds the raw presented token (for logout)
	ContextToken = "token"

	// TokenCookie is the session cookie the web client uses
	TokenCookie = "token"

	userCacheTTL     = 5 * time.Minute
	userCacheCleanup = 10 * time.Minute
)

type AuthMiddleware struct {
	authSvc   auth.AuthService
	userCache *gocache.Cache
}

func NewAuthMiddleware(authSvc auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authSvc:   authSvc,
		userCache: gocache.New(userCacheTTL, userCacheCleanup),
	}
}

// Authenticate verifies the token (bearer header or session cookie) and sets
// the user identity in context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authentication token"))
			return
		}

		claims, err := m.authSvc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			return
		}

		user, err := m.lookupUser(c, claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUser, user)
		c.Set(ContextToken, token)
		c.Next()
	}
}

func (m *AuthMiddleware) lookupUser(c *gin.Context, userID uuid.UUID) (*model.User, error) {
	key := userID.String()
	if cached, ok := m.userCache.Get(key); ok {
		return cached.(*model.User), nil
	}

	user, err := m.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	m.userCache.SetDefault(key, user)
	return user, nil
}

// InvalidateUser drops a user from the cache after profile mutations
func (m *AuthMiddleware) InvalidateUser(userID uuid.UUID) {
	m.userCache.Delete(userID.String())
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}
