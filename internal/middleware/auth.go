package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/life-record-api/internal/auth"
	"github.com/yukikurage/life-record-api/internal/constants"
	apierrors "github.com/yukikurage/life-record-api/internal/errors"
	"github.com/yukikurage/life-record-api/internal/logging"
)

// RequireAuth validates the bearer token and stores the caller's id in the context
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			apierrors.Unauthorized(c, "Not authenticated")
			c.Abort()
			return
		}

		userID, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			logging.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Rejected access token")
			apierrors.Unauthorized(c, "Could not validate credentials")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	v, ok := userID.(uint64)
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}
