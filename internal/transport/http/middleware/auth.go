package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogapi/internal/app"
	"blogapi/internal/transport/http/response"
)

const (
	ContextUserIDKey = "user_id"
	ContextTokenKey  = "auth_token"
)

const unauthenticatedMessage = "You are not authenticated."

// Auth resolves the bearer token into a principal before any handler runs.
// Missing, malformed, revoked, and orphaned tokens all fail identically with
// 401; ownership failures (403) happen later, in the services.
func Auth(authService *app.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			abortUnauthenticated(c)
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			abortUnauthenticated(c)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		user, err := authService.ResolveToken(c.Request.Context(), token)
		if err != nil {
			// infrastructure failures are not an authentication verdict
			if !errors.Is(err, app.ErrInvalidToken) {
				response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
				c.Abort()
				return
			}
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	response.Error(c, http.StatusUnauthorized, unauthenticatedMessage, nil)
	c.Abort()
}
