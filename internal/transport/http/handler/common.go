package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"blogapi/internal/app"
	"blogapi/internal/transport/http/middleware"
)

func principalID(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok
}

func currentToken(c *gin.Context) (string, bool) {
	tokenAny, exists := c.Get(middleware.ContextTokenKey)
	if !exists {
		return "", false
	}
	token, ok := tokenAny.(string)
	return token, ok
}

// idParam reads the :id segment. A non-numeric or overflowing id can never
// address a record, so it surfaces as not-found rather than bad-request.
// bitSize tracks the width of uint so the conversion below never truncates.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, app.ErrNotFound
	}
	return uint(id), nil
}

func intQuery(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}
