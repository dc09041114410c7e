package handlers

import (
	"errors"

	"itufk/middleware"
	"itufk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a Zap logger from the Gin context or falls back to the process logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// memberIDFromContext returns the member set by JWTAuthMemberMiddleware.
func memberIDFromContext(c *gin.Context) (string, error) {
	raw, exists := c.Get(middleware.ContextMemberID)
	if !exists || raw == nil {
		return "", errors.New("member ID not found in context")
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", errors.New("invalid member ID in context")
	}
	return id, nil
}
