package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator resolves a session token to a member ID.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// ContextMemberID is the gin context key holding the authenticated member ID.
const ContextMemberID = "memberID"

var errMissingBearer = errors.New("missing or invalid Authorization header")

func bearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", errMissingBearer
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", errMissingBearer
	}
	return token, nil
}

// JWTAuthMemberMiddleware admits requests carrying the member's current session token.
func JWTAuthMemberMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := bearerToken(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		memberID, err := auth.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			zap.L().Debug("Rejected session token", zap.String("ip", getClientIP(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set(ContextMemberID, memberID)
		c.Next()
	}
}
