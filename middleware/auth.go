package middleware

import (
	"errors"
	"net/http"
	"strings"

	"decorhub/services/identity"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the auth middlewares.
const (
	EmailKey = "email"
	NameKey  = "name"
	RoleKey  = "role"
)

// AuthMiddleware verifies the bearer credential and stores the verified email.
func AuthMiddleware(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		id, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, utils.ErrUpstream) {
				zap.L().Error("identity verification unavailable", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Identity provider unavailable, retry later"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(EmailKey, id.Email)
		c.Set(NameKey, id.Name)
		c.Next()
	}
}

// CurrentEmail returns the verified email stored by AuthMiddleware.
func CurrentEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}
