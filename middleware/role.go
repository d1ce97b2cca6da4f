package middleware

import (
	"errors"
	"net/http"

	"decorhub/models"
	"decorhub/services/guard"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only callers whose stored role is one of roles. It must
// run after AuthMiddleware.
func RequireRole(g guard.RoleResolver, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, err := g.RoleOf(c.Request.Context(), CurrentEmail(c))
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, utils.ErrUnauthorized) {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{"error": utils.MessageOf(err)})
			return
		}
		for _, r := range roles {
			if role == r {
				c.Set(RoleKey, role)
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden access"})
	}
}
