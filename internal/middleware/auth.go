// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/secondnest/secondhand-backend/internal/models"
	"github.com/secondnest/secondhand-backend/internal/utils"
)

// RoleLookup resolves a caller's current role from the users
// collection. The token's role claim is never trusted for
// role-restricted operations.
type RoleLookup interface {
	UserRole(ctx context.Context, email string) (models.Role, error)
}

// AuthRequired rejects calls before any mutation runs: a missing
// credential is unauthenticated (401), an invalid or expired one is
// forbidden (403).
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "invalid credential",
			})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "invalid or expired credential",
			})
			c.Abort()
			return
		}

		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RoleRequired re-fetches the user behind the credential and admits
// the call only when the stored role matches. Costs one document
// lookup per call.
func RoleRequired(lookup RoleLookup, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := utils.GetUserEmailFromContext(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			c.Abort()
			return
		}

		resolved, err := lookup.UserRole(c.Request.Context(), email)
		if err != nil || resolved != role {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "forbidden access",
			})
			c.Abort()
			return
		}

		c.Set("user_role", string(resolved))
		c.Next()
	}
}
