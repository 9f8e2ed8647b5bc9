package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cynthiamunja/saleSync/internal/core/domain"
	portssvc "github.com/cynthiamunja/saleSync/internal/core/ports/services"
)

// userRoleKey is the key used to store the authenticated user's role in the
// request context.
const userRoleKey = contextKey("userRole")

// GetUserRoleFromContext retrieves the authenticated user's role from the Gin
// context. It returns the role and a boolean indicating if it was found.
func GetUserRoleFromContext(c *gin.Context) (domain.UserRole, bool) {
	roleVal := c.Request.Context().Value(userRoleKey)
	if roleVal == nil {
		return "", false
	}
	role, ok := roleVal.(domain.UserRole)
	return role, ok
}

// RequireRoles creates a Gin middleware that loads the authenticated user and
// rejects the request unless the user is active and holds one of the allowed
// roles. It must run after AuthMiddleware.
func RequireRoles(userService portssvc.UserSvcFacade, allowed ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Error("User ID missing from context in role check")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := userService.GetAuthenticatedUser(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("Failed to resolve authenticated user", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authentication"})
			return
		}

		if !user.IsActive {
			logger.Warn("Inactive user attempted access")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}

		permitted := false
		for _, role := range allowed {
			if user.Role == role {
				permitted = true
				break
			}
		}
		if !permitted {
			logger.Warn("Access denied for role", "role", user.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), userRoleKey, user.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
