package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/pkg/response"
)

// RequireRole ensures the authenticated user's role is in the allow-list.
func RequireRole(allowed ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		role := domain.UserRole(roleVal.(string))
		if !domain.RoleAllowed(role, allowed...) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly requires the admin role.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}

// StaffOnly requires admin or teacher, the roles allowed to modify records.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleTeacher)
}
