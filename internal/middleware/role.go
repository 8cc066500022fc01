package middleware

import (
	"net/http"

	"svpportal/internal/domain"
	"svpportal/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through when the token's role is one of allowed.
// It must run after JWTAuth or QueryTokenAuth.
func RequireRole(allowed ...domain.UserRole) gin.HandlerFunc {
	set := make(map[domain.UserRole]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(c *gin.Context) {
		raw, exists := c.Get(ctxRole)
		if !exists {
			logAuthFailure(c, http.StatusUnauthorized, "missing_role")
			response.Message(c, http.StatusUnauthorized, "No token provided")
			c.Abort()
			return
		}

		role, _ := raw.(string)
		if _, ok := set[domain.UserRole(role)]; !ok {
			logAuthFailure(c, http.StatusForbidden, "insufficient_role")
			response.Message(c, http.StatusForbidden, "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly guards every back-office route.
func AdminOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
