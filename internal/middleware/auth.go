package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"schoolrecords/internal/pkg/response"

	jwtsvc "schoolrecords/internal/pkg/jwt"
)

// Auth resolves the caller from the Authorization header. Every verification
// failure maps to the same generic 401: the client must not learn whether the
// token was missing, malformed, expired or mistyped.
//
// The refresh-token ledger is deliberately not consulted here; access tokens
// stay valid until their own short expiry even after logout.
func Auth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			unauthorized(c)
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			unauthorized(c)
			return
		}

		claims, err := jwt.Verify(tokenStr, jwtsvc.TypeAccess)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	c.Abort()
}
