package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"souqd/internal/pkg/jwt"
	"souqd/internal/pkg/response"
	"souqd/internal/session"
)

const ContextEmailKey = "user_email"

// Auth resolves the request principal from the session cookie, falling back
// to a Bearer token for cookie-less API clients. Requests without a principal
// are rejected with 401.
func Auth(sessions *session.Manager, jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email, ok := sessions.Principal(c); ok {
			c.Set(ContextEmailKey, email)
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				claims, err := jwt.ParseToken(parts[1], jwtSecret)
				if err == nil && claims.Email != "" {
					c.Set(ContextEmailKey, claims.Email)
					c.Next()
					return
				}
			}
		}
		response.Fail(c, http.StatusUnauthorized, "not authenticated")
		c.Abort()
	}
}
