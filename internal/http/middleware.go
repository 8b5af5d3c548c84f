package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediahub/internal/db"
)

// tokenAuthMiddleware requires a valid credential in the Authorization
// header. The header carries the raw token value with no scheme prefix; the
// backend and all clients agree on the literal string.
func (s *Server) tokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")

		user, err := s.tokens.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Error: "Authentication required",
			})
			return
		}

		// Store user info in gin context for handlers
		c.Set("user", user)
		c.Next()
	}
}

// getUserFromContext extracts the authenticated user from context
func getUserFromContext(c *gin.Context) (*db.User, bool) {
	if user, exists := c.Get("user"); exists {
		if u, ok := user.(*db.User); ok {
			return u, true
		}
	}
	return nil, false
}
