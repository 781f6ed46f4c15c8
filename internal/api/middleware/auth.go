package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maoivy/fritter/pkg/response"
)

// ContextUserKey is where the auth middleware stores the session user ID.
const ContextUserKey = "auth.user_id"

// TokenParser resolves a session token to a user ID.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// Auth requires a valid `Authorization: Bearer <token>` header and puts
// the session user's ID on the request context.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "missing bearer token")
			return
		}
		userID, err := parser.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, "invalid session token")
			return
		}
		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// SessionUser returns the user ID the auth middleware resolved.
func SessionUser(c *gin.Context) string {
	return c.GetString(ContextUserKey)
}
