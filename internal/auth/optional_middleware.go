package auth

import (
	"github.com/gin-gonic/gin"
)

// SessionStatusHeader is set to "invalid" when a request carried a token that
// OptionalAuthMiddleware could not accept.
const SessionStatusHeader = "X-Session-Status"

// OptionalAuthMiddleware inspects for a token and sets the identity if present and valid,
// but does not fail if the token is missing or invalid.
func OptionalAuthMiddleware(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := BearerToken(c); token != "" {
			identity, err := sessions.Verify(c.Request.Context(), token)
			if err == nil {
				c.Set(identityKey, identity)
			} else {
				c.Header(SessionStatusHeader, "invalid")
			}
		}
		c.Next()
	}
}
