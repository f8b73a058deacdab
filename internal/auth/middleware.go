package auth

import (
	"net/http"
	"strings"

	"gamehub/backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// AuthMiddleware rejects requests without a valid bearer token: 401 when the
// token is missing, 403 when it is invalid or expired.
func AuthMiddleware(sessions *Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := sessions.Verify(c.Request.Context(), BearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequirePermission checks the caller's role against the permission table.
// It must be used AFTER AuthMiddleware.
func RequirePermission(action Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		if !identity.Can(action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}

// CurrentIdentity returns the identity stored by AuthMiddleware or OptionalAuthMiddleware.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
