package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ownerKey is the gin context key holding the caller's user id
const ownerKey = "user_id"

// Owner serves every request as the configured user. There is no login; a
// real identity provider would set the same context key.
func Owner(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ownerKey, userID)
		c.Next()
	}
}

// OwnerID returns the id stored by Owner. Requests that reach a handler
// without one are rejected.
func OwnerID(c *gin.Context) (string, bool) {
	id := c.GetString(ownerKey)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return "", false
	}
	return id, true
}
