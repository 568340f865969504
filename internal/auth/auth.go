// Package auth resolves the authenticated identity on each request. Session
// issuance and verification live in the fronting auth layer (Clerk behind a
// reverse proxy); by the time a request reaches this API the verified user id
// is carried in a trusted header. An absent header simply means "not signed
// in" — individual handlers decide whether that is an error.
package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUserID is set by the auth proxy after session verification.
const HeaderUserID = "X-User-Id"

const contextKey = "auth.userID"

// Middleware stores the resolved identity, if any, on the request context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(HeaderUserID)); id != "" {
			c.Set(contextKey, id)
		}
		c.Next()
	}
}

// UserID returns the authenticated identity for the request, or ok=false when
// the request is anonymous.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}
