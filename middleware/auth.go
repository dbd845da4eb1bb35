package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// SessionEmailKey is the session entry holding the caller's principal.
const SessionEmailKey = "Email"

// AuthRequired is a simple middleware to check the session.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get(SessionEmailKey)
	if user == nil {
		// Abort the request with the appropriate error code
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	// Continue down the chain to handler etc
	c.Next()
}

// PrincipalEmail returns the session principal. Only meaningful behind
// AuthRequired.
func PrincipalEmail(c *gin.Context) string {
	session := sessions.Default(c)
	if email, ok := session.Get(SessionEmailKey).(string); ok {
		return email
	}
	return ""
}
