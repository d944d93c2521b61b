package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/isisteel/yard-turnaround/internal/auth"
)

const principalKey = "auth.principal"

// Auth validates the Bearer token and stores the caller's principal on the
// request context for downstream handlers.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		principal, err := parser.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// MustPrincipal returns the principal stored by Auth, if any.
func MustPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}
