package jwtmw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextSubject is the gin context key holding the verified subject (email).
const ContextSubject = "subject"

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to authenticated users only. Verification is purely
// local (signature + expiry); no storage lookup happens per request, since the
// subject email is self-contained in the token.
func AuthRequired(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS preflight requests carry no credentials and bypass the gate
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		// 1. Get Authorization header; anything but "Bearer <token>" is rejected
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature and expiry
		subject, err := verifier.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// 3. Attach the verified subject and pass control to the next handler
		c.Set(ContextSubject, subject)
		c.Next()
	}
}
