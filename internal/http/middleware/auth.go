// README: Caller identity middleware: Firebase ID tokens or a trusted debug header in dev mode.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tripcraft/internal/infra"
)

const (
	ctxCallerUID   = "caller_uid"
	ctxCallerEmail = "caller_email"

	// DebugEmailHeader carries the caller email when AUTH_MODE=dev.
	DebugEmailHeader = "X-Debug-Email"
)

type errorBody struct {
	Error string `json:"error"`
}

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Error: msg})
}

// Auth verifies "Authorization: Bearer <Firebase ID token>" and stores the
// caller UID and email in the gin context.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			unauthorized(c, "missing bearer token")
			return
		}
		token, err := verifier.VerifyIDToken(c.Request.Context(), strings.TrimSpace(raw))
		if err != nil {
			unauthorized(c, "invalid token")
			return
		}
		if token.Email == "" {
			unauthorized(c, "token has no email")
			return
		}
		c.Set(ctxCallerUID, token.UID)
		c.Set(ctxCallerEmail, token.Email)
		c.Next()
	}
}

// DevAuth trusts the X-Debug-Email header. Never enable it outside local development.
func DevAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := strings.TrimSpace(c.GetHeader(DebugEmailHeader))
		if email == "" {
			unauthorized(c, "missing "+DebugEmailHeader+" header")
			return
		}
		c.Set(ctxCallerUID, "dev:"+email)
		c.Set(ctxCallerEmail, email)
		c.Next()
	}
}

// CallerUID returns the authenticated caller's UID, or "".
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxCallerUID)
}

// CallerEmail returns the authenticated caller's email, or "".
func CallerEmail(c *gin.Context) string {
	return c.GetString(ctxCallerEmail)
}
