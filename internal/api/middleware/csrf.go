package middleware

import (
	"ctchen222/Chord-Dictionary/internal/api/response"
	"ctchen222/Chord-Dictionary/internal/session"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const CSRFHeader = "X-CSRF-Token"

// CSRF rejects state-changing requests on an existing session whose
// X-CSRF-Token header does not match the session's token. Bearer-authenticated
// and sessionless requests carry no ambient credentials and pass through.
func CSRF(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		rc := SessionFrom(c)
		if rc.Bearer || rc.ID == "" {
			c.Next()
			return
		}

		if !manager.VerifyCSRFToken(rc, c.GetHeader(CSRFHeader)) {
			slog.WarnContext(c.Request.Context(), "CSRF token mismatch",
				"path", c.Request.URL.Path,
				"request_id", RequestIDFrom(c),
			)
			response.ErrorResponse(c, http.StatusForbidden, "Invalid CSRF token")
			return
		}
		c.Next()
	}
}
