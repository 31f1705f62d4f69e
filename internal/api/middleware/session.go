package middleware

import (
	"ctchen222/Chord-Dictionary/internal/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// cookieWriter sets the request's queued cookies right before the response header is sent.
type cookieWriter struct {
	gin.ResponseWriter
	rc *session.RequestContext
}

func (w *cookieWriter) flush() {
	if w.ResponseWriter.Written() {
		return
	}
	for _, c := range w.rc.TakeCookies() {
		http.SetCookie(w.ResponseWriter, c)
	}
}

func (w *cookieWriter) WriteHeaderNow() {
	w.flush()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *cookieWriter) Write(data []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(data)
}

func (w *cookieWriter) WriteString(s string) (int, error) {
	w.flush()
	return w.ResponseWriter.WriteString(s)
}

// Session loads the session for each request and makes it available through SessionFrom.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := manager.Load(c.Request.Context(), c.Request)
		c.Set(sessionKey, rc)

		w := &cookieWriter{ResponseWriter: c.Writer, rc: rc}
		c.Writer = w
		c.Next()
		// Body-less responses are committed by gin after the chain returns.
		w.flush()
	}
}

// SessionFrom returns the request's session context. Without the Session
// middleware it returns an empty, anonymous context.
func SessionFrom(c *gin.Context) *session.RequestContext {
	if v, ok := c.Get(sessionKey); ok {
		if rc, ok := v.(*session.RequestContext); ok {
			return rc
		}
	}
	rc := &session.RequestContext{}
	c.Set(sessionKey, rc)
	return rc
}
