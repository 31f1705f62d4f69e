package response

import (
	"ctchen222/Chord-Dictionary/internal/apperr"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// NewResponse builds the JSON envelope: {"status": ..., "message": ..., fields...}.
// An empty message is omitted.
func NewResponse(status, message string, fields gin.H) gin.H {
	body := gin.H{"status": status}
	if message != "" {
		body["message"] = message
	}
	for k, v := range fields {
		body[k] = v
	}
	return body
}

// SuccessResponse returns a 200 JSON response with a success message and extra fields
func SuccessResponse(c *gin.Context, message string, fields gin.H) {
	c.JSON(http.StatusOK, NewResponse(StatusSuccess, message, fields))
}

// CreatedResponse returns a 201 JSON response
func CreatedResponse(c *gin.Context, message string, fields gin.H) {
	c.JSON(http.StatusCreated, NewResponse(StatusSuccess, message, fields))
}

// ErrorResponse aborts with an error envelope
func ErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, NewResponse(StatusError, message, nil))
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error converts err into an error envelope. Server-side failures are logged,
// and their cause is included as "detail" only when debug is set.
func Error(c *gin.Context, err error, debug bool) {
	ErrorWithStatus(c, StatusFor(err), err, debug)
}

// ErrorWithStatus is Error with an explicit status code.
func ErrorWithStatus(c *gin.Context, code int, err error, debug bool) {
	var fields gin.H
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "Request failed", "path", c.FullPath(), "error", err)
		if debug {
			fields = gin.H{"detail": err.Error()}
		}
	}
	c.AbortWithStatusJSON(code, NewResponse(StatusError, apperr.MessageOf(err), fields))
}
