// Package server assembles the gin router for the chord dictionary API.
package server

import (
	"ctchen222/Chord-Dictionary/internal/api/controller"
	"ctchen222/Chord-Dictionary/internal/api/middleware"
	"ctchen222/Chord-Dictionary/internal/api/response"
	"ctchen222/Chord-Dictionary/internal/session"
	"ctchen222/Chord-Dictionary/internal/validator"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const Version = "1.0.0"

// Handlers groups the controllers served by the router.
type Handlers struct {
	Auth         *controller.AuthController
	Progressions *controller.ProgressionController
	Chords       *controller.ChordController
	Health       *controller.HealthController
}

// Options configures cross-cutting middleware.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	CSRFEnforce    bool
}

type Server struct {
	engine      *gin.Engine
	serviceName string
}

// NewServer builds the router. Route-level auth is decided by auth; sessions backs the session and CSRF middleware.
func NewServer(sessions *session.Manager, auth *middleware.Authenticator, h Handlers, opts Options) *Server {
	validator.RegisterWithGin()

	engine := gin.New()
	// Chord names such as "D/F#" arrive path-escaped.
	engine.UseRawPath = true
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusNotFound, "Not found")
	})
	engine.NoMethod(func(c *gin.Context) {
		response.ErrorResponse(c, http.StatusMethodNotAllowed, "Method not allowed")
	})

	engine.Use(
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			slog.ErrorContext(c.Request.Context(), "Recovered from panic", "panic", recovered, "path", c.Request.URL.Path)
			response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		}),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(opts.AllowedOrigins),
	)

	engine.GET("/healthz", h.Health.Health)

	api := engine.Group("/api", middleware.Session(sessions), auth.Resolve())
	if opts.CSRFEnforce {
		api.Use(middleware.CSRF(sessions))
	}

	index := controller.NewIndexController(opts.ServiceName, Version, engine.Routes)
	api.GET("", index.Index)

	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", auth.RequireAuth("Not authenticated"), h.Auth.Logout)
	api.GET("/user", auth.RequireAuth("Not authenticated"), h.Auth.User)
	api.POST("/reset-password", h.Auth.ResetPassword)
	api.GET("/csrf", h.Auth.CSRFToken)
	api.POST("/token", h.Auth.Token)

	progressions := api.Group("/progressions")
	progressions.GET("", h.Progressions.Get)
	requireAuth := auth.RequireAuth("Authentication required")
	progressions.POST("", requireAuth, h.Progressions.Create)
	progressions.PUT("", requireAuth, h.Progressions.Update)
	progressions.DELETE("", requireAuth, h.Progressions.Delete)

	api.GET("/chords", h.Chords.List)
	api.GET("/chords/:name", h.Chords.Get)

	return &Server{engine: engine, serviceName: opts.ServiceName}
}

// Engine exposes the underlying gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Handler returns the router wrapped with OpenTelemetry HTTP instrumentation.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.engine, s.serviceName)
}
