package main

import (
	"context"
	"ctchen222/Chord-Dictionary/internal/api/controller"
	"ctchen222/Chord-Dictionary/internal/api/middleware"
	"ctchen222/Chord-Dictionary/internal/api/repository"
	"ctchen222/Chord-Dictionary/internal/api/service"
	"ctchen222/Chord-Dictionary/internal/config"
	"ctchen222/Chord-Dictionary/internal/db"
	"ctchen222/Chord-Dictionary/internal/janitor"
	"ctchen222/Chord-Dictionary/internal/logger"
	"ctchen222/Chord-Dictionary/internal/mailer"
	"ctchen222/Chord-Dictionary/internal/security"
	"ctchen222/Chord-Dictionary/internal/server"
	"ctchen222/Chord-Dictionary/internal/session"
	"ctchen222/Chord-Dictionary/internal/telemetry"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Options{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Stdout:      cfg.OTelStdout,
	})
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	appLogger := logger.Init(cfg.LogLevel, cfg.IsDevelopment())

	// Initialize database
	conn, err := db.Connect(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	// Initialize session store
	var store session.Store
	var cleanup []janitor.Task
	if cfg.RedisURL != "" {
		rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("Failed to connect redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
	} else {
		slog.Warn("REDIS_URL not set, sessions are kept in memory")
		memory := session.NewMemoryStore()
		store = memory
		cleanup = append(cleanup, janitor.Task{Name: "sessions", Purge: memory.PurgeExpired})
	}
	sessions := session.NewManager(store, session.Options{
		TTL:         cfg.SessionTTL,
		RememberTTL: cfg.RememberTokenTTL,
		Secure:      cfg.CookieSecure,
	})

	// Create repositories
	userRepo := repository.NewUserRepository(conn)
	rememberRepo := repository.NewRememberTokenRepository(conn)
	resetRepo := repository.NewPasswordResetRepository(conn)
	progressionRepo := repository.NewProgressionRepository(conn)

	// Create services
	mail := mailer.New(mailer.Options{
		SendgridAPIKey: cfg.SendgridAPIKey,
		From:           cfg.MailFrom,
		ResetURL:       cfg.ResetURL,
		RevealTokens:   cfg.IsDevelopment(),
	}, appLogger)
	credentialService := service.NewCredentialService(userRepo, security.NewHasher(cfg.BcryptCost))
	tokenService := service.NewTokenService(userRepo, rememberRepo, resetRepo, credentialService, mail, service.TokenOptions{
		RememberTTL: cfg.RememberTokenTTL,
		ResetTTL:    cfg.ResetTokenTTL,
	})
	accessService := service.NewAccessTokenService(cfg.JWTSecret, cfg.AccessTokenTTL)
	progressionService := service.NewProgressionService(progressionRepo)

	// Start background cleanup
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	cleanup = append(cleanup, janitor.Task{Name: "tokens", Purge: tokenService.PurgeExpired})
	go janitor.New(cfg.CleanupInterval, cleanup...).Run(janitorCtx)

	// Create controllers
	debug := cfg.IsDevelopment()
	auth := middleware.NewAuthenticator(sessions, tokenService, accessService, credentialService)
	handlers := server.Handlers{
		Auth:         controller.NewAuthController(credentialService, tokenService, accessService, sessions, debug),
		Progressions: controller.NewProgressionController(progressionService, auth, debug),
		Chords:       controller.NewChordController(),
		Health: controller.NewHealthController(map[string]controller.Check{
			"database": conn.PingContext,
			"sessions": sessions.Ping,
		}),
	}

	srv := server.NewServer(sessions, auth, handlers, server.Options{
		ServiceName:    cfg.ServiceName,
		AllowedOrigins: cfg.AllowedOrigins,
		CSRFEnforce:    cfg.CSRFEnforce,
	})

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("HTTP server started", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe failed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}
