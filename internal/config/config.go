// Package config loads runtime settings from defaults, an optional .env file
// and the process environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds runtime settings for the chord dictionary server.
type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel slog.Level

	DBDriver    string
	DatabaseURL string
	RedisURL    string

	SessionTTL       time.Duration
	RememberTokenTTL time.Duration
	ResetTokenTTL    time.Duration
	CleanupInterval  time.Duration
	CookieSecure     bool
	CSRFEnforce      bool
	AllowedOrigins   []string

	JWTSecret      string
	AccessTokenTTL time.Duration
	BcryptCost     int

	SendgridAPIKey string
	MailFrom       string
	ResetURL       string

	OTLPEndpoint string
	OTelStdout   bool
	ServiceName  string
}

// LoadDefaults populates Config with development defaults.
// NOTE: JWTSecret must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.AppEnv = EnvDevelopment
	c.HTTPAddr = ":8080"
	c.LogLevel = slog.LevelInfo
	c.DBDriver = "sqlite"
	c.DatabaseURL = "./chord_dictionary.db"
	c.SessionTTL = 24 * time.Hour
	c.RememberTokenTTL = 30 * 24 * time.Hour
	c.ResetTokenTTL = time.Hour
	c.CleanupInterval = time.Hour
	c.AllowedOrigins = []string{"http://localhost:5173"}
	c.JWTSecret = "dev_only_secret_key"
	c.AccessTokenTTL = 72 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
	c.MailFrom = "donotreply@chord-dictionary.local"
	c.ResetURL = "http://localhost:5173/reset-password"
	c.ServiceName = "chord-dictionary"
}

// IsDevelopment reports whether debug detail may be shown to clients.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Load builds a Config from defaults, then .env (outside production), then the environment.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") != EnvProduction {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	p := parser{lookup: lookup}

	p.str("APP_ENV", &c.AppEnv)
	p.str("HTTP_ADDR", &c.HTTPAddr)
	p.level("LOG_LEVEL", &c.LogLevel)
	p.str("DB_DRIVER", &c.DBDriver)
	p.str("DATABASE_URL", &c.DatabaseURL)
	p.str("REDIS_URL", &c.RedisURL)
	p.duration("SESSION_TTL", &c.SessionTTL)
	p.duration("REMEMBER_TOKEN_TTL", &c.RememberTokenTTL)
	p.duration("RESET_TOKEN_TTL", &c.ResetTokenTTL)
	p.duration("TOKEN_CLEANUP_INTERVAL", &c.CleanupInterval)
	p.boolean("COOKIE_SECURE", &c.CookieSecure)
	p.boolean("CSRF_ENFORCE", &c.CSRFEnforce)
	p.list("ALLOWED_ORIGINS", &c.AllowedOrigins)
	p.str("JWT_SECRET", &c.JWTSecret)
	p.duration("ACCESS_TOKEN_TTL", &c.AccessTokenTTL)
	p.integer("BCRYPT_COST", &c.BcryptCost)
	p.str("SENDGRID_API_KEY", &c.SendgridAPIKey)
	p.str("MAIL_FROM", &c.MailFrom)
	p.str("RESET_URL", &c.ResetURL)
	p.str("OTEL_EXPORTER_OTLP_ENDPOINT", &c.OTLPEndpoint)
	p.boolean("OTEL_STDOUT", &c.OTelStdout)
	p.str("OTEL_SERVICE_NAME", &c.ServiceName)

	return p.err
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or pgx)", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.AppEnv == EnvProduction && c.JWTSecret == "dev_only_secret_key" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	for name, d := range map[string]time.Duration{
		"SESSION_TTL":            c.SessionTTL,
		"REMEMBER_TOKEN_TTL":     c.RememberTokenTTL,
		"RESET_TOKEN_TTL":        c.ResetTokenTTL,
		"ACCESS_TOKEN_TTL":       c.AccessTokenTTL,
		"TOKEN_CLEANUP_INTERVAL": c.CleanupInterval,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

// parser applies environment overrides and keeps the first error.
type parser struct {
	lookup lookupFunc
	err    error
}

func (p *parser) get(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (p *parser) fail(key, value string, err error) {
	if p.err == nil {
		p.err = fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
}

func (p *parser) str(key string, dst *string) {
	if v, ok := p.get(key); ok {
		*dst = v
	}
}

func (p *parser) boolean(key string, dst *bool) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = b
}

func (p *parser) integer(key string, dst *int) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = n
}

func (p *parser) duration(key string, dst *time.Duration) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.fail(key, v, err)
		return
	}
	*dst = d
}

func (p *parser) level(key string, dst *slog.Level) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	if err := dst.UnmarshalText([]byte(v)); err != nil {
		p.fail(key, v, err)
	}
}

func (p *parser) list(key string, dst *[]string) {
	v, ok := p.get(key)
	if !ok {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
