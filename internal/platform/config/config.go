// Package config builds runtime configuration from the environment. No other
// package reads environment variables; everything downstream receives
// injected config.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string

	// Bootstrap credentials for the single privileged admin. When either is
	// empty the bootstrap step logs and skips.
	AdminEmail    string
	AdminPassword string

	SMTP SMTP

	// RedisURL enables the redis-backed rate-limit counter when set;
	// otherwise an in-process counter is used.
	RedisURL string

	// Rate limit for the public registration endpoint, per client IP.
	RegistrationRateLimit  int
	RegistrationRateWindow time.Duration

	// NotifyBuffer bounds the confirmation-mail queue. A full queue drops
	// rather than blocks.
	NotifyBuffer int
}

// SMTP configures the outbound confirmation mailer. Sending is disabled when
// Host is empty.
type SMTP struct {
	Host     string
	Port     string
	From     string
	Password string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	cfg := Config{
		Addr:          envOr("BLOODCAMP_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envOr("SMTP_PORT", "587"),
			From:     os.Getenv("SMTP_FROM"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		RedisURL:               os.Getenv("REDIS_URL"),
		RegistrationRateLimit:  envOrInt("REGISTRATION_RATE_LIMIT", 30),
		RegistrationRateWindow: envOrDuration("REGISTRATION_RATE_WINDOW", time.Minute),
		NotifyBuffer:           envOrInt("NOTIFY_BUFFER", 256),
	}

	if cfg.JWTSigningKey == "" {
		// Development default - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envOrDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
