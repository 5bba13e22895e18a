// internal/config/config.go
//
// Environment-driven configuration. main loads .env (if present) with
// godotenv before calling Load, so either source works.

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const devSecret = "dev_secret_change_me"

// Config holds all runtime settings.
type Config struct {
	Port         string
	LogLevel     string
	LogFormat    string // "json" | "console"
	ClientOrigin string
	Production   bool

	TokenSecret string
	TokenTTL    time.Duration
	CookieName  string

	MaxAttempts int
	WordsFile   string
	DailySalt   string

	SessionIdle   time.Duration
	SweepInterval time.Duration
}

// Load reads the environment, keeping defaults for unset or unparsable values.
func Load() *Config {
	cfg := &Config{
		Port:          envStr("PORT", "5175"),
		LogLevel:      envStr("LOG_LEVEL", "info"),
		LogFormat:     strings.ToLower(envStr("LOG_FORMAT", "json")),
		ClientOrigin:  envStr("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:    os.Getenv("NODE_ENV") == "production" || os.Getenv("APP_ENV") == "production",
		TokenSecret:   envStr("TOKEN_SECRET", devSecret),
		TokenTTL:      time.Duration(envInt("TOKEN_TTL_HOURS", 12)) * time.Hour,
		CookieName:    envStr("COOKIE_NAME", "vault_token"),
		MaxAttempts:   envInt("MAX_ATTEMPTS", 2),
		WordsFile:     strings.TrimSpace(os.Getenv("VAULT_WORDS_FILE")),
		DailySalt:     envStr("DAILY_SALT", "local_dev_salt"),
		SessionIdle:   time.Duration(envInt("SESSION_IDLE_MINUTES", 60)) * time.Minute,
		SweepInterval: time.Duration(envInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,
	}
	return cfg
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxAttempts <= 0 {
		errs = append(errs, errors.New("MAX_ATTEMPTS must be positive"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL_HOURS must be positive"))
	}
	if c.SessionIdle <= 0 || c.SweepInterval <= 0 {
		errs = append(errs, errors.New("SESSION_IDLE_MINUTES and SWEEP_INTERVAL_SECONDS must be positive"))
	}
	if c.Production && c.TokenSecret == devSecret {
		errs = append(errs, errors.New("TOKEN_SECRET must be set in production"))
	}
	return errors.Join(errs...)
}

// envStr returns the trimmed value of k or def if unset/empty.
func envStr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def.
func envInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
