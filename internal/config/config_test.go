package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "MAX_ATTEMPTS", "TOKEN_TTL_HOURS", "NODE_ENV", "APP_ENV", "TOKEN_SECRET", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "5175" || cfg.MaxAttempts != 2 || cfg.TokenTTL != 12*time.Hour || cfg.LogFormat != "json" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadOverridesAndBadNumbers(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MAX_ATTEMPTS", "6")
	t.Setenv("SESSION_IDLE_MINUTES", "lots")
	t.Setenv("LOG_FORMAT", "Console")
	cfg := Load()
	if cfg.Port != "8080" || cfg.MaxAttempts != 6 || cfg.LogFormat != "console" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SessionIdle != 60*time.Minute {
		t.Fatalf("unparsable value should keep default, got %v", cfg.SessionIdle)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "0")
	if err := Load().Validate(); err == nil {
		t.Fatalf("expected error for MAX_ATTEMPTS=0")
	}

	t.Setenv("MAX_ATTEMPTS", "2")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("TOKEN_SECRET", "")
	if err := Load().Validate(); err == nil {
		t.Fatalf("expected error for default secret in production")
	}
	t.Setenv("TOKEN_SECRET", "s3cret")
	if err := Load().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
