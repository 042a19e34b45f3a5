package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected default addr: %s", cfg.HTTPAddr)
	}
	if cfg.DBMaxConns != 0 {
		t.Fatalf("expected driver-default pool size, got %d", cfg.DBMaxConns)
	}
	if cfg.SessionTTL != 48*time.Hour {
		t.Fatalf("unexpected default session ttl: %s", cfg.SessionTTL)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("SESSION_TTL_SECONDS", "3600")

	cfg := FromEnv()

	if cfg.DBMaxConns != 25 {
		t.Fatalf("expected pool cap 25, got %d", cfg.DBMaxConns)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("expected 1h session ttl, got %s", cfg.SessionTTL)
	}
}

func TestFromEnv_BadIntFallsBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")

	if cfg := FromEnv(); cfg.DBMaxConns != 0 {
		t.Fatalf("expected fallback to default, got %d", cfg.DBMaxConns)
	}
}
