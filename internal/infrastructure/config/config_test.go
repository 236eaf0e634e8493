package config

import (
	"context"
	"testing"
	"time"
)

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "access-secret")
	t.Setenv("REFRESH_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredSecrets(t)

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Auth.AccessTTL != 15*time.Minute {
		t.Fatalf("access ttl default: %v", cfg.Auth.AccessTTL)
	}
	if cfg.Auth.RefreshTTL != 168*time.Hour {
		t.Fatalf("refresh ttl default: %v", cfg.Auth.RefreshTTL)
	}
	if cfg.Auth.RotateRefresh {
		t.Fatalf("rotation must default to off")
	}
	if cfg.Audit.Workers != 4 {
		t.Fatalf("audit workers default: %d", cfg.Audit.Workers)
	}
	if cfg.IsProduction() {
		t.Fatalf("development env reported as production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredSecrets(t)
	t.Setenv("ENV", "production")
	t.Setenv("JWT_EXPIRES_IN", "5m")
	t.Setenv("REFRESH_EXPIRES_IN", "720h")
	t.Setenv("REFRESH_ROTATE", "true")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.IsProduction() {
		t.Fatalf("production env not detected")
	}
	if cfg.Auth.AccessTTL != 5*time.Minute || cfg.Auth.RefreshTTL != 720*time.Hour {
		t.Fatalf("ttl overrides ignored: %+v", cfg.Auth)
	}
	if !cfg.Auth.RotateRefresh {
		t.Fatalf("rotation override ignored")
	}
}

func TestLoad_RejectsMissingSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REFRESH_SECRET", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing secrets")
	}

	t.Setenv("JWT_SECRET", "access-secret")
	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for missing refresh secret")
	}
}

func TestLoad_RejectsEqualSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "same-secret")
	t.Setenv("REFRESH_SECRET", "same-secret")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for identical secrets")
	}
}
