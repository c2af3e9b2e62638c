package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	for _, key := range []string{"ADDR", "CORS_ORIGIN", "DB_PATH", "JWT_SECRET", "TOKEN_TTL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Addr != ":8080" || cfg.Auth.TokenTTL != 24*time.Hour {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("defaults should validate: %v", err)
		}
	})

	t.Run("file then env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tabsplit.yaml")
		content := `
server:
  addr: ":9090"
database:
  path: /var/lib/tabsplit/bills.db
auth:
  jwt_secret: file-secret-value
  token_ttl: 2h
log:
  level: debug
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		t.Setenv("DB_PATH", "/tmp/override.db")
		t.Setenv("LOG_FORMAT", "JSON")

		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Server.Addr != ":9090" {
			t.Errorf("expected addr from file, got %q", cfg.Server.Addr)
		}
		if cfg.Auth.TokenTTL != 2*time.Hour || cfg.Auth.JWTSecret != "file-secret-value" {
			t.Errorf("unexpected auth config: %+v", cfg.Auth)
		}
		if cfg.Database.Path != "/tmp/override.db" {
			t.Errorf("expected env to override file, got %q", cfg.Database.Path)
		}
		if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
			t.Errorf("unexpected log config: %+v", cfg.Log)
		}
	})

	t.Run("bad token ttl", func(t *testing.T) {
		t.Setenv("TOKEN_TTL", "forever")
		if _, err := Load(""); err == nil {
			t.Error("expected an error for an unparsable TOKEN_TTL")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected an error for a missing config file")
		}
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "Server.Addr"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "Database.Path"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "Auth.JWTSecret"},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "Auth.TokenTTL"},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, "Log.Level"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "Log.Format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to mention %s, got %v", tt.field, err)
			}
		})
	}
}
