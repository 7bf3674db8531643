package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.AccessTokenTTL != 3600 || cfg.RefreshTokenTTL != 86400 {
		t.Fatalf("default TTLs = %d/%d", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.RedisChannel != "cart_snapshots" {
		t.Fatalf("default redis channel = %q", cfg.RedisChannel)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Fatalf("expected fallback allowed origins")
	}
	if cfg.JWTSecretKey != "defaultsecret" {
		t.Fatalf("expected insecure default secret, got %q", cfg.JWTSecretKey)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte("port: \"9090\"\njwt_secret_key: filesecret\nredis_addr: localhost:6379\nallowed_origins:\n  - https://shop.example.com\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.JWTSecretKey != "filesecret" {
		t.Fatalf("secret = %q", cfg.JWTSecretKey)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("redis addr = %q", cfg.RedisAddr)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://shop.example.com" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"9090\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "7000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7000" {
		t.Fatalf("env should win over file, port = %q", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Fatalf("origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml", nil)
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
}
