package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := []byte(`
server:
  port: "8081"
blindbox:
  default_probabilities:
    common: 70
    rare: 25
    secret: 5
  max_checkout_quantity: 10
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Server.Port != "8081" {
		t.Fatalf("port want 8081 got %s", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Fatalf("host default want 0.0.0.0 got %s", cfg.Server.Host)
	}
	if cfg.Blindbox.DefaultProbabilities.Common != 70 || cfg.Blindbox.DefaultProbabilities.Secret != 5 {
		t.Fatalf("unexpected probabilities: %+v", cfg.Blindbox.DefaultProbabilities)
	}
	if cfg.Blindbox.MaxCheckoutQuantity != 10 {
		t.Fatalf("max checkout quantity want 10 got %d", cfg.Blindbox.MaxCheckoutQuantity)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("database driver default want sqlite got %s", cfg.Database.Driver)
	}
	if cfg.Queue.Queues["default"] != 1 {
		t.Fatalf("queue default weight want 1 got %+v", cfg.Queue.Queues)
	}
}

func TestLoadFileEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"8081\"\n"), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load config failed: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("env port want 9090 got %s", cfg.Server.Port)
	}
	if !cfg.Redis.Enabled {
		t.Fatalf("env redis.enabled should be true")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("missing explicit config file should fail")
	}
}
