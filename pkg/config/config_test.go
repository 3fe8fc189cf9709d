package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Mode != ModePreloaded {
		t.Errorf("expected default mode %q, got %q", ModePreloaded, cfg.Source.Mode)
	}
	if cfg.Source.Dir != "data" {
		t.Errorf("expected default dir data, got %q", cfg.Source.Dir)
	}
	if cfg.Source.AllowMissingBranches {
		t.Error("missing branch files should be strict by default")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
  readTimeout: 3s
source:
  dir: /srv/zengin
  mode: embedded
  allowMissingBranches: true
redis:
  keyPrefix: "test:"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ZG_SERVER_PORT", "9100")
	t.Setenv("ZG_KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("env override not applied: port=%d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 3*time.Second {
		t.Errorf("readTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 10*time.Second {
		t.Errorf("default writeTimeout lost: %v", cfg.Server.WriteTimeout)
	}
	if cfg.Source.Dir != "/srv/zengin" || cfg.Source.Mode != ModeEmbedded || !cfg.Source.AllowMissingBranches {
		t.Errorf("unexpected source config: %+v", cfg.Source)
	}
	if cfg.Redis.KeyPrefix != "test:" || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if len(cfg.Kafka.Brokers) != 2 {
		t.Errorf("expected 2 brokers, got %v", cfg.Kafka.Brokers)
	}
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("ZG_SOURCE_MODE", "fuzzy")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadDevelopmentConfig(t *testing.T) {
	cfg, err := Load("../../configs/development.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.Mode != ModePreloaded || cfg.Source.Dir != "data" {
		t.Errorf("source = %+v", cfg.Source)
	}
	if cfg.Source.LookupTimeout != 2*time.Second {
		t.Errorf("lookupTimeout = %v", cfg.Source.LookupTimeout)
	}
	if cfg.Redis.KeyPrefix != "zengin:" {
		t.Errorf("keyPrefix = %q", cfg.Redis.KeyPrefix)
	}
}
