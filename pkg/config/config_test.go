package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "INFO"

database:
  type: sqlite
  sqlite:
    path: "` + filepath.ToSlash(tmpDir) + `/metadata.db"

api:
  port: 8080
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Logging.Format != "text" {
		t.Errorf("expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected default shutdown_timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("expected api port 8080, got %d", cfg.API.Port)
	}
	if cfg.API.ReadTimeout != 15*time.Second {
		t.Errorf("expected default api read timeout 15s, got %v", cfg.API.ReadTimeout)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error loading default config, got %v", err)
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("expected default logging level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.Database.Type)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("SKYMETA_LOGGING_LEVEL", "DEBUG")
	t.Setenv("SKYMETA_API_PORT", "9999")

	// Viper's AutomaticEnv only overrides keys it already knows about, so the
	// config file must declare the keys we expect the environment to override.
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := `
logging:
  level: "INFO"

database:
  type: sqlite
  sqlite:
    path: "` + filepath.ToSlash(tmpDir) + `/metadata.db"

api:
  port: 8080
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("expected env override to set logging level DEBUG, got %q", cfg.Logging.Level)
	}
	if cfg.API.Port != 9999 {
		t.Errorf("expected env override to set api port 9999, got %d", cfg.API.Port)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Database.SQLite.Path = filepath.Join(tmpDir, "metadata.db")

	if err := SaveConfig(cfg, configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Logging.Level != cfg.Logging.Level {
		t.Errorf("expected logging level %q after reload, got %q", cfg.Logging.Level, loaded.Logging.Level)
	}
}
