package config

import (
	"os"
	"path/filepath"
	"testing"
)

// Load is process-global (sync.Once), so this single test exercises
// both file values and environment overrides in one pass.
func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	yaml := []byte(`server:
  port: 8080
auth:
  session_secret: file-session
  reset_secret: file-reset
`)
	if err := os.WriteFile(path, yaml, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// nested keys map dots to underscores
	t.Setenv("EM_AUTH_SESSION_SECRET", "env-session")
	t.Setenv("EM_SERVER_PORT", "9001")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.Auth.SessionSecret != "env-session" {
		t.Errorf("session secret = %q, want env override env-session", cfg.Auth.SessionSecret)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("server port = %d, want env override 9001", cfg.Server.Port)
	}
	if cfg.Auth.ResetSecret != "file-reset" {
		t.Errorf("reset secret = %q, want file value file-reset", cfg.Auth.ResetSecret)
	}
}
