package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Target.URL != "http://localhost:8080" {
		t.Errorf("Target.URL = %q", cfg.Target.URL)
	}
	if cfg.HTTP.Timeout != 10*time.Second {
		t.Errorf("HTTP.Timeout = %v, want 10s", cfg.HTTP.Timeout)
	}
	if cfg.Secret.Source != "env" {
		t.Errorf("Secret.Source = %q, want env", cfg.Secret.Source)
	}
	if cfg.Secret.AWS.JSONKey != "webhooks_secret" {
		t.Errorf("Secret.AWS.JSONKey = %q", cfg.Secret.AWS.JSONKey)
	}
	if !cfg.History.Enabled {
		t.Error("expected history enabled by default")
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "hookprobe.yaml")
	content := `
target:
  url: https://hooks.example.com/in
secret:
  source: static
  value: from-file
http:
  timeout: 3s
history:
  enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HOOKPROBE_SECRET_VALUE", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Target.URL != "https://hooks.example.com/in" {
		t.Errorf("Target.URL = %q", cfg.Target.URL)
	}
	if cfg.Secret.Value != "from-env" {
		t.Errorf("Secret.Value = %q, want env override", cfg.Secret.Value)
	}
	if cfg.HTTP.Timeout != 3*time.Second {
		t.Errorf("HTTP.Timeout = %v", cfg.HTTP.Timeout)
	}
	if cfg.History.Enabled {
		t.Error("expected history disabled")
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("HOOKPROBE_TARGET_URL=https://dotenv.example.com\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	// godotenv sets process env directly; register cleanup through t.Setenv.
	t.Setenv("HOOKPROBE_TARGET_URL", "")
	os.Unsetenv("HOOKPROBE_TARGET_URL")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Target.URL != "https://dotenv.example.com" {
		t.Errorf("Target.URL = %q", cfg.Target.URL)
	}
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	t.Chdir(t.TempDir())

	if _, err := Load("does-not-exist.yaml"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestLoad_LoggingFilePathFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOOKPROBE_LOGGING_OUTPUT", "file")
	t.Setenv("HOOKPROBE_LOGGING_FILE_PATH", "logs/hookprobe.log")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Logging.Output != "file" {
		t.Errorf("Logging.Output = %q, want file", cfg.Logging.Output)
	}
	if cfg.Logging.FilePath != "logs/hookprobe.log" {
		t.Errorf("Logging.FilePath = %q, want env override", cfg.Logging.FilePath)
	}
}
