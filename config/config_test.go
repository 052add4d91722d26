package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	path := writeFile(t, "angler.yaml", `
content:
  provider: http
  endpoint: http://localhost:9000/fish
  timeout: 5s
network:
  enabled: true
  broadcastHz: 30
input:
  holdTimeout: 300ms
`)

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Content.Provider != ProviderHTTP || cfg.Content.Timeout != 5*time.Second {
		t.Errorf("content = %+v", cfg.Content)
	}
	if !cfg.Network.Enabled || cfg.Network.BroadcastInterval() != time.Second/30 {
		t.Errorf("network = %+v", cfg.Network)
	}
	if cfg.Input.HoldTimeout != 300*time.Millisecond {
		t.Errorf("hold timeout = %v", cfg.Input.HoldTimeout)
	}
	// Untouched sections keep defaults
	if !cfg.Audio.Enabled || cfg.Save.AppName != "pixel_angler" {
		t.Errorf("defaults lost: audio=%v save=%q", cfg.Audio.Enabled, cfg.Save.AppName)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("API_KEY")

	env := writeFile(t, ".env", "API_KEY=from-dotenv\n")
	cfg, err := Load("", env)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Content.APIKey != "from-dotenv" {
		t.Errorf("api key = %q", cfg.Content.APIKey)
	}
}

func TestAPIKeyPrecedence(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "primary")
	t.Setenv("API_KEY", "secondary")
	if got := APIKey(); got != "primary" {
		t.Errorf("APIKey = %q, want primary", got)
	}
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing env file: %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "content: [unterminated"},
		{"unknown provider", "content:\n  provider: carrier-pigeon\n"},
		{"http without endpoint", "content:\n  provider: http\n"},
		{"zero timeout", "content:\n  timeout: 0s\n"},
		{"zero hold", "input:\n  holdTimeout: 0s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "c.yaml", tt.body), ""); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Error("missing config file accepted")
	}
}
