package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q, want %q", cfg.UserAgent, DefaultUserAgent)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %s, want 30s", cfg.Timeout)
	}
	if cfg.DataDir != "." {
		t.Errorf("DataDir = %q, want .", cfg.DataDir)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOCKEYREF_BASE_URL", "http://localhost:9999")
	t.Setenv("HOCKEYREF_TIMEOUT", "5s")
	t.Setenv("HOCKEYREF_DATA_DIR", "/tmp/hockey")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.Timeout)
	}
	if cfg.DataDir != "/tmp/hockey" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"unparsable", "soon"},
		{"zero", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOCKEYREF_TIMEOUT", tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with HOCKEYREF_TIMEOUT=%q: expected error, got nil", tt.value)
			}
		})
	}
}
