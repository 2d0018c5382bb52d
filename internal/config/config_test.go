package config

import (
	"testing"
	"time"
)

// TestLoadDefaults verifies the zero-environment configuration is runnable
// for development.
func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.NamingMode != "legacy" {
		t.Errorf("NamingMode = %q, want legacy", cfg.NamingMode)
	}
	if cfg.UseRemoteStore() {
		t.Error("UseRemoteStore = true with no store URL")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

// TestValidateRejections verifies the startup guard rails.
func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad naming mode", Config{NamingMode: "sharepoint"}},
		{"store url without token", Config{NamingMode: "legacy", StoreBaseURL: "https://store.example.org"}},
		{"production without store", Config{NamingMode: "legacy", Env: "production"}},
		{"sync without feed", Config{NamingMode: "legacy", SyncInterval: time.Minute}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

// TestParseConsentQuestions verifies pair parsing and malformed-pair drops.
func TestParseConsentQuestions(t *testing.T) {
	got := parseConsentQuestions("123=Photo Consent; 456=Privacy Consent;;bad;=x;789=")
	if len(got) != 2 {
		t.Fatalf("parsed %d pairs, want 2: %v", len(got), got)
	}
	if got["123"] != "Photo Consent" || got["456"] != "Privacy Consent" {
		t.Errorf("unexpected map: %v", got)
	}
}

// TestSetEnvOverrides verifies environment values win over defaults.
func TestSetEnvOverrides(t *testing.T) {
	t.Setenv("HOURLOG_ADDR", ":9999")
	t.Setenv("HOURLOG_SYNC_INTERVAL", "15m")
	t.Setenv("HOURLOG_FEED_URL", "https://feed.example.org")
	t.Setenv("HOURLOG_FEED_TOKEN", "token")

	cfg := Load()
	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.SyncInterval != 15*time.Minute {
		t.Errorf("SyncInterval = %v, want 15m", cfg.SyncInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}
