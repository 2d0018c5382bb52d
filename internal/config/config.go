// Package config loads environment configuration for the server. Values come
// from HOURLOG_* variables, with a .env file loaded first when present.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Addr string // listen address
	Env  string // "development" or "production"

	// Remote list store. When StoreBaseURL is empty the server falls back
	// to a local sqlite file, so development needs no remote credentials.
	StoreBaseURL string
	StoreToken   string
	SQLitePath   string

	// NamingMode selects the store's column naming scheme: "legacy" for
	// lists whose columns kept their space-mangled names, "clean" otherwise.
	NamingMode string

	// External events feed. Empty FeedToken disables the sync surface.
	FeedBaseURL string
	FeedOrgID   string
	FeedToken   string

	// SyncInterval drives the background reconciliation worker; 0 disables it.
	SyncInterval time.Duration

	// ConsentQuestions maps feed question ids to consent record types,
	// parsed from "id=Type;id2=Type2".
	ConsentQuestions map[string]string

	// First-run admin seed. Both empty skips seeding.
	AdminEmail    string
	AdminPassword string

	// Outbound email. Empty ResendKey selects the noop sender.
	ResendKey string
	EmailFrom string
}

// Load reads configuration from the environment, after loading .env if one
// exists. Call Validate before use.
func Load() *Config {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	return &Config{
		Addr:             getEnv("HOURLOG_ADDR", ":8080"),
		Env:              getEnv("HOURLOG_ENV", "development"),
		StoreBaseURL:     getEnv("HOURLOG_STORE_URL", ""),
		StoreToken:       getEnv("HOURLOG_STORE_TOKEN", ""),
		SQLitePath:       getEnv("HOURLOG_SQLITE_PATH", "hourlog.db"),
		NamingMode:       getEnv("HOURLOG_NAMING", "legacy"),
		FeedBaseURL:      getEnv("HOURLOG_FEED_URL", ""),
		FeedOrgID:        getEnv("HOURLOG_FEED_ORG", ""),
		FeedToken:        getEnv("HOURLOG_FEED_TOKEN", ""),
		SyncInterval:     getDuration("HOURLOG_SYNC_INTERVAL", 0),
		ConsentQuestions: parseConsentQuestions(os.Getenv("HOURLOG_CONSENT_QUESTIONS")),
		AdminEmail:       getEnv("HOURLOG_ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("HOURLOG_ADMIN_PASSWORD", ""),
		ResendKey:        getEnv("HOURLOG_RESEND_KEY", ""),
		EmailFrom:        getEnv("HOURLOG_EMAIL_FROM", "Hourlog <noreply@example.org>"),
	}
}

// Validate checks the configuration for combinations that cannot start
// safely.
func (c *Config) Validate() error {
	if c.NamingMode != "legacy" && c.NamingMode != "clean" {
		return fmt.Errorf("HOURLOG_NAMING must be \"legacy\" or \"clean\", got %q", c.NamingMode)
	}
	if c.StoreBaseURL != "" && c.StoreToken == "" {
		return fmt.Errorf("HOURLOG_STORE_TOKEN is required when HOURLOG_STORE_URL is set")
	}
	if c.Env == "production" && c.StoreBaseURL == "" {
		return fmt.Errorf("HOURLOG_STORE_URL is required in production (sqlite fallback is development-only)")
	}
	if c.SyncInterval < 0 {
		return fmt.Errorf("HOURLOG_SYNC_INTERVAL cannot be negative")
	}
	if c.SyncInterval > 0 && !c.FeedConfigured() {
		return fmt.Errorf("HOURLOG_SYNC_INTERVAL needs HOURLOG_FEED_URL and HOURLOG_FEED_TOKEN")
	}
	return nil
}

// FeedConfigured reports whether the external feed can be reached.
func (c *Config) FeedConfigured() bool {
	return c.FeedBaseURL != "" && c.FeedToken != ""
}

// UseRemoteStore reports whether the remote list store is configured.
func (c *Config) UseRemoteStore() bool {
	return c.StoreBaseURL != ""
}

// parseConsentQuestions parses "id=Type;id2=Type2" pairs. Malformed pairs
// are dropped.
func parseConsentQuestions(raw string) map[string]string {
	questions := map[string]string{}
	for _, pair := range strings.Split(raw, ";") {
		id, recordType, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || id == "" || recordType == "" {
			continue
		}
		questions[id] = recordType
	}
	return questions
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
