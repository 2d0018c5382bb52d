package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"hourlog/internal/adapters/email"
	"hourlog/internal/adapters/feed"
	web "hourlog/internal/adapters/http"
	"hourlog/internal/adapters/http/perf"
	"hourlog/internal/adapters/liststore"
	accountStore "hourlog/internal/adapters/storage/account"
	entryStore "hourlog/internal/adapters/storage/entry"
	groupStore "hourlog/internal/adapters/storage/group"
	profileStore "hourlog/internal/adapters/storage/profile"
	recordStore "hourlog/internal/adapters/storage/record"
	regularStore "hourlog/internal/adapters/storage/regular"
	sessionStore "hourlog/internal/adapters/storage/session"
	"hourlog/internal/application/orchestrators"
	"hourlog/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// Pick the list store backend: the remote HTTP store when configured,
	// a local sqlite file otherwise. Both sit behind the same read cache.
	var backend liststore.Client
	if cfg.UseRemoteStore() {
		backend = liststore.NewHTTPClient(cfg.StoreBaseURL, cfg.StoreToken)
		slog.Info("list_store_configured", "backend", "remote", "base_url", cfg.StoreBaseURL)
	} else {
		sqlite, err := liststore.NewSQLiteClient(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite store: %v", err)
		}
		defer sqlite.Close()
		backend = sqlite
		slog.Info("list_store_configured", "backend", "sqlite", "path", cfg.SQLitePath)
	}
	client := liststore.NewCachedClient(backend)
	scheme := liststore.SchemeFor(cfg.NamingMode)

	acctStore := accountStore.NewListStore(client)
	stores := &web.Stores{
		AccountStore: acctStore,
		GroupStore:   groupStore.NewListStore(client),
		SessionStore: sessionStore.NewListStore(client, scheme),
		ProfileStore: profileStore.NewListStore(client),
		EntryStore:   entryStore.NewListStore(client, scheme),
		RegularStore: regularStore.NewListStore(client, scheme),
		RecordStore:  recordStore.NewListStore(client, scheme),
	}

	ctx := context.Background()

	// Seed the admin account on first run. Skipped when no credentials are
	// configured, so a fresh dev checkout still starts.
	seedInput := orchestrators.SeedAdminInput{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	if err := orchestrators.ExecuteSeedAdmin(ctx, seedInput, orchestrators.SeedAdminDeps{AccountStore: acctStore}); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	if cfg.ResendKey != "" {
		web.SetEmailSender(email.NewResendSender(cfg.ResendKey, cfg.EmailFrom))
		slog.Info("email_sender_configured", "sender", "resend")
	} else {
		web.SetEmailSender(email.NewNoopSender())
		if cfg.Env == "production" {
			slog.Warn("email_delivery_disabled", "reason", "HOURLOG_RESEND_KEY not set")
		} else {
			slog.Info("email_sender_configured", "sender", "noop")
		}
	}

	// Wire the external feed reconcilers when credentials are present. The
	// sync routes report sync as unconfigured otherwise.
	if cfg.FeedConfigured() {
		provider := feed.NewHTTPProvider(cfg.FeedBaseURL, cfg.FeedOrgID, cfg.FeedToken)
		syncDeps := orchestrators.FullSyncDeps{
			Sessions: orchestrators.SyncSessionsDeps{
				Feed:         provider,
				GroupStore:   stores.GroupStore,
				SessionStore: stores.SessionStore,
			},
			Attendees: orchestrators.SyncAttendeesDeps{
				Feed:             provider,
				SessionStore:     stores.SessionStore,
				ProfileStore:     stores.ProfileStore,
				EntryStore:       stores.EntryStore,
				RecordStore:      stores.RecordStore,
				ConsentQuestions: cfg.ConsentQuestions,
			},
		}
		web.SetSyncDeps(syncDeps)
		slog.Info("feed_configured", "base_url", cfg.FeedBaseURL, "org", cfg.FeedOrgID)

		if cfg.SyncInterval > 0 {
			orchestrators.StartSyncWorker(ctx, cfg.SyncInterval, syncDeps)
		}
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	mux := web.NewMux(stores, collector)

	slog.Info("server_starting", "version", version, "addr", cfg.Addr, "env", cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
