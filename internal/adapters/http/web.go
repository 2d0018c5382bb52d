package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"hourlog/internal/adapters/email"
	"hourlog/internal/adapters/http/middleware"
	"hourlog/internal/adapters/http/perf"
	accountStore "hourlog/internal/adapters/storage/account"
	entryStore "hourlog/internal/adapters/storage/entry"
	groupStore "hourlog/internal/adapters/storage/group"
	profileStore "hourlog/internal/adapters/storage/profile"
	recordStore "hourlog/internal/adapters/storage/record"
	regularStore "hourlog/internal/adapters/storage/regular"
	sessionStore "hourlog/internal/adapters/storage/session"
	"hourlog/internal/application/orchestrators"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore accountStore.Store
	GroupStore   groupStore.Store
	SessionStore sessionStore.Store
	ProfileStore profileStore.Store
	EntryStore   entryStore.Store
	RegularStore regularStore.Store
	RecordStore  recordStore.Store
}

// loadCSRFKey reads the CSRF secret from HOURLOG_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("HOURLOG_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("HOURLOG_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("HOURLOG_ENV") == "production" {
		log.Fatal("HOURLOG_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set HOURLOG_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Global sync dependencies (set by SetSyncDeps; sync routes 503 until then)
var syncDeps *orchestrators.FullSyncDeps

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// SetSyncDeps wires the external feed reconcilers into the sync routes.
// Deployments without feed credentials skip this and the routes report
// sync as unconfigured.
func SetSyncDeps(deps orchestrators.FullSyncDeps) {
	syncDeps = &deps
}

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("HOURLOG_ENV") == "production"

	mux := http.NewServeMux()
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
