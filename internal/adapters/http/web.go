package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"sync"
	"time"

	emailPkg "gymdesk/internal/adapters/email"
	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/storage/catalog"
	"gymdesk/internal/adapters/storage/ledger"
	sessionStore "gymdesk/internal/adapters/storage/session"
	"gymdesk/internal/application/activity"
	"gymdesk/internal/application/workflow"
	"gymdesk/internal/domain/user"
)

// Stores holds all storage dependencies.
type Stores struct {
	Catalog catalog.Store
	Ledger  ledger.Store
	Session *sessionStore.KVStore
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global activity feed (set by NewMux)
var feed *activity.Feed

// Global email sender and from address (set by SetEmailSender)
var emailSender emailPkg.Sender
var emailFromAddress string

// Entity ID generator (set by NewMux)
var generateID func() int64

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// viewState is the per-session calendar and booking-flow state. The viewed
// month and selected date belong to one browser session, not to the process.
// Parallel requests on one session share the struct, so field access goes
// through the mutex.
type viewState struct {
	mu          sync.Mutex
	viewedMonth time.Time  // normalized to the first of the month
	selected    *time.Time // nil means no date selected
	flow        *workflow.Booking
}

// calendar returns the viewed month and selection together.
func (v *viewState) calendar() (time.Time, *time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewedMonth, v.selected
}

// shiftMonth moves the viewed month forward or back.
func (v *viewState) shiftMonth(months int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.viewedMonth = v.viewedMonth.AddDate(0, months, 0)
}

// selectDate sets the selected calendar day.
func (v *viewState) selectDate(date time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = &date
}

var viewsMu sync.Mutex
var views map[string]*viewState

// SetEmailSender sets the global email sender for booking confirmations.
func SetEmailSender(sender emailPkg.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// RestoreSession resumes a persisted session under its original token, so a
// browser still holding the cookie stays logged in across restarts.
func RestoreSession(token string, u user.User) {
	sessions.Create(token, u)
}

// LoadCSRFKey decodes the configured CSRF secret, or generates a random
// per-startup key outside production.
func LoadCSRFKey(keyHex string, production bool) []byte {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYMDESK_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if production {
		log.Fatal("GYMDESK_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYMDESK_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, f *activity.Feed, idGen func() int64, csrfKey []byte) http.Handler {
	stores = s
	feed = f
	generateID = idGen
	sessions = middleware.NewSessionStore()
	views = make(map[string]*viewState)

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> Auth -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
	)
}

// getView returns the calendar/booking state for a session, creating it on
// first use with the current month viewed and nothing selected.
func getView(token string) *viewState {
	viewsMu.Lock()
	defer viewsMu.Unlock()
	if v, ok := views[token]; ok {
		return v
	}
	now := timeNow().Local()
	v := &viewState{
		viewedMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local),
		flow: workflow.New(workflow.Deps{
			CourseStore: stores.Catalog,
			Ledger:      stores.Ledger,
			GenerateID:  generateID,
			Now:         timeNow,
			Sender:      emailSender,
			EmailFrom:   emailFromAddress,
			Activity:    feed,
		}),
	}
	views[token] = v
	return v
}

// dropView discards a session's calendar/booking state on logout.
func dropView(token string) {
	viewsMu.Lock()
	defer viewsMu.Unlock()
	delete(views, token)
}
