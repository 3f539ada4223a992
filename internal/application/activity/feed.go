package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxEntries caps the feed length; older entries fall off the end.
const maxEntries = 10

// Entry is one line on the dashboard activity feed.
type Entry struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Feed is an in-memory, newest-first activity log. It is deliberately not
// persisted: the feed narrates the current session only.
type Feed struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{now: time.Now}
}

// NewFeedWithClock creates an empty feed with a fixed clock for tests.
func NewFeedWithClock(now func() time.Time) *Feed {
	return &Feed{now: now}
}

// Record prepends a message to the feed, trimming to the last 10 entries.
// PRE: message is non-empty
// POST: Recent()[0].Message == message; len(Recent()) <= 10
func (f *Feed) Record(message string) {
	if message == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := Entry{ID: uuid.New().String(), Message: message, At: f.now()}
	f.entries = append([]Entry{entry}, f.entries...)
	if len(f.entries) > maxEntries {
		f.entries = f.entries[:maxEntries]
	}
}

// Recent returns the entries newest first.
// POST: returned slice is a copy; mutating it does not affect the feed
func (f *Feed) Recent() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}
