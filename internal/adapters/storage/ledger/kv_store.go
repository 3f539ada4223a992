package ledger

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"gymdesk/internal/adapters/storage/kv"
	"gymdesk/internal/domain/booking"
)

// KVStore implements Store over a key-value backend. Like the catalog, the
// full ledger lives in memory and is written back whole under
// kv.KeyBookings on every mutation.
type KVStore struct {
	mu       sync.Mutex
	backend  kv.Store
	bookings []booking.Booking
}

// NewKVStore loads the ledger from the backend. An absent or unparseable
// bookings key yields an empty ledger; bookings have no seed data.
func NewKVStore(ctx context.Context, backend kv.Store) (*KVStore, error) {
	s := &KVStore{backend: backend}
	raw, ok, err := backend.Get(ctx, kv.KeyBookings)
	if err != nil {
		return nil, err
	}
	if !ok {
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s.bookings); err != nil {
		slog.Warn("ledger_event", "event", "bookings_unparseable", "error", err)
		s.bookings = nil
	}
	return s, nil
}

// List returns all bookings in insertion order.
// POST: returned slice is a copy
func (s *KVStore) List(_ context.Context) ([]booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]booking.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

// ListByUserID returns the user's bookings in insertion order.
func (s *KVStore) ListByUserID(_ context.Context, userID int64) ([]booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []booking.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetByID retrieves a booking by its ID.
// POST: returns ErrNotFound when no booking matches
func (s *KVStore) GetByID(_ context.Context, id int64) (booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return booking.Booking{}, ErrNotFound
}

// Append adds a booking to the end of the ledger and persists.
// PRE: b has been validated. Duplicate bookings of the same session by the
// same user are allowed.
func (s *KVStore) Append(ctx context.Context, b booking.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, b)
	return s.persist(ctx)
}

// Remove deletes a booking by ID. Removing an absent ID is a no-op.
func (s *KVStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// RemoveByCourseID deletes every booking referencing courseID. Used by the
// course delete cascade. Bookings for other courses are untouched.
func (s *KVStore) RemoveByCourseID(ctx context.Context, courseID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.bookings[:0]
	removed := 0
	for _, b := range s.bookings {
		if b.CourseID == courseID {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	s.bookings = kept
	if removed == 0 {
		return nil
	}
	return s.persist(ctx)
}

// persist writes the whole ledger under the bookings key.
// PRE: s.mu is held
func (s *KVStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.bookings)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, kv.KeyBookings, string(raw))
}
