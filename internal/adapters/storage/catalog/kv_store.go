package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"gymdesk/internal/adapters/storage/kv"
	"gymdesk/internal/domain/course"
)

// KVStore implements Store over a key-value backend. The full catalog is
// held in memory and written back whole under kv.KeyCourses on every
// mutation, so a reload always sees the latest state.
type KVStore struct {
	mu      sync.Mutex
	backend kv.Store
	courses []course.Course
}

// NewKVStore loads the catalog from the backend. seedNeeded is true when the
// courses key is absent or unparseable; the caller is expected to run the
// seed orchestrator exactly once in that case.
func NewKVStore(ctx context.Context, backend kv.Store) (store *KVStore, seedNeeded bool, err error) {
	s := &KVStore{backend: backend}
	raw, ok, err := backend.Get(ctx, kv.KeyCourses)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return s, true, nil
	}
	if err := json.Unmarshal([]byte(raw), &s.courses); err != nil {
		slog.Warn("catalog_event", "event", "courses_unparseable", "error", err)
		s.courses = nil
		return s, true, nil
	}
	return s, false, nil
}

// List returns all courses in insertion order.
// POST: returned slice is a copy
func (s *KVStore) List(_ context.Context) ([]course.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]course.Course, len(s.courses))
	copy(out, s.courses)
	return out, nil
}

// GetByID retrieves a course by its ID.
// POST: returns ErrNotFound when no course matches
func (s *KVStore) GetByID(_ context.Context, id int64) (course.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return course.Course{}, ErrNotFound
}

// Save replaces the course with the same ID in place, or appends when the ID
// is new. The whole catalog is persisted before the method returns.
// PRE: c has been validated
func (s *KVStore) Save(ctx context.Context, c course.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced := false
	for i := range s.courses {
		if s.courses[i].ID == c.ID {
			s.courses[i] = c
			replaced = true
			break
		}
	}
	if !replaced {
		s.courses = append(s.courses, c)
	}
	return s.persist(ctx)
}

// Delete removes a course. Deleting an absent ID is a no-op and does not
// rewrite the backend.
func (s *KVStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses = append(s.courses[:i], s.courses[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// persist writes the whole catalog under the courses key.
// PRE: s.mu is held
func (s *KVStore) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.courses)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, kv.KeyCourses, string(raw))
}
