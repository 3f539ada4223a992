package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"gymdesk/internal/adapters/storage/kv"
	"gymdesk/internal/domain/user"
)

// KVStore persists the active session: an opaque auth token whose presence
// alone implies logged-in, plus the current user record. One logical
// session exists at a time; saving replaces any previous one.
type KVStore struct {
	backend kv.Store
}

// NewKVStore creates a session store over the given backend.
func NewKVStore(backend kv.Store) *KVStore {
	return &KVStore{backend: backend}
}

// Save stores the token and user, replacing any existing session.
// PRE: token is non-empty, u is non-zero
func (s *KVStore) Save(ctx context.Context, token string, u user.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, kv.KeyAuthToken, token); err != nil {
		return err
	}
	return s.backend.Set(ctx, kv.KeyCurrentUser, string(raw))
}

// Load retrieves the persisted session, if any.
// POST: ok is false when no auth token is stored or the user is unreadable
func (s *KVStore) Load(ctx context.Context) (token string, u user.User, ok bool, err error) {
	token, ok, err = s.backend.Get(ctx, kv.KeyAuthToken)
	if err != nil || !ok {
		return "", user.User{}, false, err
	}
	raw, ok, err := s.backend.Get(ctx, kv.KeyCurrentUser)
	if err != nil || !ok {
		return "", user.User{}, false, err
	}
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		slog.Warn("session_event", "event", "current_user_unparseable", "error", err)
		return "", user.User{}, false, nil
	}
	return token, u, true, nil
}

// Clear removes both session keys. Clearing an absent session is a no-op.
func (s *KVStore) Clear(ctx context.Context) error {
	if err := s.backend.Delete(ctx, kv.KeyAuthToken); err != nil {
		return err
	}
	return s.backend.Delete(ctx, kv.KeyCurrentUser)
}
