package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gymdesk/internal/application/activity"
	"gymdesk/internal/domain/user"
)

// SessionStoreForAuth defines the session store interface needed by the auth orchestrators.
type SessionStoreForAuth interface {
	Save(ctx context.Context, token string, u user.User) error
	Clear(ctx context.Context) error
}

// There is no credential verification in this system: any non-empty email
// and password mint a fresh session user. This is the documented client-only
// trust model; a production deployment needs a real auth collaborator.
var ErrMissingCredentials = errors.New("email and password are required")

// ErrMissingName is returned by Register when either name field is empty.
var ErrMissingName = errors.New("first and last name are required")

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput carries input for the registration orchestrator.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthDeps holds dependencies for the auth orchestrators.
type AuthDeps struct {
	SessionStore  SessionStoreForAuth
	GenerateID    func() int64
	GenerateToken func() string
	Activity      *activity.Feed // optional: nil skips the feed
}

// ExecuteLogin accepts any non-empty credentials and starts a session.
// PRE: none
// POST: a fresh user with a time-based ID is persisted as the current session
func ExecuteLogin(ctx context.Context, input LoginInput, deps AuthDeps) (user.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return user.User{}, ErrMissingCredentials
	}

	u := user.User{
		ID:    deps.GenerateID(),
		Email: email,
		Name:  user.NameFromEmail(email),
	}
	if err := deps.SessionStore.Save(ctx, deps.GenerateToken(), u); err != nil {
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "login_success", "email", email)
	if deps.Activity != nil {
		deps.Activity.Record(fmt.Sprintf("User %s logged in", u.Name))
	}
	return u, nil
}

// ExecuteRegister accepts any non-empty details and starts a session.
// PRE: none
// POST: a fresh user named from the given names is persisted as the current session
func ExecuteRegister(ctx context.Context, input RegisterInput, deps AuthDeps) (user.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return user.User{}, ErrMissingCredentials
	}
	first := strings.TrimSpace(input.FirstName)
	last := strings.TrimSpace(input.LastName)
	if first == "" || last == "" {
		return user.User{}, ErrMissingName
	}

	u := user.User{
		ID:    deps.GenerateID(),
		Email: email,
		Name:  first + " " + last,
	}
	if err := deps.SessionStore.Save(ctx, deps.GenerateToken(), u); err != nil {
		return user.User{}, err
	}

	slog.Info("auth_event", "event", "register_success", "email", email)
	if deps.Activity != nil {
		deps.Activity.Record(fmt.Sprintf("New user %s registered", u.Name))
	}
	return u, nil
}

// ExecuteLogout ends the current session.
// POST: both session keys are cleared; clearing an absent session is a no-op
func ExecuteLogout(ctx context.Context, deps AuthDeps) error {
	if err := deps.SessionStore.Clear(ctx); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "logout")
	return nil
}
