// Package workflow holds the booking confirmation state machine: a user
// selects a class session, reviews it, and either confirms or dismisses.
// Only Confirm touches the ledger.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/application/activity"
	"gymdesk/internal/domain/booking"
	"gymdesk/internal/domain/course"
	"gymdesk/internal/domain/user"
)

// Workflow states.
const (
	StateIdle    = "idle"
	StatePending = "pending_confirmation"
)

var (
	// ErrClassNotFound means the selected course no longer exists. The IDs
	// come from rendered sessions, so this points at inconsistent state:
	// the flow resets to idle.
	ErrClassNotFound = errors.New("class not found")
	// ErrAuthRequired blocks confirmation when no user session is active.
	// The pending selection is kept so the user can log in and retry.
	ErrAuthRequired = errors.New("sign in to confirm a booking")
	// ErrNothingPending means Confirm was called with no selected class.
	ErrNothingPending = errors.New("no class selected")
)

// CourseStoreForBooking defines the course store interface needed by the workflow.
type CourseStoreForBooking interface {
	GetByID(ctx context.Context, id int64) (course.Course, error)
}

// LedgerForBooking defines the booking store interface needed by the workflow.
type LedgerForBooking interface {
	Append(ctx context.Context, b booking.Booking) error
}

// Deps holds dependencies for a booking workflow.
type Deps struct {
	CourseStore CourseStoreForBooking
	Ledger      LedgerForBooking
	GenerateID  func() int64
	Now         func() time.Time
	Sender      email.Sender   // optional: nil skips confirmation email
	EmailFrom   string
	Activity    *activity.Feed // optional: nil skips the feed
}

// Pending is the captured selection awaiting confirmation. It lives outside
// the ledger; nothing is persisted until Confirm.
type Pending struct {
	Course   course.Course `json:"course"`
	StartsAt time.Time     `json:"startsAt"`
}

// Booking drives one user session's booking flow. Each UI session owns its
// own instance.
type Booking struct {
	mu      sync.Mutex
	deps    Deps
	pending *Pending
}

// New creates an idle booking workflow.
func New(deps Deps) *Booking {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Booking{deps: deps}
}

// State returns the current workflow state.
func (w *Booking) State() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		return StatePending
	}
	return StateIdle
}

// Select captures a class session for confirmation.
// POST: on success the workflow is pending; on ErrClassNotFound it is idle
func (w *Booking) Select(ctx context.Context, courseID int64, startsAt time.Time) (Pending, error) {
	c, err := w.deps.CourseStore.GetByID(ctx, courseID)
	if err != nil {
		w.mu.Lock()
		w.pending = nil
		w.mu.Unlock()
		return Pending{}, ErrClassNotFound
	}

	p := Pending{Course: c, StartsAt: startsAt}
	w.mu.Lock()
	w.pending = &p
	w.mu.Unlock()
	return p, nil
}

// Confirm commits the pending selection to the ledger for u.
// PRE: a class has been selected
// POST: exactly one booking was appended with title/trainer snapshots taken
// from the selection; the workflow is idle. On ErrAuthRequired the pending
// selection is preserved so a re-login can retry.
func (w *Booking) Confirm(ctx context.Context, u user.User) (booking.Booking, error) {
	w.mu.Lock()

	if w.pending == nil {
		w.mu.Unlock()
		return booking.Booking{}, ErrNothingPending
	}
	if u.IsZero() {
		w.mu.Unlock()
		return booking.Booking{}, ErrAuthRequired
	}

	b := booking.Booking{
		ID:          w.deps.GenerateID(),
		UserID:      u.ID,
		CourseID:    w.pending.Course.ID,
		ScheduleAt:  w.pending.StartsAt,
		CourseTitle: w.pending.Course.Title,
		Trainer:     w.pending.Course.Trainer,
		CreatedAt:   w.deps.Now(),
	}
	if err := b.Validate(); err != nil {
		w.mu.Unlock()
		return booking.Booking{}, err
	}
	if err := w.deps.Ledger.Append(ctx, b); err != nil {
		w.mu.Unlock()
		return booking.Booking{}, err
	}
	w.pending = nil
	// The booking is committed; release the lock before the side effects so a
	// slow email provider cannot stall other calls on this session.
	w.mu.Unlock()

	slog.Info("booking_event", "event", "booking_confirmed", "booking_id", b.ID, "course_id", b.CourseID, "user_id", b.UserID)
	if w.deps.Activity != nil {
		w.deps.Activity.Record(fmt.Sprintf("Booked class: %s with %s", b.CourseTitle, b.Trainer))
	}

	// Best-effort confirmation email; a provider failure never fails the booking.
	if w.deps.Sender != nil && u.Email != "" {
		req := email.BookingConfirmation(u.Email, w.deps.EmailFrom, b)
		if _, err := w.deps.Sender.Send(ctx, req); err != nil {
			slog.Warn("booking_event", "event", "confirmation_email_failed", "booking_id", b.ID, "error", err)
		}
	}

	return b, nil
}

// Dismiss discards the pending selection without touching the ledger.
// POST: the workflow is idle
func (w *Booking) Dismiss() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = nil
}
