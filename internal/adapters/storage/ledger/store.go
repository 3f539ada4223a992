package ledger

import (
	"context"
	"errors"

	"gymdesk/internal/domain/booking"
)

// ErrNotFound is returned by GetByID when no booking has the given ID.
var ErrNotFound = errors.New("booking not found")

// Store persists the booking ledger in insertion order. Per-user listings
// are deliberately not sorted by session date.
type Store interface {
	List(ctx context.Context) ([]booking.Booking, error)
	ListByUserID(ctx context.Context, userID int64) ([]booking.Booking, error)
	GetByID(ctx context.Context, id int64) (booking.Booking, error)
	Append(ctx context.Context, b booking.Booking) error
	Remove(ctx context.Context, id int64) error
	RemoveByCourseID(ctx context.Context, courseID int64) error
}
