package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/application/activity"
	"gymdesk/internal/domain/booking"
)

// LedgerForCancel defines the booking store interface needed by CancelBooking.
type LedgerForCancel interface {
	GetByID(ctx context.Context, id int64) (booking.Booking, error)
	Remove(ctx context.Context, id int64) error
}

// CancelBookingInput carries input for the cancel-booking orchestrator.
type CancelBookingInput struct {
	ID int64
}

// CancelBookingDeps holds dependencies for CancelBooking.
type CancelBookingDeps struct {
	BookingStore LedgerForCancel
	Activity     *activity.Feed // optional: nil skips the feed
}

// ExecuteCancelBooking removes a committed booking. The user-facing
// confirmation prompt is the caller's job; cancelling an ID that does not
// exist is a silent no-op (idempotent-delete policy).
func ExecuteCancelBooking(ctx context.Context, input CancelBookingInput, deps CancelBookingDeps) error {
	b, err := deps.BookingStore.GetByID(ctx, input.ID)
	if err != nil {
		slog.Info("booking_event", "event", "cancel_noop", "booking_id", input.ID)
		return nil
	}

	if err := deps.BookingStore.Remove(ctx, input.ID); err != nil {
		return err
	}

	slog.Info("booking_event", "event", "booking_cancelled", "booking_id", input.ID, "course_id", b.CourseID)
	if deps.Activity != nil {
		deps.Activity.Record(fmt.Sprintf("Cancelled booking: %s", b.CourseTitle))
	}
	return nil
}
