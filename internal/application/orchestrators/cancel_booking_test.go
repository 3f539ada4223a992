package orchestrators

import (
	"context"
	"testing"

	"gymdesk/internal/domain/booking"
)

// TestExecuteCancelBooking_Removes tests removing a committed booking.
func TestExecuteCancelBooking_Removes(t *testing.T) {
	ledger := &mockLedger{bookings: []booking.Booking{
		{ID: 100, UserID: 1, CourseID: 1, CourseTitle: "Morning Yoga"},
		{ID: 101, UserID: 1, CourseID: 2, CourseTitle: "HIIT Training"},
	}}

	err := ExecuteCancelBooking(context.Background(), CancelBookingInput{ID: 100}, CancelBookingDeps{BookingStore: ledger})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ledger.bookings) != 1 || ledger.bookings[0].ID != 101 {
		t.Errorf("expected only booking 101 to remain, got %+v", ledger.bookings)
	}
}

// TestExecuteCancelBooking_UnknownID tests the idempotent no-op path.
func TestExecuteCancelBooking_UnknownID(t *testing.T) {
	ledger := &mockLedger{bookings: []booking.Booking{{ID: 100, UserID: 1, CourseID: 1}}}

	err := ExecuteCancelBooking(context.Background(), CancelBookingInput{ID: 999}, CancelBookingDeps{BookingStore: ledger})
	if err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if len(ledger.bookings) != 1 {
		t.Errorf("expected ledger untouched, got %d bookings", len(ledger.bookings))
	}
}
