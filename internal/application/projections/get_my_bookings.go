package projections

import (
	"context"

	"gymdesk/internal/domain/booking"
)

// MyBookingsStore defines the store interface needed by this projection.
type MyBookingsStore interface {
	ListByUserID(ctx context.Context, userID int64) ([]booking.Booking, error)
}

// GetMyBookingsDeps holds dependencies for the projection.
type GetMyBookingsDeps struct {
	BookingStore MyBookingsStore
}

// QueryGetMyBookings returns the user's bookings in insertion order.
// Unlike the calendar projections these are not sorted by session date:
// the ledger reads back in booking order.
func QueryGetMyBookings(ctx context.Context, userID int64, deps GetMyBookingsDeps) ([]booking.Booking, error) {
	bookings, err := deps.BookingStore.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []booking.Booking{}
	}
	return bookings, nil
}
