package kv

import "context"

// Well-known keys. Each entity set is persisted whole under its key so a
// reload always reflects the latest mutation.
const (
	KeyCourses     = "courses"
	KeyBookings    = "bookings"
	KeyAuthToken   = "authToken"
	KeyCurrentUser = "currentUser"
)

// Store is the key-value persistence contract the application writes through.
// Values are JSON documents; Get reports presence separately from errors so
// an absent key is not a failure.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
