package orchestrators

import (
	"sync"
	"time"
)

// NewIDGenerator returns a generator of unique int64 entity IDs based on the
// Unix-millisecond clock, matching the stored data's time-based ID scheme.
// A monotonic guard bumps the value when two calls land on the same
// millisecond, so IDs are unique within a process and never reused.
func NewIDGenerator() func() int64 {
	var mu sync.Mutex
	var last int64
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		id := time.Now().UnixMilli()
		if id <= last {
			id = last + 1
		}
		last = id
		return id
	}
}
