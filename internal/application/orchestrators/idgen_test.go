package orchestrators

import "testing"

// TestNewIDGenerator_StrictlyIncreasing tests that rapid calls never repeat.
func TestNewIDGenerator_StrictlyIncreasing(t *testing.T) {
	gen := NewIDGenerator()
	prev := gen()
	for i := 0; i < 1000; i++ {
		id := gen()
		if id <= prev {
			t.Fatalf("expected strictly increasing IDs, got %d after %d", id, prev)
		}
		prev = id
	}
}
