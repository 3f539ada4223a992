package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/booking"
	"gymdesk/internal/domain/course"
)

// TestQueryGetDashboard_Counts tests the three summary counts.
func TestQueryGetDashboard_Counts(t *testing.T) {
	now := day(2026, 3, 2, 12)
	courses := &stubCourseStore{courses: []course.Course{
		{ID: 1, Title: "Morning Yoga", Trainer: "Sarah Johnson", DurationMinutes: 60,
			Schedules: []time.Time{day(2026, 3, 2, 8), day(2026, 3, 3, 8)}},
		{ID: 2, Title: "HIIT Training", Trainer: "Mike Chen", DurationMinutes: 45,
			Schedules: []time.Time{day(2026, 3, 2, 18)}},
		{ID: 3, Title: "Pilates Core", Trainer: "Emma Davis", DurationMinutes: 50,
			Schedules: []time.Time{day(2026, 3, 5, 10)}},
	}}
	bookings := &stubBookingStore{bookings: []booking.Booking{
		{ID: 100, UserID: 1, CourseID: 1, ScheduleAt: day(2026, 3, 2, 8)},
		{ID: 101, UserID: 2, CourseID: 2, ScheduleAt: day(2026, 3, 2, 18)},
	}}

	got, err := QueryGetDashboard(context.Background(), now, GetDashboardDeps{CourseStore: courses, BookingStore: bookings})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCourses != 3 {
		t.Errorf("expected 3 courses, got %d", got.TotalCourses)
	}
	if got.TotalBookings != 2 {
		t.Errorf("expected 2 bookings, got %d", got.TotalBookings)
	}
	// Two schedule entries fall on March 2: yoga 08:00 and HIIT 18:00.
	if got.TodayClasses != 2 {
		t.Errorf("expected 2 classes today, got %d", got.TodayClasses)
	}
}

// TestQueryGetDashboard_Empty tests all-zero counts on empty stores.
func TestQueryGetDashboard_Empty(t *testing.T) {
	got, err := QueryGetDashboard(context.Background(), day(2026, 3, 2, 12), GetDashboardDeps{
		CourseStore:  &stubCourseStore{},
		BookingStore: &stubBookingStore{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCourses != 0 || got.TotalBookings != 0 || got.TodayClasses != 0 {
		t.Errorf("expected zero counts, got %+v", got)
	}
}

// TestQueryGetDashboard_StoreError tests error propagation from either store.
func TestQueryGetDashboard_StoreError(t *testing.T) {
	boom := errors.New("backend down")
	if _, err := QueryGetDashboard(context.Background(), day(2026, 3, 2, 12), GetDashboardDeps{
		CourseStore:  &stubCourseStore{err: boom},
		BookingStore: &stubBookingStore{},
	}); err == nil {
		t.Error("expected course store error to propagate")
	}
	if _, err := QueryGetDashboard(context.Background(), day(2026, 3, 2, 12), GetDashboardDeps{
		CourseStore:  &stubCourseStore{},
		BookingStore: &stubBookingStore{err: boom},
	}); err == nil {
		t.Error("expected booking store error to propagate")
	}
}
