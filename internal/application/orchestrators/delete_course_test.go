package orchestrators

import (
	"context"
	"errors"
	"testing"

	"gymdesk/internal/domain/booking"
	"gymdesk/internal/domain/course"
)

// mockLedger implements the booking store interfaces for testing.
type mockLedger struct {
	bookings []booking.Booking
}

func (m *mockLedger) List(_ context.Context) ([]booking.Booking, error) {
	return m.bookings, nil
}

func (m *mockLedger) GetByID(_ context.Context, id int64) (booking.Booking, error) {
	for _, b := range m.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return booking.Booking{}, errors.New("not found")
}

func (m *mockLedger) Append(_ context.Context, b booking.Booking) error {
	m.bookings = append(m.bookings, b)
	return nil
}

func (m *mockLedger) Remove(_ context.Context, id int64) error {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockLedger) RemoveByCourseID(_ context.Context, courseID int64) error {
	kept := m.bookings[:0]
	for _, b := range m.bookings {
		if b.CourseID != courseID {
			kept = append(kept, b)
		}
	}
	m.bookings = kept
	return nil
}

// TestExecuteDeleteCourse_Cascade tests that deleting a course removes its
// bookings while leaving other courses' bookings alone.
func TestExecuteDeleteCourse_Cascade(t *testing.T) {
	catalog := &mockCatalog{courses: []course.Course{
		{ID: 1, Title: "Morning Yoga", Trainer: "Sarah Johnson", DurationMinutes: 60, Schedules: testSchedule},
		{ID: 2, Title: "HIIT Training", Trainer: "Mike Chen", DurationMinutes: 45, Schedules: testSchedule},
	}}
	ledger := &mockLedger{bookings: []booking.Booking{
		{ID: 100, UserID: 1, CourseID: 1},
		{ID: 101, UserID: 2, CourseID: 2},
		{ID: 102, UserID: 3, CourseID: 1},
	}}

	err := ExecuteDeleteCourse(context.Background(), DeleteCourseInput{ID: 1}, DeleteCourseDeps{
		CourseStore:  catalog,
		BookingStore: ledger,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(catalog.courses) != 1 || catalog.courses[0].ID != 2 {
		t.Errorf("expected only course 2 to remain, got %+v", catalog.courses)
	}
	if len(ledger.bookings) != 1 || ledger.bookings[0].ID != 101 {
		t.Errorf("expected only booking 101 to survive the cascade, got %+v", ledger.bookings)
	}
}

// TestExecuteDeleteCourse_UnknownID tests the silent no-op on a missing course.
func TestExecuteDeleteCourse_UnknownID(t *testing.T) {
	catalog := &mockCatalog{courses: []course.Course{
		{ID: 1, Title: "Morning Yoga", Trainer: "Sarah Johnson", DurationMinutes: 60, Schedules: testSchedule},
	}}
	ledger := &mockLedger{bookings: []booking.Booking{{ID: 100, UserID: 1, CourseID: 1}}}

	err := ExecuteDeleteCourse(context.Background(), DeleteCourseInput{ID: 999}, DeleteCourseDeps{
		CourseStore:  catalog,
		BookingStore: ledger,
	})
	if err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if len(catalog.courses) != 1 || len(ledger.bookings) != 1 {
		t.Error("expected catalog and ledger untouched on unknown ID")
	}
}
