package projections

import (
	"context"
	"time"

	"gymdesk/internal/domain/booking"
	"gymdesk/internal/domain/course"
)

// DashboardCourseStore defines the course store interface needed by the dashboard projection.
type DashboardCourseStore interface {
	List(ctx context.Context) ([]course.Course, error)
}

// DashboardBookingStore defines the booking store interface needed by the dashboard projection.
type DashboardBookingStore interface {
	List(ctx context.Context) ([]booking.Booking, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	CourseStore  DashboardCourseStore
	BookingStore DashboardBookingStore
}

// DashboardResult carries the summary counts shown on the dashboard.
type DashboardResult struct {
	TotalCourses  int `json:"totalCourses"`
	TotalBookings int `json:"totalBookings"` // global, not per-user
	TodayClasses  int `json:"todayClasses"`
}

// QueryGetDashboard computes the dashboard counts from the current catalog
// and ledger. TodayClasses counts schedule entries across all courses whose
// calendar day equals now's local day. Pure with respect to its inputs;
// callers re-run it after every catalog or ledger mutation.
func QueryGetDashboard(ctx context.Context, now time.Time, deps GetDashboardDeps) (DashboardResult, error) {
	courses, err := deps.CourseStore.List(ctx)
	if err != nil {
		return DashboardResult{}, err
	}
	bookings, err := deps.BookingStore.List(ctx)
	if err != nil {
		return DashboardResult{}, err
	}

	today := 0
	for _, c := range courses {
		today += len(c.SchedulesOn(now))
	}

	return DashboardResult{
		TotalCourses:  len(courses),
		TotalBookings: len(bookings),
		TodayClasses:  today,
	}, nil
}
