package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"gymdesk/internal/domain/course"
)

// CourseStoreForSeed defines the store interface needed by SeedCourses.
type CourseStoreForSeed interface {
	Save(ctx context.Context, c course.Course) error
}

// SeedCoursesDeps holds dependencies for SeedCourses.
type SeedCoursesDeps struct {
	CourseStore CourseStoreForSeed
}

// ExecuteSeedCourses writes the default sample catalog. The caller invokes
// this exactly once, when the courses key was absent or unparseable at
// startup, and never again once a catalog exists.
// POST: three courses with fixed IDs 1-3 are persisted
func ExecuteSeedCourses(ctx context.Context, deps SeedCoursesDeps, now time.Time) error {
	at := func(base time.Time, hour int) time.Time {
		return time.Date(base.Year(), base.Month(), base.Day(), hour, 0, 0, 0, time.Local)
	}
	tomorrow := now.AddDate(0, 0, 1)

	courses := []course.Course{
		{
			ID:              1,
			Title:           "Morning Yoga",
			Trainer:         "Sarah Johnson",
			Description:     "Start your day with energizing yoga poses and breathing exercises.",
			ImageURL:        "https://images.pexels.com/photos/3822622/pexels-photo-3822622.jpeg",
			DurationMinutes: 60,
			Schedules:       []time.Time{at(now, 8), at(tomorrow, 8)},
		},
		{
			ID:              2,
			Title:           "HIIT Training",
			Trainer:         "Mike Chen",
			Description:     "High-intensity interval training for maximum calorie burn.",
			ImageURL:        "https://images.pexels.com/photos/416809/pexels-photo-416809.jpeg",
			DurationMinutes: 45,
			Schedules:       []time.Time{at(now, 18), at(tomorrow, 18)},
		},
		{
			ID:              3,
			Title:           "Pilates Core",
			Trainer:         "Emma Davis",
			Description:     "Strengthen your core with focused Pilates exercises.",
			ImageURL:        "https://images.pexels.com/photos/3823207/pexels-photo-3823207.jpeg",
			DurationMinutes: 50,
			Schedules:       []time.Time{at(now, 10)},
		},
	}

	for _, c := range courses {
		if err := deps.CourseStore.Save(ctx, c); err != nil {
			return err
		}
	}

	slog.Info("seed_event", "event", "courses_seeded", "count", len(courses))
	return nil
}
