package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gymdesk/internal/application/activity"
	"gymdesk/internal/domain/course"
)

// CourseStoreForSave defines the store interface needed by SaveCourse.
type CourseStoreForSave interface {
	GetByID(ctx context.Context, id int64) (course.Course, error)
	Save(ctx context.Context, c course.Course) error
}

// SaveCourseInput carries input for the save-course orchestrator.
// ID zero means create; a non-zero ID that matches an existing course
// replaces it in place, preserving its position in the catalog.
type SaveCourseInput struct {
	ID              int64
	Title           string
	Trainer         string
	Description     string
	ImageURL        string
	DurationMinutes int
	Schedules       []time.Time
}

// SaveCourseDeps holds dependencies for SaveCourse.
type SaveCourseDeps struct {
	CourseStore CourseStoreForSave
	GenerateID  func() int64
	Activity    *activity.Feed // optional: nil skips the feed
}

// ExecuteSaveCourse creates or updates a course.
// PRE: none
// POST: on validation failure the catalog is unchanged (no partial persist);
// on success the whole catalog has been persisted
// INVARIANT: a course is never saved with zero schedules
func ExecuteSaveCourse(ctx context.Context, input SaveCourseInput, deps SaveCourseDeps) (course.Course, error) {
	c := course.Course{
		ID:              input.ID,
		Title:           input.Title,
		Trainer:         input.Trainer,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		DurationMinutes: input.DurationMinutes,
		Schedules:       input.Schedules,
	}
	if c.ImageURL == "" {
		c.ImageURL = course.DefaultImageURL
	}

	if err := c.Validate(); err != nil {
		return course.Course{}, err
	}

	updating := false
	if c.ID != 0 {
		if _, err := deps.CourseStore.GetByID(ctx, c.ID); err == nil {
			updating = true
		}
	}
	if !updating {
		// New course, or an ID that no longer exists: assign fresh and append.
		c.ID = deps.GenerateID()
	}

	if err := deps.CourseStore.Save(ctx, c); err != nil {
		return course.Course{}, err
	}

	slog.Info("catalog_event", "event", "course_saved", "course_id", c.ID, "title", c.Title, "updated", updating)
	if deps.Activity != nil {
		if updating {
			deps.Activity.Record(fmt.Sprintf("Updated course: %s", c.Title))
		} else {
			deps.Activity.Record(fmt.Sprintf("Added new course: %s", c.Title))
		}
	}
	return c, nil
}
