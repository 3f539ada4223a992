package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"gymdesk/internal/application/activity"
	"gymdesk/internal/domain/course"
)

// CourseStoreForDelete defines the course store interface needed by DeleteCourse.
type CourseStoreForDelete interface {
	GetByID(ctx context.Context, id int64) (course.Course, error)
	Delete(ctx context.Context, id int64) error
}

// LedgerForCascade defines the booking store interface needed by the cascade.
type LedgerForCascade interface {
	RemoveByCourseID(ctx context.Context, courseID int64) error
}

// DeleteCourseInput carries input for the delete-course orchestrator.
type DeleteCourseInput struct {
	ID int64
}

// DeleteCourseDeps holds dependencies for DeleteCourse.
type DeleteCourseDeps struct {
	CourseStore  CourseStoreForDelete
	BookingStore LedgerForCascade
	Activity     *activity.Feed // optional: nil skips the feed
}

// ExecuteDeleteCourse removes a course and cascades to its bookings.
// The caller is expected to have confirmed intent; deleting an ID that does
// not exist is a silent no-op.
// POST: no booking referencing the deleted course remains; bookings for
// other courses are untouched
func ExecuteDeleteCourse(ctx context.Context, input DeleteCourseInput, deps DeleteCourseDeps) error {
	c, err := deps.CourseStore.GetByID(ctx, input.ID)
	if err != nil {
		slog.Info("catalog_event", "event", "course_delete_noop", "course_id", input.ID)
		return nil
	}

	if err := deps.CourseStore.Delete(ctx, input.ID); err != nil {
		return err
	}
	if err := deps.BookingStore.RemoveByCourseID(ctx, input.ID); err != nil {
		return err
	}

	slog.Info("catalog_event", "event", "course_deleted", "course_id", input.ID, "title", c.Title)
	if deps.Activity != nil {
		deps.Activity.Record(fmt.Sprintf("Deleted course: %s", c.Title))
	}
	return nil
}
