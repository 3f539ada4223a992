package booking

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrMissingUser     = errors.New("booking must belong to a user")
	ErrMissingCourse   = errors.New("booking must reference a course")
	ErrMissingSchedule = errors.New("booking must have a session time")
)

// Booking is a reservation of one class session by one user.
// CourseTitle and Trainer are snapshots taken at booking time: a booking is
// a historical record and does not follow later edits to the course.
// CourseID may dangle once the course is deleted; cascade removal is the
// responsibility of the delete-course orchestrator.
type Booking struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	CourseID    int64     `json:"courseId"`
	ScheduleAt  time.Time `json:"scheduleAt"`
	CourseTitle string    `json:"courseTitle"`
	Trainer     string    `json:"trainer"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the booking's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (b *Booking) Validate() error {
	if b.UserID == 0 {
		return ErrMissingUser
	}
	if b.CourseID == 0 {
		return ErrMissingCourse
	}
	if b.ScheduleAt.IsZero() {
		return ErrMissingSchedule
	}
	return nil
}
