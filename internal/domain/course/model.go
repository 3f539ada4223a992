package course

import (
	"errors"
	"strings"
	"time"
)

// DefaultImageURL is used when a course is saved without an image.
const DefaultImageURL = "https://images.pexels.com/photos/416778/pexels-photo-416778.jpeg"

// Domain errors
var (
	ErrEmptyTitle      = errors.New("course title cannot be empty")
	ErrEmptyTrainer    = errors.New("course trainer cannot be empty")
	ErrNoSchedules     = errors.New("course needs at least one scheduled session")
	ErrInvalidDuration = errors.New("course duration must be a positive number of minutes")
)

// Course represents a bookable gym class definition with its scheduled sessions.
// INVARIANT: Schedules is non-empty for any persisted course.
// INVARIANT: ID is immutable once assigned and never reused.
type Course struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Trainer         string      `json:"trainer"`
	Description     string      `json:"description"`
	ImageURL        string      `json:"imageUrl"`
	DurationMinutes int         `json:"durationMinutes"`
	Schedules       []time.Time `json:"schedules"`
}

// Validate checks the course's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(c.Trainer) == "" {
		return ErrEmptyTrainer
	}
	if c.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if len(c.Schedules) == 0 {
		return ErrNoSchedules
	}
	return nil
}

// SchedulesOn returns the scheduled session times falling on the same local
// calendar day as date, in the order they appear on the course.
// Matching is by day, not by exact timestamp.
func (c *Course) SchedulesOn(date time.Time) []time.Time {
	var times []time.Time
	for _, s := range c.Schedules {
		if SameLocalDay(s, date) {
			times = append(times, s)
		}
	}
	return times
}

// SameLocalDay reports whether a and b fall on the same calendar day in local time.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}
