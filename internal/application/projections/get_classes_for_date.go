package projections

import (
	"context"
	"sort"
	"time"

	"gymdesk/internal/domain/course"
)

// ClassesForDateCourseStore defines the store interface needed by this projection.
type ClassesForDateCourseStore interface {
	List(ctx context.Context) ([]course.Course, error)
}

// GetClassesForDateDeps holds dependencies for the projection.
type GetClassesForDateDeps struct {
	CourseStore ClassesForDateCourseStore
}

// ClassResult is one bookable class session on a given day.
type ClassResult struct {
	CourseID        int64     `json:"courseId"`
	Title           string    `json:"title"`
	Trainer         string    `json:"trainer"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"imageUrl"`
	DurationMinutes int       `json:"durationMinutes"`
	StartsAt        time.Time `json:"startsAt"`
}

// QueryGetClassesForDate resolves the class sessions on a calendar day.
// One result is produced per (course, schedule) pair whose schedule falls on
// the same local calendar day as date. Matching is by day, not by exact
// timestamp, so one course definition surfaces on every day it is scheduled.
// POST: results are sorted ascending by StartsAt
func QueryGetClassesForDate(ctx context.Context, date time.Time, deps GetClassesForDateDeps) ([]ClassResult, error) {
	courses, err := deps.CourseStore.List(ctx)
	if err != nil {
		return nil, err
	}

	var results []ClassResult
	for _, c := range courses {
		for _, at := range c.SchedulesOn(date) {
			results = append(results, ClassResult{
				CourseID:        c.ID,
				Title:           c.Title,
				Trainer:         c.Trainer,
				Description:     c.Description,
				ImageURL:        c.ImageURL,
				DurationMinutes: c.DurationMinutes,
				StartsAt:        at,
			})
		}
	}

	// Stable keeps catalog order for sessions starting at the same instant.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].StartsAt.Before(results[j].StartsAt)
	})
	return results, nil
}
