package course_test

import (
	"errors"
	"testing"
	"time"

	"gymdesk/internal/domain/course"
)

// TestCourse_Validate tests validation of Course.
func TestCourse_Validate(t *testing.T) {
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local)
	tests := []struct {
		name    string
		c       course.Course
		wantErr error
	}{
		{
			name: "valid course",
			c:    course.Course{ID: 1, Title: "Morning Yoga", Trainer: "Sarah Johnson", DurationMinutes: 60, Schedules: []time.Time{at}},
		},
		{
			name:    "empty title",
			c:       course.Course{ID: 2, Title: "", Trainer: "Sarah Johnson", DurationMinutes: 60, Schedules: []time.Time{at}},
			wantErr: course.ErrEmptyTitle,
		},
		{
			name:    "whitespace title",
			c:       course.Course{ID: 3, Title: "   ", Trainer: "Sarah Johnson", DurationMinutes: 60, Schedules: []time.Time{at}},
			wantErr: course.ErrEmptyTitle,
		},
		{
			name:    "empty trainer",
			c:       course.Course{ID: 4, Title: "Morning Yoga", Trainer: "", DurationMinutes: 60, Schedules: []time.Time{at}},
			wantErr: course.ErrEmptyTrainer,
		},
		{
			name:    "zero duration",
			c:       course.Course{ID: 5, Title: "Morning Yoga", Trainer: "Sarah Johnson", DurationMinutes: 0, Schedules: []time.Time{at}},
			wantErr: course.ErrInvalidDuration,
		},
		{
			name:    "negative duration",
			c:       course.Course{ID: 6, Title: "Morning Yoga", Trainer: "Sarah Johnson", DurationMinutes: -15, Schedules: []time.Time{at}},
			wantErr: course.ErrInvalidDuration,
		},
		{
			name:    "no schedules",
			c:       course.Course{ID: 7, Title: "Morning Yoga", Trainer: "Sarah Johnson", DurationMinutes: 60},
			wantErr: course.ErrNoSchedules,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Course.Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestCourse_SchedulesOn tests day-level schedule matching.
func TestCourse_SchedulesOn(t *testing.T) {
	c := course.Course{
		ID: 1, Title: "HIIT Training", Trainer: "Mike Chen", DurationMinutes: 45,
		Schedules: []time.Time{
			time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local),
			time.Date(2026, 3, 2, 18, 0, 0, 0, time.Local),
			time.Date(2026, 3, 3, 18, 0, 0, 0, time.Local),
		},
	}

	// Matching is by calendar day, so the query hour is irrelevant.
	got := c.SchedulesOn(time.Date(2026, 3, 2, 23, 59, 0, 0, time.Local))
	if len(got) != 2 {
		t.Fatalf("expected 2 sessions on March 2, got %d", len(got))
	}
	if got[0].Hour() != 8 || got[1].Hour() != 18 {
		t.Errorf("expected sessions at 08:00 and 18:00 in schedule order, got %v", got)
	}

	if got := c.SchedulesOn(time.Date(2026, 3, 4, 8, 0, 0, 0, time.Local)); len(got) != 0 {
		t.Errorf("expected no sessions on March 4, got %v", got)
	}
}

// TestSameLocalDay tests calendar-day comparison in local time.
func TestSameLocalDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			name: "same day different hours",
			a:    time.Date(2026, 3, 2, 0, 0, 1, 0, time.Local),
			b:    time.Date(2026, 3, 2, 23, 59, 59, 0, time.Local),
			want: true,
		},
		{
			name: "adjacent days",
			a:    time.Date(2026, 3, 2, 23, 59, 59, 0, time.Local),
			b:    time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local),
			want: false,
		},
		{
			name: "same day and month in different years",
			a:    time.Date(2025, 3, 2, 12, 0, 0, 0, time.Local),
			b:    time.Date(2026, 3, 2, 12, 0, 0, 0, time.Local),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := course.SameLocalDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameLocalDay(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
