package projections

import (
	"context"
	"time"

	"gymdesk/internal/domain/course"
)

// GridCells is the fixed size of the month grid: six full weeks.
const GridCells = 42

// MonthGridCourseStore defines the store interface needed by this projection.
type MonthGridCourseStore interface {
	List(ctx context.Context) ([]course.Course, error)
}

// GetMonthGridDeps holds dependencies for the projection.
type GetMonthGridDeps struct {
	CourseStore MonthGridCourseStore
}

// DayCell is one cell of the rendered month grid.
type DayCell struct {
	Date       time.Time `json:"date"`
	Day        int       `json:"day"`
	OtherMonth bool      `json:"otherMonth"`
	Selected   bool      `json:"selected"`
	HasClasses bool      `json:"hasClasses"`
}

// MonthGridResult is the 6x7 calendar grid for one viewed month.
type MonthGridResult struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Label string     `json:"label"` // e.g. "March 2026"
	Cells []DayCell  `json:"cells"`
}

// QueryGetMonthGrid renders the calendar grid for the month containing
// viewed. The grid starts on the Sunday on or before the 1st and always
// spans exactly 42 cells; leading and trailing cells from adjacent months
// are marked OtherMonth. selected may be nil (no date selected) and is
// honored even when it falls outside the viewed month.
func QueryGetMonthGrid(ctx context.Context, viewed time.Time, selected *time.Time, deps GetMonthGridDeps) (MonthGridResult, error) {
	courses, err := deps.CourseStore.List(ctx)
	if err != nil {
		return MonthGridResult{}, err
	}

	viewed = viewed.Local()
	first := time.Date(viewed.Year(), viewed.Month(), 1, 0, 0, 0, 0, time.Local)
	start := first.AddDate(0, 0, -int(first.Weekday()))

	result := MonthGridResult{
		Year:  first.Year(),
		Month: first.Month(),
		Label: first.Format("January 2006"),
		Cells: make([]DayCell, 0, GridCells),
	}

	for i := 0; i < GridCells; i++ {
		date := start.AddDate(0, 0, i)
		cell := DayCell{
			Date:       date,
			Day:        date.Day(),
			OtherMonth: date.Month() != first.Month() || date.Year() != first.Year(),
		}
		if selected != nil && course.SameLocalDay(date, *selected) {
			cell.Selected = true
		}
		for _, c := range courses {
			if len(c.SchedulesOn(date)) > 0 {
				cell.HasClasses = true
				break
			}
		}
		result.Cells = append(result.Cells, cell)
	}
	return result, nil
}
