package catalog

import (
	"context"
	"errors"

	"gymdesk/internal/domain/course"
)

// ErrNotFound is returned by GetByID when no course has the given ID.
var ErrNotFound = errors.New("course not found")

// Store persists the course catalog. The catalog is an ordered set: List
// returns courses in insertion order, and Save replaces an existing course
// in place without moving it.
type Store interface {
	List(ctx context.Context) ([]course.Course, error)
	GetByID(ctx context.Context, id int64) (course.Course, error)
	Save(ctx context.Context, c course.Course) error
	Delete(ctx context.Context, id int64) error
}
