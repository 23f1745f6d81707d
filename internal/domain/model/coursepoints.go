package model

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	// MaxCourseIDLength is the column width of course_points.course_id.
	MaxCourseIDLength = 250
	// MaxPoints is the upper bound of a positive small integer column.
	MaxPoints = 32767
)

// ErrInvalidCoursePoints is returned when a CoursePoints value violates the
// column constraints of the course_points table.
var ErrInvalidCoursePoints = errors.New("invalid course points")

// CoursePoints records the number of points awarded for a course. The ID is
// assigned by the database on insert; CourseID is opaque text with no
// referential constraint.
type CoursePoints struct {
	ID       int64
	CourseID string
	Points   int
}

// Validate checks the course identifier length and the points range.
func (c CoursePoints) Validate() error {
	if c.CourseID == "" {
		return fmt.Errorf("%w: course_id is required", ErrInvalidCoursePoints)
	}
	if utf8.RuneCountInString(c.CourseID) > MaxCourseIDLength {
		return fmt.Errorf("%w: course_id exceeds %d characters", ErrInvalidCoursePoints, MaxCourseIDLength)
	}
	if c.Points < 0 || c.Points > MaxPoints {
		return fmt.Errorf("%w: points must be between 0 and %d", ErrInvalidCoursePoints, MaxPoints)
	}
	return nil
}
