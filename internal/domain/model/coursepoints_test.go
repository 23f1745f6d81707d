package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoursePoints_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cp      CoursePoints
		wantErr bool
	}{
		{name: "zero points", cp: CoursePoints{CourseID: "course-v1:edX+DemoX+Demo_Course", Points: 0}},
		{name: "max points", cp: CoursePoints{CourseID: "c", Points: MaxPoints}},
		{name: "max length course id", cp: CoursePoints{CourseID: strings.Repeat("a", MaxCourseIDLength), Points: 1}},
		{name: "empty course id", cp: CoursePoints{Points: 1}, wantErr: true},
		{name: "course id too long", cp: CoursePoints{CourseID: strings.Repeat("a", MaxCourseIDLength+1)}, wantErr: true},
		{name: "negative points", cp: CoursePoints{CourseID: "c", Points: -1}, wantErr: true},
		{name: "points overflow", cp: CoursePoints{CourseID: "c", Points: MaxPoints + 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cp.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCoursePoints)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
