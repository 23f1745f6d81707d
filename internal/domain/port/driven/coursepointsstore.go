package driven

import (
	"context"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
)

// CoursePointsStore defines the driven port for course points persistence.
// Records are created and deleted by host-side data management only; request
// handlers read.
type CoursePointsStore interface {
	Create(ctx context.Context, cp model.CoursePoints) (model.CoursePoints, error)
	GetByID(ctx context.Context, id int64) (*model.CoursePoints, error)
	GetByCourseID(ctx context.Context, courseID string) ([]model.CoursePoints, error)
	ListAll(ctx context.Context) ([]model.CoursePoints, error)
	Delete(ctx context.Context, id int64) error
}
