package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/openedx-plugin/internal/domain/model"
	"github.com/ericfisherdev/openedx-plugin/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CoursePointsStore = (*CoursePointsRepo)(nil)

// CoursePointsRepo is the SQLite implementation of the CoursePointsStore port interface.
type CoursePointsRepo struct {
	db *DB
}

// NewCoursePointsRepo creates a new CoursePointsRepo backed by the given DB.
func NewCoursePointsRepo(db *DB) *CoursePointsRepo {
	return &CoursePointsRepo{db: db}
}

// Create validates and inserts a record, returning it with the assigned ID.
// Any ID on the input is ignored.
func (r *CoursePointsRepo) Create(ctx context.Context, cp model.CoursePoints) (model.CoursePoints, error) {
	if err := cp.Validate(); err != nil {
		return model.CoursePoints{}, err
	}

	const query = `INSERT INTO course_points (course_id, points) VALUES (?, ?)`

	result, err := r.db.Writer.ExecContext(ctx, query, cp.CourseID, cp.Points)
	if err != nil {
		return model.CoursePoints{}, fmt.Errorf("create course points for %s: %w", cp.CourseID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.CoursePoints{}, fmt.Errorf("read course points id: %w", err)
	}

	cp.ID = id
	return cp, nil
}

// GetByID retrieves a single record. Returns (nil, nil) if it does not exist.
func (r *CoursePointsRepo) GetByID(ctx context.Context, id int64) (*model.CoursePoints, error) {
	const query = `SELECT id, course_id, points FROM course_points WHERE id = ?`

	var cp model.CoursePoints
	err := r.db.Reader.QueryRowContext(ctx, query, id).Scan(&cp.ID, &cp.CourseID, &cp.Points)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course points %d: %w", id, err)
	}

	return &cp, nil
}

// GetByCourseID returns every record for a course, oldest first. The course
// identifier is not unique, so more than one row may match.
func (r *CoursePointsRepo) GetByCourseID(ctx context.Context, courseID string) ([]model.CoursePoints, error) {
	const query = `SELECT id, course_id, points FROM course_points WHERE course_id = ? ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("get course points for %s: %w", courseID, err)
	}
	defer rows.Close()

	return scanCoursePoints(rows)
}

// ListAll returns all records ordered by ID.
func (r *CoursePointsRepo) ListAll(ctx context.Context) ([]model.CoursePoints, error) {
	const query = `SELECT id, course_id, points FROM course_points ORDER BY id`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list course points: %w", err)
	}
	defer rows.Close()

	return scanCoursePoints(rows)
}

// Delete removes a record by ID. Returns driven.ErrNotFound if no row matched.
func (r *CoursePointsRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM course_points WHERE id = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete course points %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("course points %d: %w", id, driven.ErrNotFound)
	}

	return nil
}

func scanCoursePoints(rows *sql.Rows) ([]model.CoursePoints, error) {
	records := []model.CoursePoints{}
	for rows.Next() {
		var cp model.CoursePoints
		if err := rows.Scan(&cp.ID, &cp.CourseID, &cp.Points); err != nil {
			return nil, fmt.Errorf("scan course points: %w", err)
		}
		records = append(records, cp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course points: %w", err)
	}

	return records, nil
}
