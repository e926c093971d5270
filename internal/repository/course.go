package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/coursekeep/coursekeep/internal/model"
)

var courseColumns = []string{
	"id", "user_id", "title", "description", "estimated_time", "materials_needed", "created_at", "updated_at",
}

// CreateCourse inserts a new course and fills in its generated ID and timestamps.
func (r *Repository) CreateCourse(ctx context.Context, course *model.Course) error {
	query, args, err := r.sb.
		Insert("courses").
		Columns("user_id", "title", "description", "estimated_time", "materials_needed").
		Values(course.UserID, course.Title, course.Description, course.EstimatedTime, course.MaterialsNeeded).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrOwnerNotFound
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	return nil
}

// GetCourseByID retrieves a course by its ID.
func (r *Repository) GetCourseByID(ctx context.Context, id int64) (*model.Course, error) {
	query, args, err := r.sb.
		Select(courseColumns...).
		From("courses").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course by ID: %w", err)
	}

	return course, nil
}

// ListCourses retrieves every course ordered by ID.
func (r *Repository) ListCourses(ctx context.Context) ([]*model.Course, error) {
	query, args, err := r.sb.
		Select(courseColumns...).
		From("courses").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	courses := make([]*model.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate courses: %w", err)
	}

	return courses, nil
}

// UpdateCourse writes the editable fields of course. The row must still be
// owned by course.UserID, otherwise ErrCourseNotFound is returned.
func (r *Repository) UpdateCourse(ctx context.Context, course *model.Course) error {
	query, args, err := r.sb.
		Update("courses").
		Set("title", course.Title).
		Set("description", course.Description).
		Set("estimated_time", course.EstimatedTime).
		Set("materials_needed", course.MaterialsNeeded).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": course.ID, "user_id": course.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	return expectOneRow(result, ErrCourseNotFound)
}

// DeleteCourse removes the course with the given ID if it is owned by ownerID.
func (r *Repository) DeleteCourse(ctx context.Context, id, ownerID int64) error {
	query, args, err := r.sb.
		Delete("courses").
		Where(sq.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	return expectOneRow(result, ErrCourseNotFound)
}

func expectOneRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

func scanCourse(row rowScanner) (*model.Course, error) {
	var course model.Course
	err := row.Scan(
		&course.ID,
		&course.UserID,
		&course.Title,
		&course.Description,
		&course.EstimatedTime,
		&course.MaterialsNeeded,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &course, nil
}
