package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursekit/courses-svc/internal/app/models"
	"github.com/coursekit/courses-svc/internal/pkg/apperrors"
	"github.com/coursekit/courses-svc/internal/pkg/logger"
)

const courseColumns = "id, title, description, price, is_active, created_at, updated_at"

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.IsActive,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// Create inserts a new course and returns the persisted record,
// including store-assigned id and timestamps.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	sql, args, err := r.sb.Insert("courses").
		Columns("title", "description", "price", "is_active").
		Values(course.Title, course.Description, course.Price, course.IsActive).
		Suffix("RETURNING " + courseColumns).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return nil, fmt.Errorf("failed to build create course query: %w", err)
	}

	created, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return created, nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// List retrieves courses ordered by creation time descending.
// A non-nil isActive narrows the list to that active flag.
func (r *CourseRepository) List(ctx context.Context, isActive *bool) ([]*models.Course, error) {
	builder := r.sb.Select(courseColumns).
		From("courses").
		OrderBy("created_at DESC")

	if isActive != nil {
		builder = builder.Where(squirrel.Eq{"is_active": *isActive})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during list")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// Update applies a partial update and returns the updated record.
// Nil patch fields leave their columns unchanged.
func (r *CourseRepository) Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	setMap := map[string]interface{}{
		"updated_at": squirrel.Expr("NOW()"),
	}
	if patch.Title != nil {
		setMap["title"] = *patch.Title
	}
	if patch.Description != nil {
		setMap["description"] = *patch.Description
	}
	if patch.Price != nil {
		setMap["price"] = *patch.Price
	}
	if patch.IsActive != nil {
		setMap["is_active"] = *patch.IsActive
	}

	sql, args, err := r.sb.Update("courses").
		SetMap(setMap).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + courseColumns).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return nil, fmt.Errorf("failed to build update course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing update course query")
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return course, nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
