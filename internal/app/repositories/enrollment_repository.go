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
	"github.com/coursekit/courses-svc/internal/pkg/dberrors"
	"github.com/coursekit/courses-svc/internal/pkg/logger"
)

const enrollmentColumns = "id, student_id, course_id, status, created_at"

// activeEnrollmentConstraint backs the invariant that at most one active
// enrollment exists per (student, course) pair. Defined in migrations.
const activeEnrollmentConstraint = "uq_enrollments_active"

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{}
	err := row.Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.Status,
		&enrollment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return enrollment, nil
}

// Create inserts a new active enrollment and returns the persisted record.
// A violation of the partial unique index is reported as a duplicate active
// enrollment; the index is the authoritative guard against the
// check-then-insert race between concurrent creations.
func (r *EnrollmentRepository) Create(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id", "status").
		Values(studentID, courseID, models.EnrollmentStatusActive).
		Suffix("RETURNING " + enrollmentColumns).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create enrollment SQL")
		return nil, fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, activeEnrollmentConstraint) {
			return nil, apperrors.ErrDuplicateActiveEnrollment
		}
		if dberrors.IsForeignKeyViolation(err) {
			// Course deleted between the existence check and the insert.
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("studentID", studentID).Str("courseID", courseID).Msg("Error executing create enrollment query")
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	return enrollment, nil
}

// GetByID retrieves an enrollment by ID
func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	sql, args, err := r.sb.Select(enrollmentColumns).
		From("enrollments").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get enrollment by ID SQL")
		return nil, fmt.Errorf("failed to build get enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Str("enrollmentID", id).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error getting enrollment by ID: %w", err)
	}

	return enrollment, nil
}

// List retrieves enrollments ordered by creation time descending.
// Filters compose with AND; nil filters are ignored.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	builder := r.sb.Select(enrollmentColumns).
		From("enrollments").
		OrderBy("created_at DESC")

	if filter.StudentID != nil {
		builder = builder.Where(squirrel.Eq{"student_id": *filter.StudentID})
	}
	if filter.CourseID != nil {
		builder = builder.Where(squirrel.Eq{"course_id": *filter.CourseID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list enrollments SQL")
		return nil, fmt.Errorf("failed to build list enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list enrollments query")
		return nil, fmt.Errorf("error querying enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []*models.Enrollment{}
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning enrollment row during list")
			return nil, fmt.Errorf("error scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating enrollment rows")
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}

	return enrollments, nil
}

// ExistsActive reports whether an active enrollment exists for the pair.
func (r *EnrollmentRepository) ExistsActive(ctx context.Context, studentID, courseID string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{
			"student_id": studentID,
			"course_id":  courseID,
			"status":     models.EnrollmentStatusActive,
		}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building active enrollment exists SQL")
		return false, fmt.Errorf("failed to build active enrollment existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) { // ErrNoRows is ok here, means false
		logger.Error().Err(err).Str("studentID", studentID).Str("courseID", courseID).Msg("Error checking active enrollment existence")
		return false, fmt.Errorf("error checking active enrollment existence: %w", err)
	}

	return exists, nil
}

// UpdateStatus changes the status of an enrollment and returns the updated record.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
	sql, args, err := r.sb.Update("enrollments").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + enrollmentColumns).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update enrollment SQL")
		return nil, fmt.Errorf("failed to build update enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, activeEnrollmentConstraint) {
			// Reactivating would break the single-active invariant.
			return nil, apperrors.ErrDuplicateActiveEnrollment
		}
		logger.Error().Err(err).Str("enrollmentID", id).Msg("Error executing update enrollment query")
		return nil, fmt.Errorf("error updating enrollment: %w", err)
	}

	return enrollment, nil
}

// Delete deletes an enrollment by ID
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building delete enrollment SQL")
		return fmt.Errorf("failed to build delete enrollment query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("enrollmentID", id).Msg("Error executing delete enrollment query")
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
