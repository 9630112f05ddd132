package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coursekit/courses-svc/internal/app/models"
	"github.com/coursekit/courses-svc/internal/pkg/apperrors"
	"github.com/coursekit/courses-svc/internal/pkg/studentsclient"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	CreateEnrollment(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	GetEnrollmentByID(ctx context.Context, id string) (*models.Enrollment, error)
	ListEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error)
	ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error)
	ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error)
	UpdateEnrollmentStatus(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id string) error
}

// enrollmentServiceImpl implements the EnrollmentService interface
type enrollmentServiceImpl struct {
	enrollmentRepo EnrollmentStore
	courseService  CourseService
	students       studentsclient.Directory
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo EnrollmentStore,
	courseService CourseService,
	students studentsclient.Directory,
	lgr zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		courseService:  courseService,
		students:       students,
		logger:         lgr,
	}
}

// CreateEnrollment runs the enrollment creation workflow. The checks run
// strictly in order and each one is an early exit:
//
//  1. the course must exist in the local catalog,
//  2. the student must exist in the external directory,
//  3. no active enrollment may exist for the (student, course) pair,
//  4. the enrollment is inserted with status fixed to active.
//
// Directory failures propagate unreinterpreted. Two concurrent creations
// for the same pair can both pass step 3; the partial unique index behind
// the store turns the losing insert into ErrDuplicateActiveEnrollment.
func (s *enrollmentServiceImpl) CreateEnrollment(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	studentID = strings.TrimSpace(studentID)
	courseID = strings.TrimSpace(courseID)
	if studentID == "" {
		return nil, fmt.Errorf("%w: student ID cannot be empty", apperrors.ErrValidationFailed)
	}
	if courseID == "" {
		return nil, fmt.Errorf("%w: course ID cannot be empty", apperrors.ErrValidationFailed)
	}

	// 1. Course existence; local and cheap, so it goes first.
	if _, err := s.courseService.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	// 2. Student existence via the directory.
	if _, err := s.students.GetStudent(ctx, studentID); err != nil {
		return nil, err
	}

	// 3. No duplicate active enrollment.
	exists, err := s.enrollmentRepo.ExistsActive(ctx, studentID, courseID)
	if err != nil {
		return nil, fmt.Errorf("error checking active enrollment: %w", err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateActiveEnrollment
	}

	// 4. Insert; the returned record carries the store-assigned fields.
	enrollment, err := s.enrollmentRepo.Create(ctx, studentID, courseID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrDuplicateActiveEnrollment, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}

	s.logger.Info().
		Str("enrollmentID", enrollment.ID).
		Str("studentID", studentID).
		Str("courseID", courseID).
		Msg("Enrollment created")

	return enrollment, nil
}

// GetEnrollmentByID retrieves an enrollment by ID
func (s *enrollmentServiceImpl) GetEnrollmentByID(ctx context.Context, id string) (*models.Enrollment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: invalid enrollment ID", apperrors.ErrValidationFailed)
	}

	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return enrollment, nil
}

// ListEnrollments retrieves enrollments matching the optional filters
func (s *enrollmentServiceImpl) ListEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollments: %w", err)
	}
	return enrollments, nil
}

// ListEnrollmentsByStudent retrieves all enrollments of one student
func (s *enrollmentServiceImpl) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	return s.ListEnrollments(ctx, models.EnrollmentFilter{StudentID: &studentID})
}

// ListEnrollmentsByCourse retrieves all enrollments of one course
func (s *enrollmentServiceImpl) ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	return s.ListEnrollments(ctx, models.EnrollmentFilter{CourseID: &courseID})
}

// UpdateEnrollmentStatus changes the status of an enrollment. Status is the
// only mutable field. Reactivation does not re-check for duplicates here;
// the store's partial unique index is what stops a second active row.
func (s *enrollmentServiceImpl) UpdateEnrollmentStatus(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: invalid enrollment ID", apperrors.ErrValidationFailed)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidEnrollmentStatus, status)
	}

	// Existence first, matching the catalog's update semantics.
	if _, err := s.enrollmentRepo.GetByID(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	enrollment, err := s.enrollmentRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrEnrollmentNotFound, apperrors.ErrDuplicateActiveEnrollment) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating enrollment: %w", err)
	}
	return enrollment, nil
}

// DeleteEnrollment deletes an enrollment by ID
func (s *enrollmentServiceImpl) DeleteEnrollment(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: invalid enrollment ID", apperrors.ErrValidationFailed)
	}

	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrEnrollmentNotFound) {
			return apperrors.ErrEnrollmentNotFound
		}
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	return nil
}
