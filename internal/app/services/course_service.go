package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/coursekit/courses-svc/internal/app/models"
	"github.com/coursekit/courses-svc/internal/app/models/dto"
	"github.com/coursekit/courses-svc/internal/pkg/apperrors"
)

// CourseService defines the interface for course catalog operations
type CourseService interface {
	CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	GetCourseByID(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context, isActive *bool) ([]*models.Course, error)
	ListActiveCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseStore) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
	}
}

// CreateCourse creates a new course. Price defaults to 0 and the active
// flag to true when the request omits them.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if len(title) > 255 {
		return nil, fmt.Errorf("%w: title must be at most 255 characters", apperrors.ErrValidationFailed)
	}

	course := &models.Course{
		Title:       title,
		Description: req.Description,
		IsActive:    true,
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
		}
		course.Price = *req.Price
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	created, err := s.courseRepo.Create(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return created, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// ListCourses retrieves courses, optionally narrowed by active flag
func (s *courseServiceImpl) ListCourses(ctx context.Context, isActive *bool) ([]*models.Course, error) {
	courses, err := s.courseRepo.List(ctx, isActive)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// ListActiveCourses retrieves only active courses
func (s *courseServiceImpl) ListActiveCourses(ctx context.Context) ([]*models.Course, error) {
	active := true
	return s.ListCourses(ctx, &active)
}

// UpdateCourse applies a partial update to an existing course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
		}
		if len(title) > 255 {
			return nil, fmt.Errorf("%w: title must be at most 255 characters", apperrors.ErrValidationFailed)
		}
		patch.Title = &title
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", apperrors.ErrValidationFailed)
	}

	// Existence first, so a bad ID reads as not-found rather than no-op.
	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if patch.IsEmpty() {
		return s.courseRepo.GetByID(ctx, id)
	}

	course, err := s.courseRepo.Update(ctx, id, patch)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error updating course: %w", err)
	}
	return course, nil
}

// DeleteCourse deletes a course by ID
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: invalid course ID", apperrors.ErrValidationFailed)
	}

	if _, err := s.courseRepo.GetByID(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error retrieving course: %w", err)
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrCourseNotFound) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}
