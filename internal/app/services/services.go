package services

import (
	"context"

	"github.com/coursekit/courses-svc/internal/app/models"
)

// CourseStore is the data-access contract the course catalog needs.
// *repositories.CourseRepository satisfies it.
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context, isActive *bool) ([]*models.Course, error)
	Update(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

// EnrollmentStore is the data-access contract the enrollment workflow needs.
// *repositories.EnrollmentRepository satisfies it.
type EnrollmentStore interface {
	Create(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error)
	ExistsActive(ctx context.Context, studentID, courseID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error)
	Delete(ctx context.Context, id string) error
}
