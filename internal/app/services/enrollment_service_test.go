package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursekit/courses-svc/internal/app/models"
	"github.com/coursekit/courses-svc/internal/pkg/apperrors"
	"github.com/coursekit/courses-svc/internal/pkg/studentsclient"
)

type fakeEnrollmentStore struct {
	createFn       func(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	getByIDFn      func(ctx context.Context, id string) (*models.Enrollment, error)
	listFn         func(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error)
	existsActiveFn func(ctx context.Context, studentID, courseID string) (bool, error)
	updateStatusFn func(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error)
	deleteFn       func(ctx context.Context, id string) error

	createCalls int
	existsCalls int
}

func (f *fakeEnrollmentStore) Create(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	f.createCalls++
	return f.createFn(ctx, studentID, courseID)
}

func (f *fakeEnrollmentStore) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeEnrollmentStore) List(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeEnrollmentStore) ExistsActive(ctx context.Context, studentID, courseID string) (bool, error) {
	f.existsCalls++
	return f.existsActiveFn(ctx, studentID, courseID)
}

func (f *fakeEnrollmentStore) UpdateStatus(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeEnrollmentStore) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeDirectory struct {
	getStudentFn func(ctx context.Context, studentID string) (*studentsclient.Student, error)
	calls        int
}

func (f *fakeDirectory) GetStudent(ctx context.Context, studentID string) (*studentsclient.Student, error) {
	f.calls++
	return f.getStudentFn(ctx, studentID)
}

const (
	testCourseID     = "11111111-1111-1111-1111-111111111111"
	testEnrollmentID = "22222222-2222-2222-2222-222222222222"
	testStudentID    = "stu-42"
)

func knownCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Course, error) {
			return &models.Course{ID: id, Title: "Databases", IsActive: true}, nil
		},
	}
}

func knownDirectory() *fakeDirectory {
	return &fakeDirectory{
		getStudentFn: func(ctx context.Context, studentID string) (*studentsclient.Student, error) {
			return &studentsclient.Student{ID: studentID, Name: "Ada"}, nil
		},
	}
}

func TestCreateEnrollmentSuccess(t *testing.T) {
	directory := knownDirectory()
	store := &fakeEnrollmentStore{
		existsActiveFn: func(ctx context.Context, studentID, courseID string) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
			return &models.Enrollment{
				ID:        testEnrollmentID,
				StudentID: studentID,
				CourseID:  courseID,
				Status:    models.EnrollmentStatusActive,
				CreatedAt: time.Now(),
			}, nil
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), directory, zerolog.Nop())

	enrollment, err := svc.CreateEnrollment(context.Background(), testStudentID, testCourseID)
	require.NoError(t, err)
	require.NotNil(t, enrollment)

	assert.Equal(t, testStudentID, enrollment.StudentID)
	assert.Equal(t, testCourseID, enrollment.CourseID)
	assert.Equal(t, models.EnrollmentStatusActive, enrollment.Status)
	assert.Equal(t, 1, directory.calls)
	assert.Equal(t, 1, store.existsCalls)
	assert.Equal(t, 1, store.createCalls)
}

func TestCreateEnrollmentCourseMissingSkipsDirectory(t *testing.T) {
	courseStore := &fakeCourseStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Course, error) {
			return nil, apperrors.ErrCourseNotFound
		},
	}
	directory := knownDirectory()
	store := &fakeEnrollmentStore{}

	svc := NewEnrollmentService(store, NewCourseService(courseStore), directory, zerolog.Nop())

	enrollment, err := svc.CreateEnrollment(context.Background(), testStudentID, testCourseID)
	require.Error(t, err)
	assert.Nil(t, enrollment)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// The course check runs first; nothing downstream may be touched.
	assert.Equal(t, 0, directory.calls)
	assert.Equal(t, 0, store.existsCalls)
	assert.Equal(t, 0, store.createCalls)
}

func TestCreateEnrollmentStudentMissingSkipsStore(t *testing.T) {
	directory := &fakeDirectory{
		getStudentFn: func(ctx context.Context, studentID string) (*studentsclient.Student, error) {
			return nil, apperrors.ErrStudentNotFound
		},
	}
	store := &fakeEnrollmentStore{}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), directory, zerolog.Nop())

	enrollment, err := svc.CreateEnrollment(context.Background(), testStudentID, testCourseID)
	require.Error(t, err)
	assert.Nil(t, enrollment)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Equal(t, 0, store.existsCalls)
	assert.Equal(t, 0, store.createCalls)
}

func TestCreateEnrollmentDirectoryOutagePropagates(t *testing.T) {
	for _, sentinel := range []error{
		apperrors.ErrStudentsServiceUnavailable,
		apperrors.ErrStudentsServiceError,
	} {
		directory := &fakeDirectory{
			getStudentFn: func(ctx context.Context, studentID string) (*studentsclient.Student, error) {
				return nil, errors.Join(sentinel, errors.New("dial tcp: i/o timeout"))
			},
		}
		store := &fakeEnrollmentStore{}

		svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), directory, zerolog.Nop())

		enrollment, err := svc.CreateEnrollment(context.Background(), testStudentID, testCourseID)
		require.Error(t, err)
		assert.Nil(t, enrollment)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, 0, store.createCalls)
	}
}

func TestCreateEnrollmentDuplicateActive(t *testing.T) {
	store := &fakeEnrollmentStore{
		existsActiveFn: func(ctx context.Context, studentID, courseID string) (bool, error) {
			return true, nil
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	enrollment, err := svc.CreateEnrollment(context.Background(), testStudentID, testCourseID)
	require.Error(t, err)
	assert.Nil(t, enrollment)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateActiveEnrollment)
	assert.Equal(t, 0, store.createCalls)
}

func TestCreateEnrollmentDuplicateFromInsertRace(t *testing.T) {
	// A concurrent creation can slip past the pre-check; the unique index
	// then rejects the insert and the error must surface unchanged.
	store := &fakeEnrollmentStore{
		existsActiveFn: func(ctx context.Context, studentID, courseID string) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
			return nil, apperrors.ErrDuplicateActiveEnrollment
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	enrollment, err := svc.CreateEnrollment(context.Background(), testStudentID, testCourseID)
	require.Error(t, err)
	assert.Nil(t, enrollment)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateActiveEnrollment)
}

func TestCreateEnrollmentEmptyIDs(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentStore{}, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	_, err := svc.CreateEnrollment(context.Background(), "  ", testCourseID)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateEnrollment(context.Background(), testStudentID, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateEnrollmentStatus(t *testing.T) {
	store := &fakeEnrollmentStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Enrollment, error) {
			return &models.Enrollment{ID: id, Status: models.EnrollmentStatusActive}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
			return &models.Enrollment{ID: id, Status: status}, nil
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	enrollment, err := svc.UpdateEnrollmentStatus(context.Background(), testEnrollmentID, models.EnrollmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentStatusCancelled, enrollment.Status)
}

func TestUpdateEnrollmentStatusRejectsUnknownValue(t *testing.T) {
	svc := NewEnrollmentService(&fakeEnrollmentStore{}, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	_, err := svc.UpdateEnrollmentStatus(context.Background(), testEnrollmentID, models.EnrollmentStatus("paused"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidEnrollmentStatus)
}

func TestUpdateEnrollmentStatusNotFound(t *testing.T) {
	store := &fakeEnrollmentStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Enrollment, error) {
			return nil, apperrors.ErrEnrollmentNotFound
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	_, err := svc.UpdateEnrollmentStatus(context.Background(), testEnrollmentID, models.EnrollmentStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}

func TestUpdateEnrollmentStatusReactivationConflict(t *testing.T) {
	store := &fakeEnrollmentStore{
		getByIDFn: func(ctx context.Context, id string) (*models.Enrollment, error) {
			return &models.Enrollment{ID: id, Status: models.EnrollmentStatusCancelled}, nil
		},
		updateStatusFn: func(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
			return nil, apperrors.ErrDuplicateActiveEnrollment
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	_, err := svc.UpdateEnrollmentStatus(context.Background(), testEnrollmentID, models.EnrollmentStatusActive)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateActiveEnrollment)
}

func TestListEnrollmentsByStudentAndCourse(t *testing.T) {
	var gotFilter models.EnrollmentFilter
	store := &fakeEnrollmentStore{
		listFn: func(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
			gotFilter = filter
			return []*models.Enrollment{}, nil
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	_, err := svc.ListEnrollmentsByStudent(context.Background(), testStudentID)
	require.NoError(t, err)
	require.NotNil(t, gotFilter.StudentID)
	assert.Equal(t, testStudentID, *gotFilter.StudentID)
	assert.Nil(t, gotFilter.CourseID)

	_, err = svc.ListEnrollmentsByCourse(context.Background(), testCourseID)
	require.NoError(t, err)
	require.NotNil(t, gotFilter.CourseID)
	assert.Equal(t, testCourseID, *gotFilter.CourseID)
	assert.Nil(t, gotFilter.StudentID)
}

func TestDeleteEnrollmentNotFound(t *testing.T) {
	store := &fakeEnrollmentStore{
		deleteFn: func(ctx context.Context, id string) error {
			return apperrors.ErrEnrollmentNotFound
		},
	}

	svc := NewEnrollmentService(store, NewCourseService(knownCourseStore()), knownDirectory(), zerolog.Nop())

	err := svc.DeleteEnrollment(context.Background(), testEnrollmentID)
	assert.ErrorIs(t, err, apperrors.ErrEnrollmentNotFound)
}
