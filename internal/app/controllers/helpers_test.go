package controllers_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/coursekit/courses-svc/internal/app/controllers"
	"github.com/coursekit/courses-svc/internal/app/models"
	"github.com/coursekit/courses-svc/internal/app/models/dto"
	"github.com/coursekit/courses-svc/internal/app/routes"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	knownCourseID     = "11111111-1111-1111-1111-111111111111"
	knownEnrollmentID = "22222222-2222-2222-2222-222222222222"
	knownStudentID    = "stu-42"
)

// fakeCourseService satisfies services.CourseService with pluggable handlers.
type fakeCourseService struct {
	createFn     func(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
	getByIDFn    func(ctx context.Context, id string) (*models.Course, error)
	listFn       func(ctx context.Context, isActive *bool) ([]*models.Course, error)
	listActiveFn func(ctx context.Context) ([]*models.Course, error)
	updateFn     func(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeCourseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	return f.createFn(ctx, req)
}

func (f *fakeCourseService) GetCourseByID(ctx context.Context, id string) (*models.Course, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCourseService) ListCourses(ctx context.Context, isActive *bool) ([]*models.Course, error) {
	return f.listFn(ctx, isActive)
}

func (f *fakeCourseService) ListActiveCourses(ctx context.Context) ([]*models.Course, error) {
	return f.listActiveFn(ctx)
}

func (f *fakeCourseService) UpdateCourse(ctx context.Context, id string, patch models.CoursePatch) (*models.Course, error) {
	return f.updateFn(ctx, id, patch)
}

func (f *fakeCourseService) DeleteCourse(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

// fakeEnrollmentService satisfies services.EnrollmentService with pluggable handlers.
type fakeEnrollmentService struct {
	createFn        func(ctx context.Context, studentID, courseID string) (*models.Enrollment, error)
	getByIDFn       func(ctx context.Context, id string) (*models.Enrollment, error)
	listFn          func(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error)
	listByStudentFn func(ctx context.Context, studentID string) ([]*models.Enrollment, error)
	listByCourseFn  func(ctx context.Context, courseID string) ([]*models.Enrollment, error)
	updateStatusFn  func(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error)
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakeEnrollmentService) CreateEnrollment(ctx context.Context, studentID, courseID string) (*models.Enrollment, error) {
	return f.createFn(ctx, studentID, courseID)
}

func (f *fakeEnrollmentService) GetEnrollmentByID(ctx context.Context, id string) (*models.Enrollment, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeEnrollmentService) ListEnrollments(ctx context.Context, filter models.EnrollmentFilter) ([]*models.Enrollment, error) {
	return f.listFn(ctx, filter)
}

func (f *fakeEnrollmentService) ListEnrollmentsByStudent(ctx context.Context, studentID string) ([]*models.Enrollment, error) {
	return f.listByStudentFn(ctx, studentID)
}

func (f *fakeEnrollmentService) ListEnrollmentsByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	return f.listByCourseFn(ctx, courseID)
}

func (f *fakeEnrollmentService) UpdateEnrollmentStatus(ctx context.Context, id string, status models.EnrollmentStatus) (*models.Enrollment, error) {
	return f.updateStatusFn(ctx, id, status)
}

func (f *fakeEnrollmentService) DeleteEnrollment(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

type fakeProber struct {
	err error
}

func (f *fakeProber) Health(ctx context.Context) error {
	return f.err
}

func newTestRouter(courseSvc *fakeCourseService, enrollmentSvc *fakeEnrollmentService, prober *fakeProber) *gin.Engine {
	if courseSvc == nil {
		courseSvc = &fakeCourseService{}
	}
	if enrollmentSvc == nil {
		enrollmentSvc = &fakeEnrollmentService{}
	}
	if prober == nil {
		prober = &fakeProber{}
	}

	router := gin.New()
	routes.SetupRouter(
		router,
		controllers.NewCourseController(courseSvc),
		controllers.NewEnrollmentController(enrollmentSvc),
		controllers.NewHealthController(prober),
	)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}
