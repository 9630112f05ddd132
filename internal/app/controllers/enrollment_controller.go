package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursekit/courses-svc/internal/app/models"
	"github.com/coursekit/courses-svc/internal/app/models/dto"
	"github.com/coursekit/courses-svc/internal/app/services"
	"github.com/coursekit/courses-svc/internal/middleware"
)

// EnrollmentController handles enrollment operations
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

func enrollmentID(ctx *gin.Context) (string, bool) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment ID")
		errorDetail = errorDetail.WithDetails("Enrollment ID must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return id, true
}

// CreateEnrollment handles enrollment creation
// @Summary Create a new enrollment
// @Description Enrolls a student in a course after checking course, student, and duplicate constraints
// @Tags enrollments
// @Accept json
// @Produce json
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.APIResponse{data=models.Enrollment} "Enrollment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Student already enrolled in this course"
// @Failure 422 {object} dto.ErrorResponse "Student not found"
// @Failure 503 {object} dto.ErrorResponse "Students service unavailable"
// @Router /enrollments [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.CreateEnrollment(ctx, req.StudentID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// ListEnrollments retrieves enrollments with optional filters
// @Summary Get all enrollments
// @Description Retrieves enrollments, newest first; studentId and courseId filters compose with AND
// @Tags enrollments
// @Accept json
// @Produce json
// @Param studentId query string false "Filter by student ID"
// @Param courseId query string false "Filter by course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Enrollments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) ListEnrollments(ctx *gin.Context) {
	var filter models.EnrollmentFilter
	if studentID := ctx.Query("studentId"); studentID != "" {
		filter.StudentID = &studentID
	}
	if courseID := ctx.Query("courseId"); courseID != "" {
		filter.CourseID = &courseID
	}

	enrollments, err := c.enrollmentService.ListEnrollments(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}

// ListEnrollmentsByStudent retrieves enrollments for one student
// @Summary Get enrollments by student ID
// @Description Retrieves all enrollments of a student, newest first
// @Tags enrollments
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Student enrollments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/student/{studentId} [get]
func (c *EnrollmentController) ListEnrollmentsByStudent(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.ListEnrollmentsByStudent(ctx, ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}

// ListEnrollmentsByCourse retrieves enrollments for one course
// @Summary Get enrollments by course ID
// @Description Retrieves all enrollments of a course, newest first
// @Tags enrollments
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Enrollment} "Course enrollments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/course/{courseId} [get]
func (c *EnrollmentController) ListEnrollmentsByCourse(ctx *gin.Context) {
	enrollments, err := c.enrollmentService.ListEnrollmentsByCourse(ctx, ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}

// GetEnrollmentByID retrieves an enrollment by ID
// @Summary Get an enrollment by ID
// @Description Retrieves a specific enrollment by its ID
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	id, ok := enrollmentID(ctx)
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// UpdateEnrollment changes the status of an enrollment
// @Summary Update an enrollment
// @Description Updates the status of an enrollment; status is the only mutable field
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID" Format(uuid)
// @Param request body dto.UpdateEnrollmentRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [patch]
func (c *EnrollmentController) UpdateEnrollment(ctx *gin.Context) {
	id, ok := enrollmentID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.UpdateEnrollmentStatus(ctx, id, models.EnrollmentStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollment,
		Timestamp: time.Now(),
	})
}

// DeleteEnrollment deletes an enrollment
// @Summary Delete an enrollment
// @Description Deletes an enrollment by its ID
// @Tags enrollments
// @Accept json
// @Produce json
// @Param id path string true "Enrollment ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Enrollment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, ok := enrollmentID(ctx)
	if !ok {
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Enrollment deleted successfully"},
		Timestamp: time.Now(),
	})
}
