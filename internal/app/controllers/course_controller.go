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

// CourseController handles course catalog operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// courseID extracts and validates the :id path parameter.
func courseID(ctx *gin.Context) (string, bool) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course ID")
		errorDetail = errorDetail.WithDetails("Course ID must be a valid UUID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return id, true
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a new course in the catalog
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// ListCourses retrieves all courses
// @Summary Get all courses
// @Description Retrieves all courses, newest first, optionally filtered by active flag
// @Tags courses
// @Accept json
// @Produce json
// @Param isActive query bool false "Filter by active status"
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	var isActive *bool
	switch ctx.Query("isActive") {
	case "true":
		v := true
		isActive = &v
	case "false":
		v := false
		isActive = &v
	}

	courses, err := c.courseService.ListCourses(ctx, isActive)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// ListActiveCourses retrieves only active courses
// @Summary Get active courses
// @Description Retrieves only courses whose active flag is set
// @Tags courses
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Active courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/active [get]
func (c *CourseController) ListActiveCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListActiveCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// GetCourseByID retrieves a course by ID
// @Summary Get course details
// @Description Retrieves a specific course by its ID
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID format"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// UpdateCourse applies a partial update to a course
// @Summary Update a course
// @Description Updates the provided fields of an existing course; absent fields stay unchanged
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.UpdateCourseRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [patch]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	patch := models.CoursePatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    req.IsActive,
	}

	course, err := c.courseService.UpdateCourse(ctx, id, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// DeleteCourse deletes a course
// @Summary Delete a course
// @Description Deletes a course by its ID
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := courseID(ctx)
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted successfully"},
		Timestamp: time.Now(),
	})
}
