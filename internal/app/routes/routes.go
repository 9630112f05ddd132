package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/coursekit/courses-svc/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	healthController *controllers.HealthController,
) {
	// Course catalog routes
	courses := router.Group("/courses")
	{
		courses.POST("", courseController.CreateCourse)
		courses.GET("", courseController.ListCourses)
		// Registered before /:id so "active" is not read as a course ID.
		courses.GET("/active", courseController.ListActiveCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.PATCH("/:id", courseController.UpdateCourse)
		courses.DELETE("/:id", courseController.DeleteCourse)
	}

	// Enrollment routes
	enrollments := router.Group("/enrollments")
	{
		enrollments.POST("", enrollmentController.CreateEnrollment)
		enrollments.GET("", enrollmentController.ListEnrollments)
		enrollments.GET("/student/:studentId", enrollmentController.ListEnrollmentsByStudent)
		enrollments.GET("/course/:courseId", enrollmentController.ListEnrollmentsByCourse)
		enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
		enrollments.PATCH("/:id", enrollmentController.UpdateEnrollment)
		enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
	}

	// Health and root routes (public)
	router.GET("/health", healthController.GetHealth)
	router.GET("/", healthController.GetRoot)
}
