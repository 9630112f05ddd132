package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coursekit/courses-svc/internal/app/models/dto"
	"github.com/coursekit/courses-svc/internal/pkg/apperrors"
)

// HandleAPIError maps the closed failure taxonomy to HTTP responses.
// Every dependency failure surfaces here as a distinct typed outcome;
// nothing is swallowed.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")

	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found")

	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// A missing student is a client-correctable input problem, not a
	// missing local resource; the original contract uses 422 for it.
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respondError(c, http.StatusUnprocessableEntity, dto.ErrorCodeStudentNotFound, "Student not found")

	case errors.Is(err, apperrors.ErrStudentsServiceUnavailable):
		respondError(c, http.StatusServiceUnavailable, dto.ErrorCodeStudentsUnavailable, "Students service unavailable")

	case errors.Is(err, apperrors.ErrStudentsServiceError):
		respondError(c, http.StatusServiceUnavailable, dto.ErrorCodeStudentsServiceError, "Students service error")

	case errors.Is(err, apperrors.ErrDuplicateActiveEnrollment):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student is already enrolled in this course")

	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, dto.ErrorCodeConflict, "Conflict")

	case errors.Is(err, apperrors.ErrInvalidEnrollmentStatus):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid enrollment status")

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error:     dto.NewErrorDetail(code, message),
		Timestamp: time.Now(),
	})
}
