package dto

// CreateEnrollmentRequest represents enrollment creation data.
// Status is never client-supplied; new enrollments are always active.
type CreateEnrollmentRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	CourseID  string `json:"courseId" binding:"required,uuid"`
}

// UpdateEnrollmentRequest represents an enrollment status change.
// Status is the only mutable field.
type UpdateEnrollmentRequest struct {
	Status string `json:"status" binding:"required,oneof=active cancelled"`
}
