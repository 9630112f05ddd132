package models

import "time"

// EnrollmentStatus defines the enrollment lifecycle status
type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s EnrollmentStatus) IsValid() bool {
	return s == EnrollmentStatusActive || s == EnrollmentStatusCancelled
}

// Enrollment links a student from the external directory to a course.
// StudentID is an opaque reference; it is never validated locally beyond
// the existence check against the students directory at creation time.
type Enrollment struct {
	ID        string           `json:"id" db:"id"`
	StudentID string           `json:"studentId" db:"student_id"`
	CourseID  string           `json:"courseId" db:"course_id"`
	Status    EnrollmentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// EnrollmentFilter holds optional equality filters for enrollment lists.
// Both filters may be set at once, yielding an AND.
type EnrollmentFilter struct {
	StudentID *string
	CourseID  *string
}
