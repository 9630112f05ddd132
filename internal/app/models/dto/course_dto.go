package dto

// CreateCourseRequest represents course creation data.
// Price defaults to 0 and IsActive to true when omitted.
type CreateCourseRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}

// UpdateCourseRequest represents a partial course update.
// Absent fields leave the stored value unchanged.
type UpdateCourseRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive"`
}
