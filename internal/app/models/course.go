package models

import "time"

// Course represents a course offered through the catalog.
type Course struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	Price       float64   `json:"price" db:"price"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CoursePatch carries a partial course update. A nil field means the
// corresponding column is left unchanged.
type CoursePatch struct {
	Title       *string
	Description *string
	Price       *float64
	IsActive    *bool
}

// IsEmpty reports whether the patch changes nothing.
func (p CoursePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil && p.IsActive == nil
}
