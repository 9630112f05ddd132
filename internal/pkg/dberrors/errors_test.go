package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_enrollments_active"}

	assert.True(t, IsUniqueViolation(uniqueErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert failed: %w", uniqueErr)))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsDuplicateConstraintError(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_enrollments_active"}

	assert.True(t, IsDuplicateConstraintError(uniqueErr, "uq_enrollments_active"))
	assert.False(t, IsDuplicateConstraintError(uniqueErr, "other_constraint"))
	assert.False(t, IsDuplicateConstraintError(errors.New("plain error"), "uq_enrollments_active"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "enrollments_course_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fkErr))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert failed: %w", fkErr)))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
}
