package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "unique_enrollment"}

	assert.True(t, IsUniqueViolation(dup))
	assert.True(t, IsUniqueViolation(fmt.Errorf("create enrollment: %w", dup)))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"})) // foreign key
}

func TestViolatedConstraint(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "students_student_id_key"}

	assert.Equal(t, "students_student_id_key", ViolatedConstraint(dup))
	assert.Equal(t, "students_student_id_key", ViolatedConstraint(fmt.Errorf("wrapped: %w", dup)))
	assert.Equal(t, "", ViolatedConstraint(errors.New("not a pq error")))
	assert.Equal(t, "", ViolatedConstraint(&pq.Error{Code: "23503", Constraint: "fk"}))
}
