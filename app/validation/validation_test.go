package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
)

type loginRequest struct {
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=teacher student admin"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

func TestStructValid(t *testing.T) {
	err := Struct(loginRequest{Name: "Jane Doe", Role: "teacher"})
	assert.NoError(t, err)
}

func TestStructCollectsFieldErrors(t *testing.T) {
	err := Struct(loginRequest{Role: "principal", Password: "short"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve.Fields, 3)

	byField := make(map[string]string, len(ve.Fields))
	for _, fe := range ve.Fields {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "is required", byField["name"])
	assert.Equal(t, "must be one of: teacher student admin", byField["role"])
	assert.Equal(t, "must be at least 8 characters", byField["password"])
}

func TestStructEmailTag(t *testing.T) {
	type ref struct {
		Email string `validate:"omitempty,email"`
	}

	assert.NoError(t, Struct(ref{}))
	assert.NoError(t, Struct(ref{Email: "jane@example.com"}))

	err := Struct(ref{Email: "not-an-email"})
	require.Error(t, err)
	var ve *apperrors.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "must be a valid email address", ve.Fields[0].Error)
}
