package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/apperrors"
	"github.com/SandaAbhishekSagar/Student-Performance-tracker/app/models"
)

func TestResolveExisting(t *testing.T) {
	jane := &models.Student{ID: "st-jane", FullName: "Jane Doe"}
	other := &models.Student{ID: "st-other", FullName: "John Smith"}

	t.Run("name match wins", func(t *testing.T) {
		got, err := resolveExisting(jane, nil, "")
		assert.NoError(t, err)
		assert.Equal(t, jane, got)
	})

	t.Run("name match wins when the id finds nobody", func(t *testing.T) {
		got, err := resolveExisting(jane, nil, "S-100")
		assert.NoError(t, err)
		assert.Equal(t, jane, got)
	})

	t.Run("name and id agree", func(t *testing.T) {
		got, err := resolveExisting(jane, jane, "S-100")
		assert.NoError(t, err)
		assert.Equal(t, jane, got)
	})

	t.Run("id already belongs to someone else", func(t *testing.T) {
		got, err := resolveExisting(jane, other, "S-100")
		assert.Nil(t, got)
		assert.True(t, apperrors.IsConflict(err))
		assert.Contains(t, err.Error(), "S-100")
		assert.Contains(t, err.Error(), "John Smith")
	})

	t.Run("id match when the name finds nobody", func(t *testing.T) {
		got, err := resolveExisting(nil, other, "S-200")
		assert.NoError(t, err)
		assert.Equal(t, other, got)
	})

	t.Run("no match means create", func(t *testing.T) {
		got, err := resolveExisting(nil, nil, "")
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
