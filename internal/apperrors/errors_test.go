package apperrors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, DatabaseError, "database operation failed")

	assert.Equal(t, DatabaseError, wrappedErr.Type)
	assert.Equal(t, "database operation failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.ErrorIs(t, wrappedErr, originalErr)

	assert.Nil(t, Wrap(nil, DatabaseError, "unused"))
}

func TestStoreValidationFailed(t *testing.T) {
	err := StoreValidationFailed([]string{"Name cannot exceed 100 characters", "Rating must be a whole number"})
	assert.Equal(t, StoreValidationError, err.Type)
	assert.Equal(t, "Name cannot exceed 100 characters, Rating must be a whole number", err.Message)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestDatabase(t *testing.T) {
	raw := fmt.Errorf("connection refused")
	err := Database(raw, "Failed to fetch feedback")
	assert.Equal(t, "Failed to fetch feedback", err.Summary)
	assert.Equal(t, "Failed to fetch feedback", err.Message)
	assert.Empty(t, err.Detail)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.ErrorIs(t, err, raw)
}

func TestAs(t *testing.T) {
	appErr := BadRequest("Invalid request body")
	found, ok := As(fmt.Errorf("handler: %w", appErr))
	assert.True(t, ok)
	assert.Same(t, appErr, found)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "with detail",
			err:      &AppError{Type: ValidationError, Message: "invalid input", Detail: "field required"},
			expected: "VALIDATION_ERROR: invalid input (field required)",
		},
		{
			name:     "without detail",
			err:      &AppError{Type: ServerError, Message: "boom"},
			expected: "SERVER_ERROR: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}
