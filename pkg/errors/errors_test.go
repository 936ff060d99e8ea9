package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewExternalError("reasoning service unavailable", cause)

	assert.Equal(t, "EXTERNAL: reasoning service unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAppError_WithoutCause(t *testing.T) {
	err := NewValidationError("unknown field \"height\"")
	assert.Equal(t, "VALIDATION: unknown field \"height\"", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsType_ThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("extract age: %w", NewExternalError("exhausted", nil))

	assert.True(t, IsType(wrapped, ErrorTypeExternal))
	assert.False(t, IsType(wrapped, ErrorTypeValidation))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeExternal))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeNotFound, TypeOf(NewNotFoundError("patient 7")))
	assert.Equal(t, ErrorTypeUnauthorized, TypeOf(fmt.Errorf("admin: %w", NewUnauthorizedError("bad key"))))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("boom")))
}
