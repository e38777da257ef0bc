package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessageNamesParam(t *testing.T) {
	err := Invalid("minAmount", "must be a decimal number, got %q", "abc")
	assert.Equal(t, "minAmount", err.Param)
	assert.Contains(t, err.Error(), `"minAmount"`)
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestErrorKindsAreDistinguishable(t *testing.T) {
	validation := fmt.Errorf("build: %w", Invalid("page", "must be a positive integer"))
	notFound := fmt.Errorf("lookup: %w", ErrNotFound)
	storage := Storage("count", errors.New("connection refused"))

	var ve *ValidationError
	assert.True(t, errors.As(validation, &ve))
	assert.False(t, IsNotFound(validation))

	assert.True(t, IsNotFound(notFound))
	assert.False(t, errors.As(notFound, &ve))

	var se *StorageError
	assert.True(t, errors.As(storage, &se))
	assert.Equal(t, "count", se.Op)
	assert.False(t, errors.As(storage, &ve))
	assert.False(t, IsNotFound(storage))
}

func TestStorageNilStaysNil(t *testing.T) {
	assert.NoError(t, Storage("find", nil))
}
