package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewInputError("failed to read file", cause).WithContext("file", "x.csv")

	assert.Equal(t, ErrTypeInput, err.Type)
	assert.Contains(t, err.Error(), "failed to read file")
	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	require.ErrorAs(t, error(err), &appErr)
	assert.Equal(t, "x.csv", appErr.Context["file"])
}

func TestSchemaErrorHasNoCause(t *testing.T) {
	err := NewSchemaError("missing column")
	assert.Equal(t, ErrTypeSchema, err.Type)
	assert.Nil(t, errors.Unwrap(err))
}
