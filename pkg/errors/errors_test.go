package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewValidationError(CodeInvalidInput, "bad input")
	assert.Equal(t, "INVALID_INPUT: bad input", err.Error())

	err = err.WithDetails("field x is empty")
	assert.Equal(t, "INVALID_INPUT: bad input - field x is empty", err.Error())
}

func TestAppErrorHTTPStatus(t *testing.T) {
	assert.Equal(t, 400, NewValidationError(CodeInvalidInput, "x").HTTPStatus)
	assert.Equal(t, 403, NewPrivacyError(CodeInvalidEpsilon, "x").HTTPStatus)
	assert.Equal(t, 500, NewGenerationError(CodeGenerationFailed, "x").HTTPStatus)
	assert.Equal(t, 500, NewInternalError("x").HTTPStatus)
}

func TestWrapErrorPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := WrapError(cause, ErrorTypeExport, CodeWriteFailed, "csv export failed")

	require.NotNil(t, err)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "csv export failed")
}

func TestWithContext(t *testing.T) {
	err := NewGenerationError(CodeGenerationFailed, "boom").
		WithContext("field", "email").
		WithContext("rows", 100)

	assert.Equal(t, "email", err.Context["field"])
	assert.Equal(t, 100, err.Context["rows"])
}

func TestUnknownSubtypeErrorMatchesSentinel(t *testing.T) {
	err := NewUnknownSubtypeError("numeric", "quantum")

	assert.ErrorIs(t, err, ErrUnknownSubtype)
	assert.Contains(t, err.Error(), "numeric")
	assert.Contains(t, err.Error(), "quantum")
}

func TestAppErrorIsMatchesTypeAndCode(t *testing.T) {
	err := NewExportError(CodeUnsupportedFormat, "nope")
	target := &AppError{Type: ErrorTypeExport, Code: CodeUnsupportedFormat}

	assert.True(t, errors.Is(err, target))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeExport, Code: CodeEmptyDataset}))
}
