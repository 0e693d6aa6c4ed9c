package errors

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	// Schema errors
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrEmptySchema       = errors.New("schema has no fields")
	ErrDuplicateField    = errors.New("duplicate field name")
	ErrInvalidFieldType  = errors.New("invalid field type")
	ErrInvalidConstraint = errors.New("invalid constraint")

	// Generation errors
	ErrGenerationFailed  = errors.New("data generation failed")
	ErrUnknownSubtype    = errors.New("unknown subtype")
	ErrInvalidRowCount   = errors.New("row count must be positive")
	ErrInvalidParameters = errors.New("invalid generation parameters")

	// Privacy errors
	ErrInvalidPrivacyLevel = errors.New("invalid privacy level")
	ErrInvalidEpsilon      = errors.New("epsilon must be positive")
	ErrInvalidDelta        = errors.New("delta must be in (0, 1)")

	// Export errors
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrEmptyDataset      = errors.New("dataset has no records")
	ErrExportFailed      = errors.New("export failed")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingConfiguration = errors.New("missing configuration")

	// Internal errors
	ErrInternal       = errors.New("internal error")
	ErrNotImplemented = errors.New("not implemented")
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeGeneration    ErrorType = "generation"
	ErrorTypePrivacy       ErrorType = "privacy"
	ErrorTypeExport        ErrorType = "export"
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeInternal      ErrorType = "internal"
)

// AppError represents an application-specific error with additional context
type AppError struct {
	Type       ErrorType              `json:"type"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		HTTPStatus: getDefaultHTTPStatus(errType),
	}
}

// WrapError wraps an existing error with application context
func WrapError(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		Cause:      err,
		HTTPStatus: getDefaultHTTPStatus(errType),
	}
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *AppError {
	return NewAppError(ErrorTypeValidation, code, message)
}

// NewGenerationError creates a generation error
func NewGenerationError(code, message string) *AppError {
	return NewAppError(ErrorTypeGeneration, code, message)
}

// NewPrivacyError creates a privacy error
func NewPrivacyError(code, message string) *AppError {
	return NewAppError(ErrorTypePrivacy, code, message)
}

// NewExportError creates an export error
func NewExportError(code, message string) *AppError {
	return NewAppError(ErrorTypeExport, code, message)
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       CodeInternalError,
		Message:    message,
		HTTPStatus: 500,
	}
}

// getDefaultHTTPStatus returns the default HTTP status for an error type
func getDefaultHTTPStatus(errType ErrorType) int {
	switch errType {
	case ErrorTypeValidation:
		return 400
	case ErrorTypePrivacy:
		return 403
	case ErrorTypeInternal, ErrorTypeGeneration, ErrorTypeExport:
		return 500
	case ErrorTypeConfiguration:
		return 503
	default:
		return 500
	}
}

// UnknownSubtypeError reports a subtype string that no generator in the
// family recognizes. It fails the whole column, by contract.
type UnknownSubtypeError struct {
	Family  string
	Subtype string
}

// Error implements the error interface
func (e *UnknownSubtypeError) Error() string {
	return fmt.Sprintf("unknown %s subtype: %q", e.Family, e.Subtype)
}

// Is makes the typed error match the ErrUnknownSubtype sentinel
func (e *UnknownSubtypeError) Is(target error) bool {
	return target == ErrUnknownSubtype
}

// NewUnknownSubtypeError creates an UnknownSubtypeError
func NewUnknownSubtypeError(family, subtype string) *UnknownSubtypeError {
	return &UnknownSubtypeError{Family: family, Subtype: subtype}
}

// Error codes for different error scenarios
const (
	// Validation error codes
	CodeInvalidInput   = "INVALID_INPUT"
	CodeMissingField   = "MISSING_FIELD"
	CodeInvalidFormat  = "INVALID_FORMAT"
	CodeOutOfRange     = "OUT_OF_RANGE"
	CodeInvalidSchema  = "INVALID_SCHEMA"
	CodeDuplicateField = "DUPLICATE_FIELD"

	// Generation error codes
	CodeGenerationFailed = "GENERATION_FAILED"
	CodeUnknownSubtype   = "UNKNOWN_SUBTYPE"
	CodeInvalidRowCount  = "INVALID_ROW_COUNT"

	// Privacy error codes
	CodeInvalidPrivacyLevel = "INVALID_PRIVACY_LEVEL"
	CodeInvalidEpsilon      = "INVALID_EPSILON"
	CodeInvalidDelta        = "INVALID_DELTA"

	// Export error codes
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeEmptyDataset      = "EMPTY_DATASET"
	CodeWriteFailed       = "WRITE_FAILED"

	// Internal error codes
	CodeInternalError  = "INTERNAL_ERROR"
	CodeNotImplemented = "NOT_IMPLEMENTED"
)
