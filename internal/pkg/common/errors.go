package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON error body returned by the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// CustomError carries a machine-checkable error kind alongside the
// human-readable message and the HTTP status it maps to.
type CustomError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError creates a new custom error.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Error kinds for the generation pipeline. Every failure surfaced by the
// engines carries exactly one of these.
const (
	ErrCodeConfiguration     = "CONFIGURATION_ERROR" // required provider credential absent
	ErrCodeProvider          = "PROVIDER_ERROR"      // upstream call failed or returned an error payload
	ErrCodeMalformedResponse = "MALFORMED_RESPONSE"  // provider output does not parse / lacks mandatory fields
	ErrCodeValidation        = "VALIDATION_ERROR"    // structural rule violation
	ErrCodeAuthorization     = "AUTHORIZATION_ERROR" // caller is neither author nor admin
	ErrCodeNotFound          = "NOT_FOUND"           // referenced record does not exist
	ErrCodeGeneration        = "GENERATION_ERROR"    // generation pipeline produced no usable recipe
	ErrCodeComposition       = "COMPOSITION_ERROR"   // menu plan validation failed after repair
)

// Transport-level error codes.
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeForbidden       = "FORBIDDEN"
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// NewConfigurationError reports a missing provider credential. Fatal per
// request, never retried.
func NewConfigurationError(message string) *CustomError {
	return NewError(ErrCodeConfiguration, message, http.StatusInternalServerError, nil)
}

// NewProviderError wraps a failed upstream call.
func NewProviderError(message string, err error) *CustomError {
	return NewError(ErrCodeProvider, message, http.StatusBadGateway, err)
}

// NewMalformedResponseError reports provider output that does not parse as
// the expected schema or is missing mandatory fields.
func NewMalformedResponseError(message string) *CustomError {
	return NewError(ErrCodeMalformedResponse, message, http.StatusBadGateway, nil)
}

// NewValidationError reports a structural rule violation.
func NewValidationError(message string) *CustomError {
	return NewError(ErrCodeValidation, message, http.StatusUnprocessableEntity, nil)
}

// NewAuthorizationError reports a caller that may not mutate the record.
func NewAuthorizationError(message string) *CustomError {
	return NewError(ErrCodeAuthorization, message, http.StatusForbidden, nil)
}

// NewNotFoundError reports a record ID or slug that resolved to nothing.
func NewNotFoundError(message string) *CustomError {
	return NewError(ErrCodeNotFound, message, http.StatusNotFound, nil)
}

// NewGenerationError reports a pipeline that ran to completion without a
// usable recipe.
func NewGenerationError(message string) *CustomError {
	return NewError(ErrCodeGeneration, message, http.StatusBadGateway, nil)
}

// NewCompositionError reports a menu whose section structure could not be
// repaired to match its plan.
func NewCompositionError(message string) *CustomError {
	return NewError(ErrCodeComposition, message, http.StatusBadGateway, nil)
}

// IsKind reports whether err is a CustomError with the given code.
func IsKind(err error, code string) bool {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// Predefined transport errors.
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "authentication required", http.StatusUnauthorized, nil)
	ErrForbidden       = NewError(ErrCodeForbidden, "access denied", http.StatusForbidden, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "request timed out", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
)
