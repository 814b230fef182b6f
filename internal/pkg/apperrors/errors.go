package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidFormat    = errors.New("invalid token format")

	// System errors
	ErrConfiguration = errors.New("configuration error")
	ErrStorage       = errors.New("storage error")
)

// User errors
var (
	ErrUserNotFound       = NewCustomError(ErrResourceNotFound, "user not found")
	ErrEmailAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "email already exists")
)

// Claim errors
var (
	ErrClaimNotFound     = NewCustomError(ErrResourceNotFound, "claim not found")
	ErrProofNotFound     = NewCustomError(ErrResourceNotFound, "proof not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrProfileIncomplete = errors.New("complete your profile before submitting a claim")
	ErrInvalidMentor     = errors.New("one or more mentor emails are invalid or not authorized mentors")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation error naming the offending fields
func NewValidationError(message string, fields ...string) error {
	e := &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
	if len(fields) > 0 {
		e.Details = map[string]interface{}{"fields": fields}
	}
	return e
}

// NewConfigurationError reports an operator-fixable fault
func NewConfigurationError(message string) error {
	return &CustomError{
		Err:     ErrConfiguration,
		Message: message,
	}
}

// NewStorageError wraps a failed proof write
func NewStorageError(cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrStorage, cause),
		Message: "failed to store proof file",
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// DetailsOf returns the details attached to the first CustomError in the chain, if any
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
