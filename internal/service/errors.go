package service

import "errors"

// Business errors returned by the services. Handlers map these onto HTTP
// statuses in one place.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrTagNotFound      = errors.New("tag not found")

	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username or email already exists")

	// ErrForbidden is the single authorization failure for every guarded
	// operation: editing or deleting someone else's post, viewing a hidden
	// profile, staff-only category management.
	ErrForbidden = errors.New("you do not have permission to perform this action")

	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
)

// FieldErrors carries field-level validation failures back to the rendering
// layer, keyed by form field name.
type FieldErrors map[string][]string

// ValidationError wraps ErrInvalidInput with per-field messages.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string { return ErrInvalidInput.Error() }

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: FieldErrors{field: {message}}}
}
