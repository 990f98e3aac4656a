package apperrors

import "errors"

// Common errors
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")
	ErrNotAnImage   = errors.New("not an image")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserNotFound = errors.New("user not found")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")

	// Uniqueness violations
	ErrEmailAlreadyUsed = errors.New("email already used")
	ErrIneAlreadyUsed   = errors.New("INE already used")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
)

// CustomError carries an underlying sentinel plus a client-facing message.
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewInvalidInputError creates an invalid-input error with a message
func NewInvalidInputError(message string) error {
	return &CustomError{Err: ErrInvalidInput, Message: message}
}

// NewUnauthorizedError creates an unauthorized error with a message
func NewUnauthorizedError(message string) error {
	return &CustomError{Err: ErrUnauthorized, Message: message}
}
