package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// HandleValidationError turns a binding error into the client-facing
// message. Validator field errors name the first offending field; any
// other binding failure collapses to a generic message.
func HandleValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return formatValidationError(validationErrors[0])
	}
	return "missing fields"
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "missing fields"
	case "email":
		return "invalid email"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	default:
		return "invalid " + e.Field()
	}
}
