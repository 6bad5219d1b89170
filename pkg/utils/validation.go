package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "notehub-backend/pkg/errors"
)

var validate = validator.New()

// ValidateStruct validates a struct based on its validation tags and maps
// the first failure to a field-level validation error.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			e := validationErrors[0]
			return appErrors.NewValidationError(strings.ToLower(e.Field()), reasonFor(e))
		}
		return appErrors.NewInternalError("validation failed").WithCause(err)
	}
	return nil
}

// reasonFor turns a validator tag failure into a readable reason
func reasonFor(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "dive":
		return "contains invalid values"
	default:
		return "is invalid"
	}
}
