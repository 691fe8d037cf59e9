package middleware

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/mkowalski/coursehub/internal/app/models/dto"
)

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return e.Field() + " must be a valid email address"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}

// BindingErrorDetail converts a gin binding error into a validation error
// detail. Field-level messages are included when the error came from the
// validator.
func BindingErrorDetail(err error) *dto.ErrorDetail {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			messages = append(messages, formatValidationError(fieldErr))
		}
		errorDetail = errorDetail.WithDetails(messages)
		if len(validationErrs) > 0 {
			errorDetail = errorDetail.WithField(validationErrs[0].Field())
		}
	}

	return errorDetail
}
