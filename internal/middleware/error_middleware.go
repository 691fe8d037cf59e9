package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/mkowalski/coursehub/internal/app/models/dto"
	"github.com/mkowalski/coursehub/internal/pkg/apperrors"
)

// errorDetailFor builds an ErrorDetail, carrying over the message and details
// of a CustomError when one wraps the sentinel.
func errorDetailFor(err error, code dto.ErrorCode, fallback string) *dto.ErrorDetail {
	message := fallback
	var details interface{}

	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) {
		if customErr.Message != "" {
			message = customErr.Message
		}
		if customErr.Details != nil {
			details = customErr.Details
		}
	}

	errorDetail := dto.NewErrorDetail(code, message)
	if details != nil {
		errorDetail = errorDetail.WithDetails(details)
	}
	return errorDetail
}

// HandleAPIError maps service errors to API responses. Not-found masking
// happens in the services; this translation is purely mechanical.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrEditionNotFound,
		apperrors.ErrLessonNotFound,
		apperrors.ErrAttachmentNotFound,
		apperrors.ErrEnrollmentNotFound):
		c.JSON(404, dto.APIResponse{
			Error: errorDetailFor(err, dto.ErrorCodeResourceNotFound, "Resource not found"),
		})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.APIResponse{
			Error: errorDetailFor(err, dto.ErrorCodeForbidden, "Permission denied"),
		})

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		})

	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeAccountDisabled, "Account is disabled"),
		})

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		})

	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		})

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		})

	case errors.Is(err, apperrors.ErrEditionInUse):
		c.JSON(409, dto.APIResponse{
			Error: errorDetailFor(err, dto.ErrorCodeConflict, "Edition is referenced by courses and cannot be deleted"),
		})

	// A duplicate enrollment is a bad request, not a conflict: the payload
	// carries the status of the existing record.
	case errors.Is(err, apperrors.ErrEnrollmentExists):
		c.JSON(400, dto.APIResponse{
			Error: errorDetailFor(err, dto.ErrorCodeInvalidRequest, "Enrollment already exists"),
		})

	case apperrors.Is(err, apperrors.ErrEnrollmentMismatch,
		apperrors.ErrInvalidBulkAction,
		apperrors.ErrAttachmentLimitReached,
		apperrors.ErrFileExtensionNotAllowed,
		apperrors.ErrFileTooLarge,
		apperrors.ErrBadRequest):
		c.JSON(400, dto.APIResponse{
			Error: errorDetailFor(err, dto.ErrorCodeInvalidRequest, err.Error()),
		})

	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.APIResponse{
			Error: errorDetailFor(err, dto.ErrorCodeValidationFailed, "Validation failed"),
		})

	default:
		c.JSON(500, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		})
	}
}
