package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// HandleAPIError translates application errors into HTTP responses. The four
// client statuses are kept distinct: a malformed request is never reported as
// missing auth, and a missing resource is never reported as forbidden.
func HandleAPIError(c *gin.Context, err error) {
	message := err.Error()
	var custom *apperrors.CustomError
	if !errors.As(err, &custom) {
		// Only sentinel and CustomError messages are safe to surface.
		message = ""
	}

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrInvalidPassword),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, fallback(message, "Validation failed"))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists, "Email already exists")

	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "User not found")

	case errors.Is(err, apperrors.ErrOTPInvalid):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Invalid OTP")

	case errors.Is(err, apperrors.ErrOTPExpired):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "OTP has expired")

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")

	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")

	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")

	case errors.Is(err, apperrors.ErrUnauthenticated):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")

	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, fallback(message, "Permission denied"))

	case errors.Is(err, apperrors.ErrDriveNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Drive not found")

	case errors.Is(err, apperrors.ErrQuestionNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Interview question not found")

	case errors.Is(err, apperrors.ErrCommentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Comment not found")

	case errors.Is(err, apperrors.ErrMaterialNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Placement material not found")

	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, fallback(message, "Resource not found"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

func fallback(message, def string) string {
	if message != "" {
		return message
	}
	return def
}
