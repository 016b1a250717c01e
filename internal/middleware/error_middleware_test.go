package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
)

func handleErr(t *testing.T, err error) (*httptest.ResponseRecorder, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleAPIErrorStatusTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusBadRequest, dto.ErrorCodeResourceAlreadyExists},
		{"user not found", apperrors.ErrUserNotFound, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid otp", apperrors.ErrOTPInvalid, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"expired otp", apperrors.ErrOTPExpired, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"invalid token", apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"drive not found", apperrors.ErrDriveNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"question not found", apperrors.ErrQuestionNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"comment not found", apperrors.ErrCommentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"material not found", apperrors.ErrMaterialNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"unknown error", assert.AnError, http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := handleErr(t, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestHandleAPIErrorSurfacesCustomMessages(t *testing.T) {
	w, body := handleErr(t, apperrors.NewValidationError("Registration deadline must be before or on the start date."))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Registration deadline must be before or on the start date.", body.Error.Message)

	w, body = handleErr(t, apperrors.NewForbiddenError("You are not allowed to delete this drive"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not allowed to delete this drive", body.Error.Message)
}

func TestHandleAPIErrorHidesInternalDetails(t *testing.T) {
	_, body := handleErr(t, assert.AnError)
	assert.Equal(t, "Internal server error", body.Error.Message)
}
