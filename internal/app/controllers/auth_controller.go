package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/app/services"
	"github.com/arjun/placementhub/internal/middleware"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Creates a user account. The email must be unused and the password strong.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Registration details"
// @Success 201 {object} dto.SignupResponse "User registered successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation error or email already in use"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid signup details: "+err.Error()))
		return
	}

	resp, err := c.authService.Signup(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, resp)
}

// Signin handles user login
// @Summary Log in
// @Description Verifies credentials and sets the auth_token session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SigninRequest true "Login credentials"
// @Success 200 {object} dto.SigninResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid email or password"
// @Router /auth/signin [post]
func (c *AuthController) Signin(ctx *gin.Context) {
	var req dto.SigninRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email and password are required"))
		return
	}

	token, resp, err := c.authService.Signin(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	maxAge := int(c.authService.TokenExpiry().Seconds())
	ctx.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", false, true)
	ctx.JSON(http.StatusOK, resp)
}

// Signout clears the session cookie
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MessageResponse "Logged out"
// @Router /auth/signout [post]
func (c *AuthController) Signout(ctx *gin.Context) {
	ctx.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out successfully"))
}

// ForgotPassword starts the OTP reset flow
// @Summary Request a password reset OTP
// @Description Emails a 6-digit code valid for one hour
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.MessageResponse "OTP sent"
// @Failure 400 {object} dto.ErrorResponse "Unknown email"
// @Router /auth/forgot-password [put]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email is required"))
		return
	}

	if err := c.authService.ForgotPassword(ctx.Request.Context(), req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("OTP sent to your email"))
}

// VerifyOTP checks a reset code without consuming it
// @Summary Verify a password reset OTP
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and OTP"
// @Success 200 {object} dto.MessageResponse "OTP verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired OTP"
// @Router /auth/verify-forgot-password-otp [put]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email and OTP are required"))
		return
	}

	if err := c.authService.VerifyOTP(ctx.Request.Context(), req.Email, req.OTP); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("OTP verified"))
}

// ResetPassword completes the OTP reset flow
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} dto.MessageResponse "Password reset"
// @Failure 400 {object} dto.ErrorResponse "Validation error or expired OTP"
// @Router /auth/reset-password [put]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Email, new password and confirmation are required"))
		return
	}

	if err := c.authService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Password reset successful"))
}

// UpdateUser applies a partial profile update for the caller
// @Summary Update own profile details
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.UpdateUserRequest true "Fields to update"
// @Success 200 {object} dto.UpdateUserResponse "Details updated"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Security BearerAuth
// @Router /auth/update-user [put]
func (c *AuthController) UpdateUser(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Invalid update details"))
		return
	}

	resp, err := c.authService.UpdateUser(ctx.Request.Context(), principal.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// UploadProfile stores a new profile image for the caller
// @Summary Upload profile image
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param profile formData file true "Profile image"
// @Success 200 {object} dto.UploadProfileResponse "Profile uploaded"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Security BearerAuth
// @Router /auth/upload-profile [put]
func (c *AuthController) UploadProfile(ctx *gin.Context) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	file, err := ctx.FormFile("profile")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("Profile image file is required"))
		return
	}

	resp, err := c.authService.UploadProfile(ctx.Request.Context(), principal.ID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}
