package dto

// SignupRequest carries the fields required to register a new user
type SignupRequest struct {
	Name     string `json:"name" binding:"required" example:"Asha Rao"`
	Email    string `json:"email" binding:"required,email" example:"asha@college.edu"`
	Password string `json:"password" binding:"required" example:"Str0ng@Pass"`
	Role     string `json:"role" binding:"required" example:"PATIENT"`
	Phone    string `json:"phone" binding:"required" example:"9876543210"`
}

// SignupResponse acknowledges a successful registration
type SignupResponse struct {
	Message string `json:"message" example:"User registered successfully"`
	UserID  int64  `json:"userId" example:"1"`
	Role    string `json:"role" example:"PATIENT"`
}

// SigninRequest carries login credentials
type SigninRequest struct {
	Email    string `json:"email" binding:"required" example:"asha@college.edu"`
	Password string `json:"password" binding:"required"`
}

// SigninUser is the user summary returned on login
type SigninUser struct {
	ID      int64  `json:"id" example:"1"`
	Name    string `json:"name" example:"Asha Rao"`
	Email   string `json:"email" example:"asha@college.edu"`
	Role    string `json:"role" example:"PATIENT"`
	Profile string `json:"profile" example:"uploads/profile/abc.jpg"`
}

// SigninResponse is returned on successful login; the session token itself
// travels in the auth_token cookie.
type SigninResponse struct {
	Message string     `json:"message" example:"Login successful"`
	User    SigninUser `json:"user"`
}

// ForgotPasswordRequest starts the OTP flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required" example:"asha@college.edu"`
}

// VerifyOTPRequest checks a previously emailed OTP
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required" example:"asha@college.edu"`
	OTP   string `json:"otp" binding:"required" example:"482913"`
}

// ResetPasswordRequest completes the OTP flow
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required" example:"asha@college.edu"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UpdateUserRequest carries a partial profile update; empty fields are left
// untouched.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UpdateUserResponse echoes the updated profile fields
type UpdateUserResponse struct {
	Message string `json:"message" example:"User Details Updated"`
	Name    string `json:"name" example:"Asha Rao"`
	Phone   string `json:"phone" example:"9876543210"`
	Profile string `json:"profile" example:"uploads/profile/abc.jpg"`
}

// UploadProfileResponse returns the stored profile image URL
type UploadProfileResponse struct {
	Message string `json:"message" example:"Uploaded Profile"`
	UserID  int64  `json:"userId" example:"1"`
	Profile string `json:"profile" example:"uploads/profile/abc.jpg"`
}
