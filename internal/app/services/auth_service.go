package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/app/models/dto"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/auth"
	"github.com/arjun/placementhub/internal/pkg/email"
	"github.com/arjun/placementhub/internal/pkg/filestorage"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

const otpLifetime = time.Hour

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetOTP(ctx context.Context, userID int64, otp string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	UpdateDetails(ctx context.Context, userID int64, name, phone, passwordHash string) (*models.User, error)
	UpdateProfileURL(ctx context.Context, userID int64, profileURL string) error
}

// AuthService defines the authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (string, *dto.SigninResponse, error)
	ForgotPassword(ctx context.Context, reqEmail string) error
	VerifyOTP(ctx context.Context, reqEmail, otp string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	UpdateUser(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*dto.UpdateUserResponse, error)
	UploadProfile(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UploadProfileResponse, error)
	TokenExpiry() time.Duration
}

type authService struct {
	users      UserStore
	jwtService *auth.JWTService
	mailer     email.Mailer
	storage    filestorage.FileStorage
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *auth.JWTService, mailer email.Mailer, storage filestorage.FileStorage) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		mailer:     mailer,
		storage:    storage,
	}
}

// Signup registers a new user. Weak passwords and duplicate emails are both
// client errors.
func (s *authService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if !auth.IsStrongPassword(req.Password) {
		return nil, apperrors.NewValidationError(
			"Password must be at least 8 characters and include uppercase, lowercase, number and special character")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RolePatient
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Role:         role,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.SignupResponse{
		Message: "User registered successfully",
		UserID:  id,
		Role:    role,
	}, nil
}

// Signin checks credentials and issues a session token. Unknown email and
// wrong password produce the same client error on purpose.
func (s *authService) Signin(ctx context.Context, req *dto.SigninRequest) (string, *dto.SigninResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, apperrors.NewValidationError("Invalid email or password")
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return "", nil, apperrors.NewValidationError("Invalid email or password")
	}

	token, _, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}

	logger.Info().Int64("userID", user.ID).Msg("User signed in")
	return token, &dto.SigninResponse{
		Message: "Login successful",
		User: dto.SigninUser{
			ID:      user.ID,
			Name:    user.Name,
			Email:   user.Email,
			Role:    user.Role,
			Profile: user.ProfileURL,
		},
	}, nil
}

// TokenExpiry exposes the session lifetime for the cookie the controller sets
func (s *authService) TokenExpiry() time.Duration {
	return s.jwtService.TokenExpiry()
}

// ForgotPassword stores a fresh OTP on the user row and emails it. The email
// send is fire-and-forget: a slow SMTP server must not hold the response.
func (s *authService) ForgotPassword(ctx context.Context, reqEmail string) error {
	user, err := s.users.GetUserByEmail(ctx, reqEmail)
	if err != nil {
		return err
	}

	otp, err := email.GenerateOTP()
	if err != nil {
		return err
	}

	if err := s.users.SetOTP(ctx, user.ID, otp, time.Now().Add(otpLifetime)); err != nil {
		return err
	}

	go func() {
		msg := email.Message{
			To:      user.Email,
			Subject: "Your password reset code",
			HTML:    email.ForgotPasswordTemplate(user.Name, otp),
		}
		if err := s.mailer.Send(msg); err != nil {
			logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
		}
	}()

	return nil
}

// VerifyOTP checks a previously emailed OTP without consuming it.
func (s *authService) VerifyOTP(ctx context.Context, reqEmail, otp string) error {
	user, err := s.users.GetUserByEmail(ctx, reqEmail)
	if err != nil {
		return err
	}

	if user.OTP == nil || *user.OTP != otp {
		return apperrors.ErrOTPInvalid
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return apperrors.ErrOTPExpired
	}
	return nil
}

// ResetPassword completes the OTP flow: it requires an active reset request
// and replaces the password, clearing the OTP so a code cannot be replayed.
func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if req.NewPassword != req.ConfirmPassword {
		return apperrors.NewValidationError("Passwords do not match")
	}
	if !auth.IsStrongPassword(req.NewPassword) {
		return apperrors.NewValidationError(
			"Password must be at least 8 characters and include uppercase, lowercase, number and special character")
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	if user.OTP == nil {
		return apperrors.ErrOTPInvalid
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return apperrors.ErrOTPExpired
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}

	logger.Info().Int64("userID", user.ID).Msg("Password reset completed")
	return nil
}

// UpdateUser applies a partial profile update for the authenticated user.
func (s *authService) UpdateUser(ctx context.Context, userID int64, req *dto.UpdateUserRequest) (*dto.UpdateUserResponse, error) {
	passwordHash := ""
	if req.Password != "" {
		if !auth.IsStrongPassword(req.Password) {
			return nil, apperrors.NewValidationError(
				"Password must be at least 8 characters and include uppercase, lowercase, number and special character")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = hash
	}

	user, err := s.users.UpdateDetails(ctx, userID, req.Name, req.Phone, passwordHash)
	if err != nil {
		return nil, err
	}

	return &dto.UpdateUserResponse{
		Message: "User Details Updated",
		Name:    user.Name,
		Phone:   user.Phone,
		Profile: user.ProfileURL,
	}, nil
}

// UploadProfile stores a new profile image and records its URL.
func (s *authService) UploadProfile(ctx context.Context, userID int64, file *multipart.FileHeader) (*dto.UploadProfileResponse, error) {
	if file == nil {
		return nil, apperrors.NewValidationError("Profile image file is required")
	}

	stored, err := s.storage.Store(file, "profile")
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateProfileURL(ctx, userID, stored.URL); err != nil {
		return nil, err
	}

	return &dto.UploadProfileResponse{
		Message: "Uploaded Profile",
		UserID:  userID,
		Profile: stored.URL,
	}, nil
}
