package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/placementhub/internal/app/models"
	"github.com/arjun/placementhub/internal/pkg/apperrors"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

const userColumns = "id, name, email, password_hash, phone, role, is_active, profile_url, otp, otp_expires_at, created_at, updated_at"

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Phone,
		&user.Role, &user.IsActive, &user.ProfileURL,
		&user.OTP, &user.OTPExpiresAt,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user; the email is lowercased on ingestion.
// Returns apperrors.ErrEmailAlreadyExists on a unique violation.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := r.sb.Insert("users").
		Columns("name", "email", "password_hash", "phone", "role").
		Values(user.Name, strings.ToLower(user.Email), user.PasswordHash, user.Phone, user.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", user.Email).Msg("Error inserting user")
		return 0, fmt.Errorf("error inserting user: %w", err)
	}

	logger.Info().Int64("userID", id).Msg("User created successfully")
	return id, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", id).Msg("Error querying user by ID")
		return nil, fmt.Errorf("error querying user ID=%d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email (case-insensitive)
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns).
		From("users").
		Where(squirrel.Eq{"email": strings.ToLower(email)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user by email query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error querying user by email")
		return nil, fmt.Errorf("error querying user by email: %w", err)
	}
	return user, nil
}

// SetOTP stores a pending password-reset OTP and its expiry on the user row,
// overwriting whatever was there before.
func (r *UserRepository) SetOTP(ctx context.Context, userID int64, otp string, expiresAt time.Time) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"otp":            otp,
			"otp_expires_at": expiresAt,
			"updated_at":     time.Now(),
		}).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build set otp query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error storing otp")
		return fmt.Errorf("error storing otp: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash and clears any pending
// OTP.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"password_hash":  passwordHash,
			"otp":            nil,
			"otp_expires_at": nil,
			"updated_at":     time.Now(),
		}).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	logger.Info().Int64("userID", userID).Msg("Password updated successfully")
	return nil
}

// UpdateDetails applies a partial profile update. Empty values leave the
// corresponding column untouched.
func (r *UserRepository) UpdateDetails(ctx context.Context, userID int64, name, phone, passwordHash string) (*models.User, error) {
	set := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if name != "" {
		set["name"] = name
	}
	if phone != "" {
		set["phone"] = phone
	}
	if passwordHash != "" {
		set["password_hash"] = passwordHash
	}

	sql, args, err := r.sb.Update("users").
		SetMap(set).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING " + userColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating user details")
		return nil, fmt.Errorf("error updating user ID=%d: %w", userID, err)
	}

	logger.Info().Int64("userID", userID).Msg("User details updated successfully")
	return user, nil
}

// UpdateProfileURL stores a new profile image URL
func (r *UserRepository) UpdateProfileURL(ctx context.Context, userID int64, profileURL string) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"profile_url": profileURL,
			"updated_at":  time.Now(),
		}).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating profile URL")
		return fmt.Errorf("error updating profile URL: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
