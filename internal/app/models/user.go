package models

import (
	"time"
)

// Role values intended by the product. The role column itself is free-form
// text for backward compatibility with previously stored records.
const (
	RolePatient      = "PATIENT"
	RoleDoctor       = "DOCTOR"
	RoleReceptionist = "RECEPTIONIST"
	RoleAdmin        = "ADMIN"
)

// IsAdminRole reports whether a role string grants admin capability.
// Exactly the two historical spellings are accepted; this is a closed set,
// not a case-insensitive compare.
func IsAdminRole(role string) bool {
	return role == "admin" || role == "ADMIN"
}

// User defines the user model based on the 'users' table
type User struct {
	ID           int64      `json:"id" db:"id" example:"1"`                                          // Unique identifier for the user
	Name         string     `json:"name" db:"name" example:"Asha Rao"`                               // Display name
	Email        string     `json:"email" db:"email" example:"asha@college.edu"`                     // Unique, lowercase-normalized email
	PasswordHash string     `json:"-" db:"password_hash"`                                            // Hashed password (excluded from JSON)
	Phone        string     `json:"phone" db:"phone" example:"9876543210"`                           // Contact phone
	Role         string     `json:"role" db:"role" example:"PATIENT"`                                // Free-form role string, default PATIENT
	IsActive     bool       `json:"isActive" db:"is_active" example:"true"`                          // Whether the account is active
	ProfileURL   string     `json:"profile" db:"profile_url" example:"uploads/profile/abc.jpg"`      // Profile image URL
	OTP          *string    `json:"-" db:"otp"`                                                      // Pending password-reset OTP (nullable)
	OTPExpiresAt *time.Time `json:"-" db:"otp_expires_at"`                                           // OTP expiry (nullable)
	CreatedAt    time.Time  `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`        // Creation timestamp
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`        // Last update timestamp
}

// UserSummary is the minimal public projection of a user attached to owned
// resources. Email is only populated where the resource's presentation
// contract includes it (drives do, questions and materials do not).
type UserSummary struct {
	ID      int64  `json:"id" example:"1"`
	Name    string `json:"name" example:"Asha Rao"`
	Email   string `json:"email,omitempty" example:"asha@college.edu"`
	Profile string `json:"profile,omitempty" example:"uploads/profile/abc.jpg"`
}
