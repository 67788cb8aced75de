package model

import (
	"encoding/json"
	"time"
)

// Gender values accepted on the profile
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// BloodGroups is the closed set accepted on the profile
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// User represents an account identity plus optional demographic profile.
// Owns reports, insights and vitals by reference.
type User struct {
	Base
	Name              string          `json:"name" db:"name"`
	Email             string          `json:"email" db:"email"`
	Password          string          `json:"password,omitempty" db:"-"`
	PasswordHash      string          `json:"-" db:"password_hash"`
	DateOfBirth       *time.Time      `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender            *string         `json:"gender,omitempty" db:"gender"`
	BloodGroup        *string         `json:"blood_group,omitempty" db:"blood_group"`
	Phone             *string         `json:"phone,omitempty" db:"phone"`
	EmergencyJSON     json.RawMessage `json:"-" db:"emergency_contact"`
	EmergencyContact  *EmergencyContact `json:"emergency_contact,omitempty" db:"-"`
	ProfilePicture    string          `json:"profile_picture" db:"profile_picture"`
	LoginAttempts     int             `json:"-" db:"login_attempts"`
	LastLoginAttempt  *time.Time      `json:"-" db:"last_login_attempt"`
	LastLoginAt       *time.Time      `json:"last_login_at,omitempty" db:"last_login_at"`
}

// EmergencyContact is stored as a JSON column
type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries mutable profile fields. Email and password
// are changed through dedicated endpoints only.
type UpdateProfileRequest struct {
	Name             *string           `json:"name"`
	DateOfBirth      *time.Time        `json:"date_of_birth"`
	Gender           *string           `json:"gender" binding:"omitempty,gender"`
	BloodGroup       *string           `json:"blood_group" binding:"omitempty,blood_group"`
	Phone            *string           `json:"phone"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
	ProfilePicture   *string           `json:"profile_picture"`
}

// ChangePasswordRequest is the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}
