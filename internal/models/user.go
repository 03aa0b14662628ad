package models

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus is the lifecycle state of a patient account.
// Status flips are the only supported "soft delete".
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserSuspended UserStatus = "suspended"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Don't return password hash in JSON
	DateOfBirth  time.Time `json:"date_of_birth"`

	ProfilePhotoURL string     `json:"profile_photo_url,omitempty"`
	Status          UserStatus `json:"status"`

	// TherapistID is nil while the patient is unassigned.
	TherapistID *uuid.UUID `json:"therapist_id,omitempty"`

	RequiresPasswordChange bool       `json:"requires_password_change"`
	EmailVerified          bool       `json:"email_verified"`
	CreatedByAdminID       *uuid.UUID `json:"created_by_admin_id,omitempty"`
	AdminNotes             string     `json:"admin_notes,omitempty"`
	LastAccess             *time.Time `json:"last_access,omitempty"`
}
