package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole is the privilege level of a platform admin.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "super_admin"
	RoleAdmin      AdminRole = "admin"
	RoleSupport    AdminRole = "support"
)

type Admin struct {
	ID           uuid.UUID `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Don't return password hash in JSON
	Name         string    `json:"name"`
	Role         AdminRole `json:"role"`

	// AllowedIPs restricts login to these client IPs. Empty means unrestricted.
	AllowedIPs []string `json:"allowed_ips,omitempty"`

	RequiresPasswordChange bool       `json:"requires_password_change"`
	LastAccess             *time.Time `json:"last_access,omitempty"`
	Active                 bool       `json:"active"`
}
