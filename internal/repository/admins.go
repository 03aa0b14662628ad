package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// AdminRepo is the PostgreSQL store for platform admins.
type AdminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{db: db}
}

const adminColumns = `id, created_at, updated_at, email, password_hash, name, role, allowed_ips, requires_password_change, last_access, active`

func scanAdmin(row rowScanner) (*models.Admin, error) {
	var a models.Admin
	var allowedIPs []byte
	var lastAccess sql.NullTime
	err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.Email, &a.PasswordHash,
		&a.Name, &a.Role, &allowedIPs, &a.RequiresPasswordChange, &lastAccess, &a.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(allowedIPs) > 0 {
		if err := json.Unmarshal(allowedIPs, &a.AllowedIPs); err != nil {
			return nil, err
		}
	}
	if lastAccess.Valid {
		a.LastAccess = &lastAccess.Time
	}
	return &a, nil
}

// FindByEmail returns nil without error when no admin matches.
func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE email = $1`, email)
	return scanAdmin(row)
}

// FindActiveByID returns nil without error when the admin is missing or inactive.
func (r *AdminRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admin_users WHERE id = $1 AND active = TRUE`, id)
	return scanAdmin(row)
}

func (r *AdminRepo) Create(ctx context.Context, a *models.Admin) error {
	var allowedIPs interface{}
	if len(a.AllowedIPs) > 0 {
		raw, err := json.Marshal(a.AllowedIPs)
		if err != nil {
			return err
		}
		allowedIPs = raw
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admin_users (id, created_at, updated_at, email, password_hash, name, role, allowed_ips, requires_password_change, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, a.ID, a.CreatedAt, a.UpdatedAt, a.Email, a.PasswordHash, a.Name, a.Role, allowedIPs, a.RequiresPasswordChange, a.Active)
	return err
}

func (r *AdminRepo) UpdateLastAccess(ctx context.Context, id uuid.UUID, t time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE admin_users SET last_access = $1, updated_at = $1 WHERE id = $2`, t, id)
	return err
}
