package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// UserRepo is the PostgreSQL store for patients.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, created_at, updated_at, first_name, last_name, email, password_hash, date_of_birth, profile_photo_url, status, therapist_id, requires_password_change, email_verified, created_by_admin_id, admin_notes, last_access`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var dateOfBirth, lastAccess sql.NullTime
	var profilePhotoURL, adminNotes sql.NullString
	var therapistID, createdByAdminID uuid.NullUUID
	err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.FirstName, &u.LastName,
		&u.Email, &u.PasswordHash, &dateOfBirth, &profilePhotoURL, &u.Status,
		&therapistID, &u.RequiresPasswordChange, &u.EmailVerified,
		&createdByAdminID, &adminNotes, &lastAccess)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if dateOfBirth.Valid {
		u.DateOfBirth = dateOfBirth.Time
	}
	u.ProfilePhotoURL = profilePhotoURL.String
	u.AdminNotes = adminNotes.String
	if therapistID.Valid {
		id := therapistID.UUID
		u.TherapistID = &id
	}
	if createdByAdminID.Valid {
		id := createdByAdminID.UUID
		u.CreatedByAdminID = &id
	}
	if lastAccess.Valid {
		u.LastAccess = &lastAccess.Time
	}
	return &u, nil
}

// FindByEmail returns nil without error when no user matches.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// FindActiveByID returns nil without error when the user is missing or not active.
func (r *UserRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND status = $2`, id, models.UserActive)
	return scanUser(row)
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, updated_at, first_name, last_name, email, password_hash, date_of_birth, profile_photo_url, status, therapist_id, requires_password_change, created_by_admin_id, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, u.ID, u.CreatedAt, u.UpdatedAt, u.FirstName, u.LastName, u.Email, u.PasswordHash,
		u.DateOfBirth, nullString(u.ProfilePhotoURL), u.Status, nullUUID(u.TherapistID),
		u.RequiresPasswordChange, nullUUID(u.CreatedByAdminID), nullString(u.AdminNotes))
	return err
}

// SetTherapist writes the therapist foreign key; nil clears the assignment.
func (r *UserRepo) SetTherapist(ctx context.Context, userID uuid.UUID, therapistID *uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET therapist_id = $1, updated_at = NOW() WHERE id = $2`,
		nullUUID(therapistID), userID)
	return err
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, requires_password_change = FALSE, updated_at = NOW() WHERE id = $2`,
		passwordHash, id)
	return err
}

func (r *UserRepo) UpdateLastAccess(ctx context.Context, id uuid.UUID, t time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_access = $1 WHERE id = $2`, t, id)
	return err
}

func (r *UserRepo) list(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) List(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY last_name ASC, first_name ASC`)
}

func (r *UserRepo) ListActive(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE status = $1 ORDER BY last_name ASC, first_name ASC`,
		models.UserActive)
}

func (r *UserRepo) ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*models.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE therapist_id = $1 ORDER BY last_name ASC, first_name ASC`,
		therapistID)
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *UserRepo) CountByStatus(ctx context.Context, status models.UserStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE status = $1`, status).Scan(&count)
	return count, err
}

// CountByTherapistAndStatus is the aggregate behind the therapist
// hard-delete guard and patient counts; it never loads patient rows.
func (r *UserRepo) CountByTherapistAndStatus(ctx context.Context, therapistID uuid.UUID, status models.UserStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE therapist_id = $1 AND status = $2`,
		therapistID, status).Scan(&count)
	return count, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
