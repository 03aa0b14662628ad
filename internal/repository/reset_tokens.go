package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ResetTokenRepo stores one-time password reset tokens.
type ResetTokenRepo struct {
	db *sql.DB
}

func NewResetTokenRepo(db *sql.DB) *ResetTokenRepo {
	return &ResetTokenRepo{db: db}
}

func (r *ResetTokenRepo) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`, uuid.New(), userID, token, expiresAt)
	return err
}

// FindValid returns the owning user for an unused, unexpired token.
// ok is false when the token is unknown, used, or expired.
func (r *ResetTokenRepo) FindValid(ctx context.Context, token string, now time.Time) (uuid.UUID, bool, error) {
	var userID uuid.UUID
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id FROM password_reset_tokens
		WHERE token = $1 AND used = FALSE AND expires_at > $2
	`, token, now).Scan(&userID)
	if err == sql.ErrNoRows {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

func (r *ResetTokenRepo) MarkUsed(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE token = $1`, token)
	return err
}
