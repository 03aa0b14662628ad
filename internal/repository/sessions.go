package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// SessionRepo is the PostgreSQL store for care sessions.
type SessionRepo struct {
	db *sql.DB
}

func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `id, created_at, user_id, start_date, end_date, response_frequency, phone_consultation_used, status`

func scanSession(row rowScanner) (*models.Session, error) {
	var s models.Session
	var endDate sql.NullTime
	err := row.Scan(&s.ID, &s.CreatedAt, &s.UserID, &s.StartDate, &endDate,
		&s.ResponseFrequency, &s.PhoneConsultationUsed, &s.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		s.EndDate = &endDate.Time
	}
	return &s, nil
}

func (r *SessionRepo) Create(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, created_at, user_id, start_date, end_date, response_frequency, phone_consultation_used, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, s.ID, s.CreatedAt, s.UserID, s.StartDate, nullTime(s.EndDate), s.ResponseFrequency, s.PhoneConsultationUsed, s.Status)
	return err
}

func (r *SessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	return scanSession(row)
}

func (r *SessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1 ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// UpdateStatus flips the session lifecycle state; endDate is recorded when non-nil.
func (r *SessionRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus, endDate *time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET status = $1, end_date = COALESCE($2, end_date) WHERE id = $3`,
		status, nullTime(endDate), id)
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
