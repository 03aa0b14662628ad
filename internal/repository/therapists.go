package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// TherapistRepo is the PostgreSQL store for therapists.
type TherapistRepo struct {
	db *sql.DB
}

func NewTherapistRepo(db *sql.DB) *TherapistRepo {
	return &TherapistRepo{db: db}
}

const therapistColumns = `id, created_at, updated_at, email, first_name, last_name, phone, active`

func scanTherapist(row rowScanner) (*models.Therapist, error) {
	var t models.Therapist
	var phone sql.NullString
	err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt, &t.Email, &t.FirstName,
		&t.LastName, &phone, &t.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.Phone = phone.String
	return &t, nil
}

// FindByEmail returns nil without error when no therapist matches.
func (r *TherapistRepo) FindByEmail(ctx context.Context, email string) (*models.Therapist, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+therapistColumns+` FROM therapists WHERE email = $1`, email)
	return scanTherapist(row)
}

func (r *TherapistRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Therapist, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+therapistColumns+` FROM therapists WHERE id = $1`, id)
	return scanTherapist(row)
}

func (r *TherapistRepo) Create(ctx context.Context, t *models.Therapist) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO therapists (id, created_at, updated_at, email, first_name, last_name, phone, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.CreatedAt, t.UpdatedAt, t.Email, t.FirstName, t.LastName, nullString(t.Phone), t.Active)
	return err
}

func (r *TherapistRepo) Update(ctx context.Context, t *models.Therapist) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE therapists
		SET email = $1, first_name = $2, last_name = $3, phone = $4, active = $5, updated_at = NOW()
		WHERE id = $6
	`, t.Email, t.FirstName, t.LastName, nullString(t.Phone), t.Active, t.ID)
	return err
}

func (r *TherapistRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE therapists SET active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	return err
}

func (r *TherapistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM therapists WHERE id = $1`, id)
	return err
}

func (r *TherapistRepo) List(ctx context.Context, activeOnly bool) ([]*models.Therapist, error) {
	query := `SELECT ` + therapistColumns + ` FROM therapists ORDER BY last_name ASC, first_name ASC`
	if activeOnly {
		query = `SELECT ` + therapistColumns + ` FROM therapists WHERE active = TRUE ORDER BY last_name ASC, first_name ASC`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var therapists []*models.Therapist
	for rows.Next() {
		t, err := scanTherapist(rows)
		if err != nil {
			return nil, err
		}
		therapists = append(therapists, t)
	}
	return therapists, rows.Err()
}
