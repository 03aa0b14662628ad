package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// DailyRecordRepo is the PostgreSQL store for daily clinical records.
type DailyRecordRepo struct {
	db *sql.DB
}

func NewDailyRecordRepo(db *sql.DB) *DailyRecordRepo {
	return &DailyRecordRepo{db: db}
}

const dailyRecordColumns = `id, created_at, session_id, date, mood, anxiety, stress, energy, emotions, triggers, coping_strategies, medication_taken, sleep_hours, exercise_minutes, notes, crisis_plan_activated, therapist_notes`

func scanDailyRecord(row rowScanner) (*models.DailyRecord, error) {
	var d models.DailyRecord
	var mood, anxiety, stress, energy sql.NullInt64
	var emotions, triggers, coping, medication, sleep, exercise, notes, therapistNotes sql.NullString
	err := row.Scan(&d.ID, &d.CreatedAt, &d.SessionID, &d.Date,
		&mood, &anxiety, &stress, &energy,
		&emotions, &triggers, &coping, &medication, &sleep, &exercise, &notes,
		&d.CrisisPlanActivated, &therapistNotes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d.Mood = nullableInt(mood)
	d.Anxiety = nullableInt(anxiety)
	d.Stress = nullableInt(stress)
	d.Energy = nullableInt(energy)
	d.Emotions = emotions.String
	d.Triggers = triggers.String
	d.CopingStrategies = coping.String
	d.MedicationTaken = medication.String
	d.SleepHours = sleep.String
	d.ExerciseMinutes = exercise.String
	d.Notes = notes.String
	d.TherapistNotes = therapistNotes.String
	return &d, nil
}

func (r *DailyRecordRepo) Create(ctx context.Context, d *models.DailyRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_records (id, created_at, session_id, date, mood, anxiety, stress, energy, emotions, triggers, coping_strategies, medication_taken, sleep_hours, exercise_minutes, notes, crisis_plan_activated, therapist_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, d.ID, d.CreatedAt, d.SessionID, d.Date,
		nullInt(d.Mood), nullInt(d.Anxiety), nullInt(d.Stress), nullInt(d.Energy),
		nullString(d.Emotions), nullString(d.Triggers), nullString(d.CopingStrategies),
		nullString(d.MedicationTaken), nullString(d.SleepHours), nullString(d.ExerciseMinutes),
		nullString(d.Notes), d.CrisisPlanActivated, nullString(d.TherapistNotes))
	return err
}

func (r *DailyRecordRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.DailyRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+dailyRecordColumns+` FROM daily_records WHERE session_id = $1 ORDER BY date ASC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DailyRecord
	for rows.Next() {
		d, err := scanDailyRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

func nullableInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
