package models

import (
	"time"

	"github.com/google/uuid"
)

// DailyRecord is a dated clinical snapshot inside a session.
// Scale fields (mood, anxiety, stress, energy) are nil when not answered.
type DailyRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	SessionID uuid.UUID `json:"session_id"`
	Date      time.Time `json:"date"`

	Mood    *int `json:"mood,omitempty"`
	Anxiety *int `json:"anxiety,omitempty"`
	Stress  *int `json:"stress,omitempty"`
	Energy  *int `json:"energy,omitempty"`

	Emotions         string `json:"emotions,omitempty"`
	Triggers         string `json:"triggers,omitempty"`
	CopingStrategies string `json:"coping_strategies,omitempty"`
	MedicationTaken  string `json:"medication_taken,omitempty"`
	SleepHours       string `json:"sleep_hours,omitempty"`
	ExerciseMinutes  string `json:"exercise_minutes,omitempty"`
	Notes            string `json:"notes,omitempty"`

	CrisisPlanActivated bool   `json:"crisis_plan_activated"`
	TherapistNotes      string `json:"therapist_notes,omitempty"`
}
