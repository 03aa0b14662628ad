package models

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle state of a care session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// ResponseFrequency is how often the patient is expected to record entries.
type ResponseFrequency string

const (
	FrequencyDaily      ResponseFrequency = "daily"
	FrequencyTwiceDaily ResponseFrequency = "twice_daily"
	FrequencyWeekly     ResponseFrequency = "weekly"
)

type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID    uuid.UUID  `json:"user_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	ResponseFrequency     ResponseFrequency `json:"response_frequency"`
	PhoneConsultationUsed bool              `json:"phone_consultation_used"`
	Status                SessionStatus     `json:"status"`
}
