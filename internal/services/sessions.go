package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// SessionRepository is the persistence boundary for care sessions.
type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.SessionStatus, endDate *time.Time) error
}

// DailyRecordRepository is the persistence boundary for daily records.
type DailyRecordRepository interface {
	Create(ctx context.Context, d *models.DailyRecord) error
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*models.DailyRecord, error)
}

// CreateSessionInput starts a care session for a patient.
type CreateSessionInput struct {
	UserID            uuid.UUID
	StartDate         time.Time
	ResponseFrequency models.ResponseFrequency
}

// CreateDailyRecordInput is one dated clinical snapshot.
type CreateDailyRecordInput struct {
	Date                time.Time
	Mood                *int
	Anxiety             *int
	Stress              *int
	Energy              *int
	Emotions            string
	Triggers            string
	CopingStrategies    string
	MedicationTaken     string
	SleepHours          string
	ExerciseMinutes     string
	Notes               string
	CrisisPlanActivated bool
}

type SessionService struct {
	sessions SessionRepository
	records  DailyRecordRepository
	now      func() time.Time
}

func NewSessionService(sessions SessionRepository, records DailyRecordRepository) *SessionService {
	return &SessionService{sessions: sessions, records: records, now: time.Now}
}

func (s *SessionService) Create(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	frequency := input.ResponseFrequency
	if frequency == "" {
		frequency = models.FrequencyDaily
	}
	session := &models.Session{
		ID:                uuid.New(),
		CreatedAt:         s.now(),
		UserID:            input.UserID,
		StartDate:         input.StartDate,
		ResponseFrequency: frequency,
		Status:            models.SessionActive,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// FindOwned resolves a session and enforces that it belongs to userID.
// A session owned by someone else is reported as not found.
func (s *SessionService) FindOwned(ctx context.Context, id, userID uuid.UUID) (*models.Session, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if session == nil || session.UserID != userID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Session, error) {
	return s.sessions.ListByUser(ctx, userID)
}

func (s *SessionService) Complete(ctx context.Context, id, userID uuid.UUID) (*models.Session, error) {
	return s.finish(ctx, id, userID, models.SessionCompleted)
}

func (s *SessionService) Cancel(ctx context.Context, id, userID uuid.UUID) (*models.Session, error) {
	return s.finish(ctx, id, userID, models.SessionCancelled)
}

func (s *SessionService) finish(ctx context.Context, id, userID uuid.UUID, status models.SessionStatus) (*models.Session, error) {
	session, err := s.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	endDate := s.now()
	if err := s.sessions.UpdateStatus(ctx, id, status, &endDate); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}
	session.Status = status
	session.EndDate = &endDate
	return session, nil
}

func (s *SessionService) AddDailyRecord(ctx context.Context, sessionID, userID uuid.UUID, input CreateDailyRecordInput) (*models.DailyRecord, error) {
	if _, err := s.FindOwned(ctx, sessionID, userID); err != nil {
		return nil, err
	}

	record := &models.DailyRecord{
		ID:        uuid.New(),
		CreatedAt: s.now(),
		SessionID: sessionID,
		Date:      input.Date,

		Mood:    input.Mood,
		Anxiety: input.Anxiety,
		Stress:  input.Stress,
		Energy:  input.Energy,

		Emotions:         input.Emotions,
		Triggers:         input.Triggers,
		CopingStrategies: input.CopingStrategies,
		MedicationTaken:  input.MedicationTaken,
		SleepHours:       input.SleepHours,
		ExerciseMinutes:  input.ExerciseMinutes,
		Notes:            input.Notes,

		CrisisPlanActivated: input.CrisisPlanActivated,
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create daily record: %w", err)
	}
	return record, nil
}

func (s *SessionService) ListDailyRecords(ctx context.Context, sessionID, userID uuid.UUID) ([]*models.DailyRecord, error) {
	if _, err := s.FindOwned(ctx, sessionID, userID); err != nil {
		return nil, err
	}
	return s.records.ListBySession(ctx, sessionID)
}
