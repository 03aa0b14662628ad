package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtsantiago/care-backend/internal/models"
)

func TestCreateSessionDefaultsFrequency(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionRepo(), &memRecordRepo{})

	session, err := svc.Create(ctx, CreateSessionInput{
		UserID:    uuid.New(),
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyDaily, session.ResponseFrequency)
	assert.Equal(t, models.SessionActive, session.Status)
	assert.Nil(t, session.EndDate)
}

func TestSessionOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionRepo(), &memRecordRepo{})

	owner := uuid.New()
	stranger := uuid.New()
	session, err := svc.Create(ctx, CreateSessionInput{UserID: owner, StartDate: time.Now()})
	require.NoError(t, err)

	got, err := svc.FindOwned(ctx, session.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	_, err = svc.FindOwned(ctx, session.ID, stranger)
	assert.ErrorIs(t, err, ErrSessionNotFound,
		"someone else's session looks exactly like a missing one")

	_, err = svc.Complete(ctx, session.ID, stranger)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.AddDailyRecord(ctx, session.ID, stranger, CreateDailyRecordInput{Date: time.Now()})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.ListDailyRecords(ctx, session.ID, stranger)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteAndCancelSession(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionRepo(), &memRecordRepo{})
	owner := uuid.New()

	session, err := svc.Create(ctx, CreateSessionInput{UserID: owner, StartDate: time.Now()})
	require.NoError(t, err)

	completed, err := svc.Complete(ctx, session.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, completed.Status)
	require.NotNil(t, completed.EndDate)

	other, err := svc.Create(ctx, CreateSessionInput{UserID: owner, StartDate: time.Now()})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, other.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, models.SessionCancelled, cancelled.Status)
	require.NotNil(t, cancelled.EndDate)
}

func TestDailyRecords(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(newMemSessionRepo(), &memRecordRepo{})
	owner := uuid.New()

	session, err := svc.Create(ctx, CreateSessionInput{UserID: owner, StartDate: time.Now()})
	require.NoError(t, err)

	mood := 7
	record, err := svc.AddDailyRecord(ctx, session.ID, owner, CreateDailyRecordInput{
		Date:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Mood:     &mood,
		Emotions: "calm",
	})
	require.NoError(t, err)
	assert.Equal(t, session.ID, record.SessionID)
	require.NotNil(t, record.Mood)
	assert.Equal(t, 7, *record.Mood)

	records, err := svc.ListDailyRecords(ctx, session.ID, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}
