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

func newTestTherapist() *models.Therapist {
	return &models.Therapist{
		ID:        uuid.New(),
		Email:     "t@dbtsantiago.com",
		FirstName: "Carla",
		LastName:  "Rojas",
		Active:    true,
	}
}

func TestCreateUserByAdmin(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	mailer := &mailRecorder{}
	svc := NewUserService(users, newMemTherapistRepo(), mailer)

	adminID := uuid.New()
	user, err := svc.CreateUser(ctx, CreateUserInput{
		FirstName:      "Bruno",
		LastName:       "Pérez",
		Email:          "Bruno@x.com",
		Password:       "initial-pass-1",
		DateOfBirth:    time.Date(1985, 7, 2, 0, 0, 0, 0, time.UTC),
		CreatedByAdmin: adminID,
	})
	require.NoError(t, err)
	assert.Equal(t, "bruno@x.com", user.Email)
	assert.Equal(t, models.UserActive, user.Status)
	assert.True(t, user.RequiresPasswordChange)
	require.NotNil(t, user.CreatedByAdminID)
	assert.Equal(t, adminID, *user.CreatedByAdminID)
	assert.Equal(t, []string{"bruno@x.com"}, mailer.welcomes)
}

func TestCreateUserUnknownTherapist(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newMemUserRepo(), newMemTherapistRepo(), &mailRecorder{})

	missing := uuid.New()
	_, err := svc.CreateUser(ctx, CreateUserInput{
		FirstName:      "Bruno",
		LastName:       "Pérez",
		Email:          "bruno@x.com",
		Password:       "initial-pass-1",
		TherapistID:    &missing,
		CreatedByAdmin: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrTherapistNotFound)
}

func TestCreateUserMailFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	svc := NewUserService(users, newMemTherapistRepo(), &mailRecorder{err: assert.AnError})

	user, err := svc.CreateUser(ctx, CreateUserInput{
		FirstName:      "Bruno",
		LastName:       "Pérez",
		Email:          "bruno@x.com",
		Password:       "initial-pass-1",
		CreatedByAdmin: uuid.New(),
	})
	require.NoError(t, err)
	got, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, got, "the account exists even when the welcome mail bounced")
}

func TestAssignTherapist(t *testing.T) {
	ctx := context.Background()
	therapist := newTestTherapist()
	user := &models.User{ID: uuid.New(), Email: "bruno@x.com", Status: models.UserActive}
	users := newMemUserRepo(user)
	mailer := &mailRecorder{}
	svc := NewUserService(users, newMemTherapistRepo(therapist), mailer)

	updated, err := svc.AssignTherapist(ctx, user.ID, therapist.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.TherapistID)
	assert.Equal(t, therapist.ID, *updated.TherapistID)
	assert.Len(t, mailer.assignments, 1, "exactly one notification per assignment")

	// Re-assigning the same therapist is allowed and notifies again.
	_, err = svc.AssignTherapist(ctx, user.ID, therapist.ID)
	require.NoError(t, err)
	assert.Len(t, mailer.assignments, 2)
}

func TestAssignTherapistNotFound(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: uuid.New(), Email: "bruno@x.com", Status: models.UserActive}
	svc := NewUserService(newMemUserRepo(user), newMemTherapistRepo(), &mailRecorder{})

	_, err := svc.AssignTherapist(ctx, user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTherapistNotFound)
	assert.Nil(t, user.TherapistID, "a failed assignment writes nothing")

	_, err = svc.AssignTherapist(ctx, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAssignTherapistMailFailureKeepsAssignment(t *testing.T) {
	ctx := context.Background()
	therapist := newTestTherapist()
	user := &models.User{ID: uuid.New(), Email: "bruno@x.com", Status: models.UserActive}
	svc := NewUserService(newMemUserRepo(user), newMemTherapistRepo(therapist), &mailRecorder{err: assert.AnError})

	updated, err := svc.AssignTherapist(ctx, user.ID, therapist.ID)
	require.NoError(t, err, "a bounced notification never rolls the assignment back")
	require.NotNil(t, updated.TherapistID)
	assert.Equal(t, therapist.ID, *updated.TherapistID)
}

func TestRemoveTherapist(t *testing.T) {
	ctx := context.Background()
	therapist := newTestTherapist()
	user := &models.User{ID: uuid.New(), Email: "bruno@x.com", Status: models.UserActive, TherapistID: &therapist.ID}
	svc := NewUserService(newMemUserRepo(user), newMemTherapistRepo(therapist), &mailRecorder{})

	updated, err := svc.RemoveTherapist(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.TherapistID)

	// Removing again is a no-op, not an error.
	updated, err = svc.RemoveTherapist(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.TherapistID)

	_, err = svc.RemoveTherapist(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserCounts(t *testing.T) {
	ctx := context.Background()
	active := &models.User{ID: uuid.New(), Email: "a@x.com", Status: models.UserActive}
	inactive := &models.User{ID: uuid.New(), Email: "b@x.com", Status: models.UserInactive}
	svc := NewUserService(newMemUserRepo(active, inactive), newMemTherapistRepo(), &mailRecorder{})

	total, err := svc.UserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	activeCount, err := svc.ActiveUserCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, activeCount)
}
