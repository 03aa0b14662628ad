package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbtsantiago/care-backend/internal/auth"
	"github.com/dbtsantiago/care-backend/internal/models"
	"github.com/dbtsantiago/care-backend/pkg/utils"
)

func newUserAuthService(t *testing.T) (*UserAuthService, *memUserRepo, *memResetTokenRepo, *mailRecorder) {
	t.Helper()
	users := newMemUserRepo()
	resetTokens := newMemResetTokenRepo()
	mailer := &mailRecorder{}
	svc := NewUserAuthService(users, resetTokens, newTestTokens(t), mailer)
	return svc, users, resetTokens, mailer
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newUserAuthService(t)

	registered, err := svc.Register(ctx, RegisterInput{
		FirstName:   "Alice",
		LastName:    "Muñoz",
		Email:       "A@x.com",
		Password:    "password123",
		DateOfBirth: time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", registered.User.Email, "email is stored lowercased")
	assert.Equal(t, models.UserActive, registered.User.Status)
	assert.NotEqual(t, "password123", registered.User.PasswordHash)

	result, err := svc.Login(ctx, "a@x.com", "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, result)

	result, err = svc.Login(ctx, "a@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.Equal(t, "24h", result.ExpiresIn)

	claims, err := svc.tokens.Verify(result.AccessToken, auth.KindUser)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Empty(t, claims.Role, "user tokens carry no role")
}

func TestRegisterEmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newUserAuthService(t)

	input := RegisterInput{FirstName: "Alice", LastName: "Muñoz", Email: "a@x.com", Password: "password123"}
	_, err := svc.Register(ctx, input)
	require.NoError(t, err)

	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrEmailTaken)

	input.Email = "A@X.COM"
	_, err = svc.Register(ctx, input)
	assert.ErrorIs(t, err, ErrEmailTaken, "email conflict is case-insensitive")
}

func TestLoginNotActive(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserAuthService(t)

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	for _, status := range []models.UserStatus{models.UserInactive, models.UserSuspended} {
		user := &models.User{
			ID:           uuid.New(),
			Email:        string(status) + "@x.com",
			PasswordHash: hash,
			Status:       status,
		}
		users.users[user.ID] = user

		_, err := svc.Login(ctx, user.Email, "password123")
		assert.ErrorIs(t, err, ErrAccountNotActive, "status %s", status)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	svc, users, _, mailer := newUserAuthService(t)

	registered, err := svc.Register(ctx, RegisterInput{
		FirstName: "Alice", LastName: "Muñoz", Email: "a@x.com", Password: "password123",
	})
	require.NoError(t, err)
	oldHash := registered.User.PasswordHash

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	require.Len(t, mailer.resetTokens, 1)
	token := mailer.resetTokens[0]

	require.NoError(t, svc.ResetPassword(ctx, token, "new-password-9"))
	assert.NotEqual(t, oldHash, users.users[registered.User.ID].PasswordHash)

	_, err = svc.Login(ctx, "a@x.com", "new-password-9")
	require.NoError(t, err)
	_, err = svc.Login(ctx, "a@x.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ResetPassword(ctx, token, "another-one")
	assert.ErrorIs(t, err, ErrInvalidResetToken, "reset tokens are single use")
}

func TestPasswordResetExpiredToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _, mailer := newUserAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{
		FirstName: "Alice", LastName: "Muñoz", Email: "a@x.com", Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "a@x.com"))
	require.Len(t, mailer.resetTokens, 1)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	err = svc.ResetPassword(ctx, mailer.resetTokens[0], "new-password-9")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	ctx := context.Background()
	svc, _, resetTokens, mailer := newUserAuthService(t)

	err := svc.RequestPasswordReset(ctx, "nobody@x.com")
	require.NoError(t, err, "unknown emails must not be enumerable")
	assert.Empty(t, mailer.resets)
	assert.Empty(t, resetTokens.tokens)
}

func TestValidateUser(t *testing.T) {
	ctx := context.Background()
	svc, users, _, _ := newUserAuthService(t)

	registered, err := svc.Register(ctx, RegisterInput{
		FirstName: "Alice", LastName: "Muñoz", Email: "a@x.com", Password: "password123",
	})
	require.NoError(t, err)

	got, err := svc.ValidateUser(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, got.ID)

	users.users[registered.User.ID].Status = models.UserSuspended
	_, err = svc.ValidateUser(ctx, registered.User.ID)
	assert.ErrorIs(t, err, ErrPrincipalNotFound)
}
