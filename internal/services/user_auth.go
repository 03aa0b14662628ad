package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/auth"
	"github.com/dbtsantiago/care-backend/internal/models"
	"github.com/dbtsantiago/care-backend/pkg/utils"
)

// UserRepository is the persistence boundary the user auth domain consumes.
// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	SetTherapist(ctx context.Context, userID uuid.UUID, therapistID *uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateLastAccess(ctx context.Context, id uuid.UUID, t time.Time) error
	List(ctx context.Context) ([]*models.User, error)
	ListActive(ctx context.Context) ([]*models.User, error)
	ListByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.UserStatus) (int, error)
	CountByTherapistAndStatus(ctx context.Context, therapistID uuid.UUID, status models.UserStatus) (int, error)
}

// ResetTokenRepository stores one-time password reset tokens.
type ResetTokenRepository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	FindValid(ctx context.Context, token string, now time.Time) (uuid.UUID, bool, error)
	MarkUsed(ctx context.Context, token string) error
}

// RegisterInput is a self-service patient registration.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	DateOfBirth     time.Time
	ProfilePhotoURL string
}

// UserAuthResult is what a successful registration or login returns.
type UserAuthResult struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   string       `json:"expires_in"`
	User        *models.User `json:"user"`
}

const resetTokenLifetime = time.Hour

type UserAuthService struct {
	users       UserRepository
	resetTokens ResetTokenRepository
	tokens      *auth.TokenService
	mailer      Mailer
	now         func() time.Time
}

func NewUserAuthService(users UserRepository, resetTokens ResetTokenRepository, tokens *auth.TokenService, mailer Mailer) *UserAuthService {
	return &UserAuthService{
		users:       users,
		resetTokens: resetTokens,
		tokens:      tokens,
		mailer:      mailer,
		now:         time.Now,
	}
}

// Register creates a patient account with status=active and issues a
// user-kind token.
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*UserAuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: passwordHash,
		DateOfBirth:  input.DateOfBirth,

		ProfilePhotoURL: input.ProfilePhotoURL,
		Status:          models.UserActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issueResult(user)
}

// Login authenticates a patient. The response never distinguishes unknown
// email from wrong password.
func (s *UserAuthService) Login(ctx context.Context, email, password string) (*UserAuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.Status != models.UserActive {
		return nil, ErrAccountNotActive
	}

	if !utils.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Best-effort: a failed timestamp write must not block the login.
	if err := s.users.UpdateLastAccess(ctx, user.ID, s.now()); err != nil {
		log.Printf("Error updating user last access: %v", err)
	}

	return s.issueResult(user)
}

// ValidateUser resolves the principal behind a guarded request, re-reading
// the status on every call so a suspended patient is rejected immediately.
func (s *UserAuthService) ValidateUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return nil, ErrPrincipalNotFound
	}
	return user, nil
}

// RequestPasswordReset issues a one-time token and mails it. Unknown emails
// succeed silently so the endpoint cannot be used for enumeration.
func (s *UserAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.resetTokens.Create(ctx, user.ID, token, s.now().Add(resetTokenLifetime)); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	dispatchMail(ctx, "password reset", func(mailCtx context.Context) error {
		return s.mailer.SendPasswordReset(mailCtx, user, token)
	})
	return nil
}

// ResetPassword burns a valid token and rewrites the credential hash.
func (s *UserAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, ok, err := s.resetTokens.FindValid(ctx, token, s.now())
	if err != nil {
		return fmt.Errorf("reset token lookup: %w", err)
	}
	if !ok {
		return ErrInvalidResetToken
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.resetTokens.MarkUsed(ctx, token); err != nil {
		log.Printf("Error marking reset token used: %v", err)
	}
	return nil
}

func (s *UserAuthService) issueResult(user *models.User) (*UserAuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, auth.KindUser, "")
	if err != nil {
		return nil, fmt.Errorf("issue user token: %w", err)
	}
	return &UserAuthResult{
		AccessToken: token,
		ExpiresIn:   s.tokens.ExpiresIn(),
		User:        user,
	}, nil
}
