package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
	"github.com/dbtsantiago/care-backend/pkg/utils"
)

// CreateUserInput is an admin-created patient account.
type CreateUserInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	DateOfBirth     time.Time
	ProfilePhotoURL string
	TherapistID     *uuid.UUID
	AdminNotes      string
	CreatedByAdmin  uuid.UUID
}

// UserService covers admin-side patient management and the
// therapist↔patient care relationship.
type UserService struct {
	users      UserRepository
	therapists TherapistRepository
	mailer     Mailer
	now        func() time.Time
}

func NewUserService(users UserRepository, therapists TherapistRepository, mailer Mailer) *UserService {
	return &UserService{users: users, therapists: therapists, mailer: mailer, now: time.Now}
}

// CreateUser creates a patient on behalf of an admin and mails the initial
// credentials. The plaintext password only exists within this request.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if input.TherapistID != nil {
		therapist, err := s.therapists.FindByID(ctx, *input.TherapistID)
		if err != nil {
			return nil, fmt.Errorf("therapist lookup: %w", err)
		}
		if therapist == nil {
			return nil, ErrTherapistNotFound
		}
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	createdBy := input.CreatedByAdmin
	user := &models.User{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		PasswordHash: passwordHash,
		DateOfBirth:  input.DateOfBirth,

		ProfilePhotoURL:        input.ProfilePhotoURL,
		Status:                 models.UserActive,
		TherapistID:            input.TherapistID,
		RequiresPasswordChange: true,
		CreatedByAdminID:       &createdBy,
		AdminNotes:             input.AdminNotes,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	dispatchMail(ctx, "welcome", func(mailCtx context.Context) error {
		return s.mailer.SendWelcome(mailCtx, user, input.Password)
	})
	return user, nil
}

// AssignTherapist validates the therapist exists, writes the foreign key
// and fires at most one assignment notification. A failed notification
// never rolls the assignment back.
func (s *UserService) AssignTherapist(ctx context.Context, userID, therapistID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	therapist, err := s.therapists.FindByID(ctx, therapistID)
	if err != nil {
		return nil, fmt.Errorf("therapist lookup: %w", err)
	}
	if therapist == nil {
		return nil, ErrTherapistNotFound
	}

	if err := s.users.SetTherapist(ctx, userID, &therapistID); err != nil {
		return nil, fmt.Errorf("assign therapist: %w", err)
	}
	user.TherapistID = &therapistID

	dispatchMail(ctx, "therapist assignment", func(mailCtx context.Context) error {
		return s.mailer.SendAssignment(mailCtx, user, therapist.FullName(), therapist.Email)
	})
	return user, nil
}

// RemoveTherapist clears the foreign key unconditionally.
func (s *UserService) RemoveTherapist(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.users.SetTherapist(ctx, userID, nil); err != nil {
		return nil, fmt.Errorf("remove therapist: %w", err)
	}
	user.TherapistID = nil
	return user, nil
}

func (s *UserService) FindOne(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *UserService) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) FindActive(ctx context.Context) ([]*models.User, error) {
	return s.users.ListActive(ctx)
}

func (s *UserService) FindByTherapist(ctx context.Context, therapistID uuid.UUID) ([]*models.User, error) {
	return s.users.ListByTherapist(ctx, therapistID)
}

func (s *UserService) UserCount(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}

func (s *UserService) ActiveUserCount(ctx context.Context) (int, error) {
	return s.users.CountByStatus(ctx, models.UserActive)
}
