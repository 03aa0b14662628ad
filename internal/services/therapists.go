package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// TherapistRepository is the persistence boundary for therapists.
// Find methods return (nil, nil) when no row matches.
type TherapistRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Therapist, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Therapist, error)
	Create(ctx context.Context, t *models.Therapist) error
	Update(ctx context.Context, t *models.Therapist) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*models.Therapist, error)
}

// CreateTherapistInput is an admin-created therapist record.
type CreateTherapistInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

// UpdateTherapistInput carries optional field updates; nil leaves a field
// unchanged.
type UpdateTherapistInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
}

type TherapistService struct {
	therapists TherapistRepository
	users      UserRepository
	now        func() time.Time
}

func NewTherapistService(therapists TherapistRepository, users UserRepository) *TherapistService {
	return &TherapistService{therapists: therapists, users: users, now: time.Now}
}

func (s *TherapistService) Create(ctx context.Context, input CreateTherapistInput) (*models.Therapist, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.therapists.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("therapist lookup: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	now := s.now()
	therapist := &models.Therapist{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Email:     email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Active:    true,
	}
	if err := s.therapists.Create(ctx, therapist); err != nil {
		return nil, fmt.Errorf("create therapist: %w", err)
	}
	return therapist, nil
}

func (s *TherapistService) FindAll(ctx context.Context, activeOnly bool) ([]*models.Therapist, error) {
	return s.therapists.List(ctx, activeOnly)
}

func (s *TherapistService) FindOne(ctx context.Context, id uuid.UUID) (*models.Therapist, error) {
	therapist, err := s.therapists.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("therapist lookup: %w", err)
	}
	if therapist == nil {
		return nil, ErrTherapistNotFound
	}
	return therapist, nil
}

func (s *TherapistService) FindByEmail(ctx context.Context, email string) (*models.Therapist, error) {
	return s.therapists.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *TherapistService) Update(ctx context.Context, id uuid.UUID, input UpdateTherapistInput) (*models.Therapist, error) {
	therapist, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != therapist.Email {
			existing, err := s.therapists.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("therapist lookup: %w", err)
			}
			if existing != nil {
				return nil, ErrEmailTaken
			}
		}
		therapist.Email = email
	}
	if input.FirstName != nil {
		therapist.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		therapist.LastName = *input.LastName
	}
	if input.Phone != nil {
		therapist.Phone = *input.Phone
	}
	therapist.UpdatedAt = s.now()

	if err := s.therapists.Update(ctx, therapist); err != nil {
		return nil, fmt.Errorf("update therapist: %w", err)
	}
	return therapist, nil
}

// Remove hard-deletes a therapist. It is refused while any assigned patient
// still has status=active; inactive or suspended references do not block.
func (s *TherapistService) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}

	activePatients, err := s.users.CountByTherapistAndStatus(ctx, id, models.UserActive)
	if err != nil {
		return fmt.Errorf("count active patients: %w", err)
	}
	if activePatients > 0 {
		return ErrHasActivePatients
	}

	if err := s.therapists.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete therapist: %w", err)
	}
	return nil
}

// Deactivate flips the active flag; assigned patients are untouched.
func (s *TherapistService) Deactivate(ctx context.Context, id uuid.UUID) (*models.Therapist, error) {
	return s.setActive(ctx, id, false)
}

func (s *TherapistService) Activate(ctx context.Context, id uuid.UUID) (*models.Therapist, error) {
	return s.setActive(ctx, id, true)
}

func (s *TherapistService) setActive(ctx context.Context, id uuid.UUID, active bool) (*models.Therapist, error) {
	therapist, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.therapists.SetActive(ctx, id, active); err != nil {
		return nil, fmt.Errorf("set therapist active: %w", err)
	}
	therapist.Active = active
	therapist.UpdatedAt = s.now()
	return therapist, nil
}

// PatientCount is an aggregate over status=active patients. Zero is a valid
// answer; an unknown therapist id is ErrTherapistNotFound.
func (s *TherapistService) PatientCount(ctx context.Context, id uuid.UUID) (int, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return 0, err
	}
	return s.users.CountByTherapistAndStatus(ctx, id, models.UserActive)
}
