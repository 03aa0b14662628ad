package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dbtsantiago/care-backend/internal/auth"
	"github.com/dbtsantiago/care-backend/internal/models"
	"github.com/dbtsantiago/care-backend/pkg/utils"
)

// AdminRepository is the persistence boundary the admin auth domain consumes.
// Find methods return (nil, nil) when no row matches.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	UpdateLastAccess(ctx context.Context, id uuid.UUID, t time.Time) error
}

// AdminAuthResult is what a successful admin login returns.
type AdminAuthResult struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   string        `json:"expires_in"`
	Admin       *models.Admin `json:"admin"`
}

type AdminAuthService struct {
	admins AdminRepository
	tokens *auth.TokenService
	now    func() time.Time
}

func NewAdminAuthService(admins AdminRepository, tokens *auth.TokenService) *AdminAuthService {
	return &AdminAuthService{admins: admins, tokens: tokens, now: time.Now}
}

// Login authenticates an admin and issues an admin-kind token.
// The response never distinguishes unknown email from wrong password.
func (s *AdminAuthService) Login(ctx context.Context, email, password, clientIP string) (*AdminAuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}

	if !admin.Active {
		return nil, ErrAccountNotActive
	}

	if !utils.VerifyPassword(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// A non-empty allow-list rejects an undeterminable client IP too.
	if len(admin.AllowedIPs) > 0 && !ipAllowed(clientIP, admin.AllowedIPs) {
		return nil, ErrIPNotAllowed
	}

	// Best-effort: a failed timestamp write must not block the login.
	if err := s.admins.UpdateLastAccess(ctx, admin.ID, s.now()); err != nil {
		log.Printf("Error updating admin last access: %v", err)
	}

	token, err := s.tokens.Issue(admin.ID, admin.Email, auth.KindAdmin, string(admin.Role))
	if err != nil {
		return nil, fmt.Errorf("issue admin token: %w", err)
	}

	return &AdminAuthResult{
		AccessToken: token,
		ExpiresIn:   s.tokens.ExpiresIn(),
		Admin:       admin,
	}, nil
}

// ValidateAdmin resolves the principal behind a guarded request. It always
// re-reads the active flag so a deactivated admin is rejected on the very
// next request even with a still-valid token.
func (s *AdminAuthService) ValidateAdmin(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	admin, err := s.admins.FindActiveByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if admin == nil {
		return nil, ErrPrincipalNotFound
	}
	return admin, nil
}

func ipAllowed(clientIP string, allowed []string) bool {
	clientIP = strings.TrimSpace(clientIP)
	if clientIP == "" {
		return false
	}
	for _, ip := range allowed {
		if strings.TrimSpace(ip) == clientIP {
			return true
		}
	}
	return false
}
