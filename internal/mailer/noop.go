package mailer

import (
	"context"
	"log"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// NoopMailer stands in when SMTP is not configured. It logs the recipient
// only, never credentials or tokens.
type NoopMailer struct{}

func (NoopMailer) SendWelcome(_ context.Context, user *models.User, _ string) error {
	log.Printf("mail disabled: skipping welcome email to %s", user.Email)
	return nil
}

func (NoopMailer) SendAssignment(_ context.Context, user *models.User, _, _ string) error {
	log.Printf("mail disabled: skipping assignment email to %s", user.Email)
	return nil
}

func (NoopMailer) SendPasswordReset(_ context.Context, user *models.User, _ string) error {
	log.Printf("mail disabled: skipping password reset email to %s", user.Email)
	return nil
}
