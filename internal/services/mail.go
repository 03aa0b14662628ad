package services

import (
	"context"
	"log"
	"time"

	"github.com/dbtsantiago/care-backend/internal/models"
)

// Mailer is the notification boundary. Implementations own templating and
// delivery; services treat every send as fire-and-forget.
type Mailer interface {
	// SendWelcome carries the plaintext password of an admin-created
	// account; the plaintext never outlives the creating request.
	SendWelcome(ctx context.Context, user *models.User, password string) error
	SendAssignment(ctx context.Context, user *models.User, therapistName, therapistEmail string) error
	SendPasswordReset(ctx context.Context, user *models.User, token string) error
}

// mailTimeout bounds how long an operation may block on delivery.
const mailTimeout = 5 * time.Second

// dispatchMail runs a send with a bounded timeout, logging and swallowing
// failures. A failed notification never alters the triggering operation.
func dispatchMail(ctx context.Context, what string, send func(context.Context) error) {
	mailCtx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()
	if err := send(mailCtx); err != nil {
		log.Printf("Error sending %s email: %v", what, err)
	}
}
