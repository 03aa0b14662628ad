package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/dbtsantiago/care-backend/internal/config"
	"github.com/dbtsantiago/care-backend/internal/models"
)

// SMTPMailer delivers notification emails over SMTP.
type SMTPMailer struct {
	client       *mail.Client
	from         string
	frontendURL  string
	supportEmail string
}

func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPMailer{
		client:       client,
		from:         cfg.MailFrom,
		frontendURL:  cfg.FrontendURL,
		supportEmail: cfg.SupportEmail,
	}, nil
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return m.client.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) SendWelcome(ctx context.Context, user *models.User, password string) error {
	body := fmt.Sprintf(
		"Hola %s %s,\n\n"+
			"Tu cuenta en DBT Santiago ha sido creada.\n\n"+
			"Email: %s\nContraseña temporal: %s\n\n"+
			"Ingresa en %s/login y cambia tu contraseña.\n\n"+
			"Soporte: %s\n",
		user.FirstName, user.LastName, user.Email, password, m.frontendURL, m.supportEmail)
	return m.send(ctx, user.Email, "Bienvenido a DBT Santiago - Credenciales de Acceso", body)
}

func (m *SMTPMailer) SendAssignment(ctx context.Context, user *models.User, therapistName, therapistEmail string) error {
	body := fmt.Sprintf(
		"Hola %s %s,\n\n"+
			"Se te ha asignado un terapeuta.\n\n"+
			"Terapeuta: %s\nEmail: %s\n\n"+
			"Soporte: %s\n",
		user.FirstName, user.LastName, therapistName, therapistEmail, m.supportEmail)
	return m.send(ctx, user.Email, "Asignación de Terapeuta - DBT Santiago", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, user *models.User, token string) error {
	body := fmt.Sprintf(
		"Hola %s %s,\n\n"+
			"Para restablecer tu contraseña visita:\n%s/reset-password?token=%s\n\n"+
			"El enlace expira en una hora. Si no solicitaste este cambio, ignora este correo.\n\n"+
			"Soporte: %s\n",
		user.FirstName, user.LastName, m.frontendURL, token, m.supportEmail)
	return m.send(ctx, user.Email, "Restablecer Contraseña - DBT Santiago", body)
}
