package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"

	"github.com/surveyforge/authcore/internal/server/models"
)

// SMTPMailer sends mail over a plain SMTP endpoint with optional AUTH.
// BaseURL is the public address of the application, used to build the
// links the recipient clicks.
type SMTPMailer struct {
	addr     string // host:port
	host     string
	username string
	password string
	from     string
	baseURL  string
}

func NewSMTPMailer(host, port, username, password, from, baseURL string) *SMTPMailer {
	return &SMTPMailer{
		addr:     host + ":" + port,
		host:     host,
		username: username,
		password: password,
		from:     from,
		baseURL:  baseURL,
	}
}

// SendEmailConfirmation mails a confirmation link containing the token.
func (m *SMTPMailer) SendEmailConfirmation(ctx context.Context, user *models.User, token string) error {
	confirmURL := fmt.Sprintf("%s/auth/confirm?token=%s", m.baseURL, url.QueryEscape(token))
	subject := "Confirm your email"
	body := fmt.Sprintf("Hi %s,\r\n\r\nClick the link below to confirm your email:\r\n%s\r\n", user.Name, confirmURL)
	return m.send(ctx, user.Email, subject, body)
}

// SendPasswordReset mails a password-reset link containing the token.
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, user *models.User, token string) error {
	resetURL := fmt.Sprintf("%s/auth/reset-password?token=%s", m.baseURL, url.QueryEscape(token))
	subject := "Password reset request"
	body := fmt.Sprintf("Hi %s,\r\n\r\nClick the link below to reset your password:\r\n%s\r\n", user.Name, resetURL)
	return m.send(ctx, user.Email, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("error sending mail: %w", err)
	}
	return nil
}
