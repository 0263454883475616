// Package mail delivers the verification and password-reset emails issued
// by the auth flows. Delivery failures are logged by the caller, never
// surfaced to the end user.
package mail

import (
	"context"

	"github.com/surveyforge/authcore/internal/server/models"
)

// Mailer sends purpose-token emails with a constructed link.
type Mailer interface {
	// SendEmailConfirmation mails the user a link embedding the
	// email-verification token.
	SendEmailConfirmation(ctx context.Context, user *models.User, token string) error

	// SendPasswordReset mails the user a link embedding the password-reset
	// token.
	SendPasswordReset(ctx context.Context, user *models.User, token string) error
}
