package mail

import (
	"context"
	"testing"

	"github.com/surveyforge/authcore/internal/server/models"
)

func TestSMTPMailer_CancelledContext(t *testing.T) {
	t.Parallel()

	m := NewSMTPMailer("localhost", "2525", "", "", "noreply@example.com", "https://example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	user := &models.User{Email: "a@x.com", Name: "Alice"}
	if err := m.SendEmailConfirmation(ctx, user, "tok"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
	if err := m.SendPasswordReset(ctx, user, "tok"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
