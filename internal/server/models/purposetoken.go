package models

import "time"

// TokenPurpose scopes a purpose token to a single task. A token issued for
// one purpose can never satisfy a check for another.
type TokenPurpose string

const (
	PurposeEmailVerification TokenPurpose = "email_verification"
	PurposePasswordReset     TokenPurpose = "password_reset"
)

// PurposeToken is a single-use, expiring credential. Its token string is a
// random opaque identifier, not a signed claim; validity is decided entirely
// by the store row and the expiry timestamp.
type PurposeToken struct {
	ID        string
	UserID    string
	Token     string
	Purpose   TokenPurpose
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed relative to now.
func (t *PurposeToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
