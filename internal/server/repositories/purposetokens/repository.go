// Package purposetokens persists single-use, expiring tokens scoped to one
// task (email verification or password reset). Token strings are random
// opaque identifiers; validity is store existence plus expiry, nothing
// cryptographic.
package purposetokens

import (
	"context"
	"time"

	"github.com/surveyforge/authcore/internal/server/models"
)

type Repository interface {
	// Create generates a new opaque token for the user with
	// expires_at = now + ttl and inserts it. The token string and row id
	// are generated here, not by the storage engine.
	Create(ctx context.Context, userID string, purpose models.TokenPurpose, ttl time.Duration) (*models.PurposeToken, error)

	// Find returns the row matching both token string and purpose, or
	// common.ErrorNotFound. Filtering by purpose guarantees an
	// email-verification token can never satisfy a password-reset check.
	Find(ctx context.Context, token string, purpose models.TokenPurpose) (*models.PurposeToken, error)

	// Delete removes the token row. Idempotent: deleting an absent token
	// is not an error.
	Delete(ctx context.Context, token string) error
}
