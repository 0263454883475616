// Package refreshtokens persists the store-backed half of refresh tokens.
// A refresh token is honored only while its row exists; deleting the row
// revokes it even if the signed token string is still cryptographically
// valid.
package refreshtokens

import (
	"context"

	"github.com/surveyforge/authcore/internal/server/models"
)

type Repository interface {
	// Create inserts a new refresh token row for the user.
	Create(ctx context.Context, userID, token string) (*models.RefreshToken, error)

	// Find returns the row matching both token string and user, or
	// common.ErrorNotFound.
	Find(ctx context.Context, token, userID string) (*models.RefreshToken, error)

	// Delete removes the row matching token and user. The returned bool is
	// true iff a row was removed; false detects replay of an
	// already-rotated token.
	Delete(ctx context.Context, token, userID string) (bool, error)

	// DeleteAllForUser removes every refresh token of the user
	// (logout-everywhere / account-wide revocation).
	DeleteAllForUser(ctx context.Context, userID string) error
}
