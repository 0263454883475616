// Package users implements the user directory: lookup, creation with a
// unique-email constraint, and the two mutations the auth flows need
// (verification flag and password hash).
package users

import (
	"context"

	"github.com/surveyforge/authcore/internal/server/models"
)

type Repository interface {
	// Create inserts the user. A duplicate email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// SetEmailVerified updates the verification flag.
	SetEmailVerified(ctx context.Context, userID string, verified bool) error

	// SetPasswordHash replaces the stored password hash.
	SetPasswordHash(ctx context.Context, userID string, hash string) error
}
