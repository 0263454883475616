package purposetokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/surveyforge/authcore/internal/common"
	"github.com/surveyforge/authcore/internal/dbx"
	"github.com/surveyforge/authcore/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create generates and inserts a new purpose token with
// expires_at = now + ttl.
func (r *PostgresRepository) Create(ctx context.Context, userID string, purpose models.TokenPurpose, ttl time.Duration) (*models.PurposeToken, error) {
	row := &models.PurposeToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     uuid.NewString(),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}

	query := `
		INSERT INTO tokens (id, user_id, token, purpose, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query, row.ID, row.UserID, row.Token, string(row.Purpose), row.ExpiresAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

// Find returns the purpose token matching both token string and purpose.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, token string, purpose models.TokenPurpose) (*models.PurposeToken, error) {
	query := `
		SELECT id, user_id, token, purpose, expires_at
		FROM tokens
		WHERE token = $1 AND purpose = $2
	`
	row := &models.PurposeToken{}
	err := r.db.QueryRowContext(ctx, query, token, string(purpose)).
		Scan(&row.ID, &row.UserID, &row.Token, &row.Purpose, &row.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

// Delete removes the token row by its token string.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
