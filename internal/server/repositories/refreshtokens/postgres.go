package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// Create inserts a new refresh token row. The row id is generated here, not
// by the database.
func (r *PostgresRepository) Create(ctx context.Context, userID, token string) (*models.RefreshToken, error) {
	row := &models.RefreshToken{
		ID:     uuid.NewString(),
		UserID: userID,
		Token:  token,
	}

	query := `
		INSERT INTO refresh_tokens (id, user_id, token)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	if err := r.db.QueryRowContext(ctx, query, row.ID, row.UserID, row.Token).Scan(&row.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

// Find returns the refresh token row matching the token string and user.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, token, userID string) (*models.RefreshToken, error) {
	query := `
		SELECT id, user_id, token, created_at
		FROM refresh_tokens
		WHERE token = $1 AND user_id = $2
	`
	row := &models.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, token, userID).Scan(&row.ID, &row.UserID, &row.Token, &row.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

// Delete removes the row matching token and user and reports whether a row
// was actually removed. Affected-row count is what decides the winner when
// two rotations race on the same token.
func (r *PostgresRepository) Delete(ctx context.Context, token, userID string) (bool, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE token = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected > 0, nil
}

// DeleteAllForUser removes every refresh token belonging to the user.
func (r *PostgresRepository) DeleteAllForUser(ctx context.Context, userID string) error {
	query := `
		DELETE FROM refresh_tokens
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
