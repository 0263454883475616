package repomanager

import (
	"context"
	"database/sql"

	"github.com/surveyforge/authcore/internal/dbx"
	"github.com/surveyforge/authcore/internal/server/repositories/purposetokens"
	"github.com/surveyforge/authcore/internal/server/repositories/refreshtokens"
	"github.com/surveyforge/authcore/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a specific DBTX, so the same
// repository code runs both on the pool and inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	PurposeTokens(db dbx.DBTX) purposetokens.Repository
}
