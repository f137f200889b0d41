package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/status"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Migrator(db *sql.DB) (Migrator, error)
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Status(db dbx.DBTX) status.Repository
}

// Migrator inspects and applies the embedded schema migrations.
// *goose.Provider satisfies it.
type Migrator interface {
	Status(ctx context.Context) ([]*goose.MigrationStatus, error)
	Up(ctx context.Context) ([]*goose.MigrationResult, error)
}
