package status

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Database(ctx context.Context, dbName string) (*models.DatabaseStatus, error) {
	st := &models.DatabaseStatus{}

	if err := r.db.QueryRowContext(ctx, `SHOW server_version`).Scan(&st.Version); err != nil {
		return nil, fmt.Errorf("db error: server_version: %w", err)
	}

	// SHOW returns text; database/sql converts it to int on scan.
	if err := r.db.QueryRowContext(ctx, `SHOW max_connections`).Scan(&st.MaxConnections); err != nil {
		return nil, fmt.Errorf("db error: max_connections: %w", err)
	}

	query := `
		SELECT count(*)::int
		FROM pg_stat_activity
		WHERE datname = $1`
	if err := r.db.QueryRowContext(ctx, query, dbName).Scan(&st.ActiveConnections); err != nil {
		return nil, fmt.Errorf("db error: active connections: %w", err)
	}

	return st, nil
}
