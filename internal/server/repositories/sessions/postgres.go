package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

const tokenIndex = "sessions_token_idx"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	query := `
		INSERT INTO sessions (id, token, user_id, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, token, user_id, expires_at, created_at, updated_at`

	row := r.db.QueryRowContext(ctx, query, s.ID, s.Token, s.UserID, s.ExpiresAt, s.CreatedAt, s.UpdatedAt)

	created := &models.Session{}
	if err := scanSession(row, created); err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok && constraint == tokenIndex {
			return nil, fmt.Errorf("db error: %w: %w", common.ErrTokenTaken, err)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at, updated_at
		FROM sessions
		WHERE token = $1
		LIMIT 1`

	s := &models.Session{}
	if err := scanSession(r.db.QueryRowContext(ctx, query, token), s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func scanSession(row *sql.Row, s *models.Session) error {
	return row.Scan(&s.ID, &s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
}
