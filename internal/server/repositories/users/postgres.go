package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

// Unique indexes created by the users migration.
const (
	usernameIndex = "users_username_lower_idx"
	emailIndex    = "users_email_lower_idx"
)

const userColumns = `id, username, email, password, created_at, updated_at`

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts user with its email lowercased and returns the stored row.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, email, password)
		VALUES ($1, $2, LOWER($3), $4)
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, user.ID, user.Username, user.Email, user.Password)
	created, err := scanUser(row)
	if err != nil {
		return nil, wrapWriteError(err)
	}
	return created, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1`

	return r.findOne(ctx, query, id)
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(username) = LOWER($1)
		LIMIT 1`

	return r.findOne(ctx, query, username)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(email) = LOWER($1)
		LIMIT 1`

	return r.findOne(ctx, query, email)
}

func (r *PostgresRepository) FindByUsernameForUpdate(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE LOWER(username) = LOWER($1)
		LIMIT 1
		FOR UPDATE`

	return r.findOne(ctx, query, username)
}

// Update overwrites username, email and password of the row identified by
// user.ID and stamps updated_at with the current UTC time.
func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		UPDATE users
		SET username = $2,
		    email = LOWER($3),
		    password = $4,
		    updated_at = timezone('UTC', now())
		WHERE id = $1
		RETURNING ` + userColumns

	row := r.db.QueryRowContext(ctx, query, user.ID, user.Username, user.Email, user.Password)
	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, wrapWriteError(err)
	}
	return updated, nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func wrapWriteError(err error) error {
	if constraint, ok := dbx.UniqueViolation(err); ok {
		switch constraint {
		case usernameIndex:
			return fmt.Errorf("db error: %w: %w", common.ErrUsernameTaken, err)
		case emailIndex:
			return fmt.Errorf("db error: %w: %w", common.ErrEmailTaken, err)
		}
	}
	return fmt.Errorf("db error: %w", err)
}
