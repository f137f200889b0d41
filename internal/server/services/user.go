// Package services contains server-side business logic: user accounts,
// credential checks, sessions and operational endpoints.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/users"
	"github.com/google/uuid"
)

// UserService creates, reads and updates user accounts. Usernames and
// emails are unique regardless of case; the application check runs first
// and the database unique indexes settle races.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher) *UserService {
	return &UserService{db: db, repomanager: m, hasher: hasher}
}

// Create registers a new user. Both uniqueness checks complete before the
// password is hashed, so a rejected request costs no hashing and writes nothing.
func (s *UserService) Create(ctx context.Context, input models.UserInput) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if err := s.validateUniqueUsername(ctx, repo, input.Username); err != nil {
		return nil, err
	}
	if err := s.validateUniqueEmail(ctx, repo, input.Email); err != nil {
		return nil, err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := repo.Create(ctx, &models.User{
		ID:       uuid.New().String(),
		Username: input.Username,
		Email:    input.Email,
		Password: hash,
	})
	if err != nil {
		return nil, translateWriteError(err, "error creating user")
	}
	return user, nil
}

// ReadOneByID backs the current-user endpoint, whose id comes from a
// session row.
func (s *UserService) ReadOneByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError("Usuário não encontrado", "")
		}
		return nil, fmt.Errorf("error reading user: %w", err)
	}
	return user, nil
}

func (s *UserService) ReadOneByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errUserNotFoundByUsername()
		}
		return nil, fmt.Errorf("error reading user: %w", err)
	}
	return user, nil
}

func (s *UserService) ReadOneByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errUserNotFoundByEmail()
		}
		return nil, fmt.Errorf("error reading user: %w", err)
	}
	return user, nil
}

// Update applies patch to the user currently named username and returns the
// stored result. Every present username or email is checked for uniqueness
// against all users, the one being updated included.
//
// The row is read FOR UPDATE inside a transaction so that two concurrent
// patches of different fields do not overwrite each other.
func (s *UserService) Update(ctx context.Context, username string, patch models.UserPatch) (*models.User, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		repo := s.repomanager.Users(tx)

		current, err := repo.FindByUsernameForUpdate(ctx, username)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, errUserNotFoundByUsername()
			}
			return nil, fmt.Errorf("error reading user: %w", err)
		}

		if patch.Username != nil {
			if err := s.validateUniqueUsername(ctx, repo, *patch.Username); err != nil {
				return nil, err
			}
		}
		if patch.Email != nil {
			if err := s.validateUniqueEmail(ctx, repo, *patch.Email); err != nil {
				return nil, err
			}
		}
		if patch.Password != nil {
			hash, err := s.hashPassword(*patch.Password)
			if err != nil {
				return nil, err
			}
			patch.Password = &hash
		}

		merged := patch.Apply(*current)
		updated, err := repo.Update(ctx, &merged)
		if err != nil {
			return nil, translateWriteError(err, "error updating user")
		}
		return updated, nil
	})
}

func (s *UserService) validateUniqueUsername(ctx context.Context, repo users.Repository, username string) error {
	_, err := repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return errUsernameInUse()
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return fmt.Errorf("error validating username: %w", err)
	}
}

func (s *UserService) validateUniqueEmail(ctx context.Context, repo users.Repository, email string) error {
	_, err := repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return errEmailInUse()
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return fmt.Errorf("error validating email: %w", err)
	}
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return "", errPasswordTooLong().WithCause(err)
		}
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}

// translateWriteError turns a unique index violation that slipped past the
// application checks into the same ValidationError those checks raise.
func translateWriteError(err error, msg string) error {
	switch {
	case errors.Is(err, common.ErrUsernameTaken):
		return errUsernameInUse().WithCause(err)
	case errors.Is(err, common.ErrEmailTaken):
		return errEmailInUse().WithCause(err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
