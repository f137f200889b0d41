package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

const checkCredentialAction = "Verifique este dado está correto e tente novamente"

// AuthService checks an email/password pair.
type AuthService struct {
	users  *UserService
	hasher cryptox.PasswordHasher
}

func NewAuthService(users *UserService, hasher cryptox.PasswordHasher) *AuthService {
	return &AuthService{users: users, hasher: hasher}
}

// GetAuthenticatedUser returns the user owning email when password matches.
// An unknown email and a wrong password produce the same UnauthorizedError;
// the precise reason is only kept as the wrapped cause.
func (s *AuthService) GetAuthenticatedUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, errInvalidCredentials().WithCause(err)
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.ReadOneByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewUnauthorizedError("E-mail incorreto.", checkCredentialAction)
		}
		return nil, err
	}

	if !s.hasher.Compare(password, user.Password) {
		return nil, common.NewUnauthorizedError("Senha incorreta.", checkCredentialAction)
	}
	return user, nil
}
