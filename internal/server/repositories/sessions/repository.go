// Package sessions persists login sessions in PostgreSQL.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

type Repository interface {
	// Create stores session as given. A token clash wraps common.ErrTokenTaken.
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	// FindByToken returns common.ErrorNotFound when no session carries token.
	// Expired sessions are returned; callers decide on validity.
	FindByToken(ctx context.Context, token string) (*models.Session, error)
}
