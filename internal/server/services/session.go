package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// SessionExpiration is the fixed lifetime of a session. The HTTP layer uses
// it for the cookie Max-Age.
const SessionExpiration = 30 * 24 * time.Hour

// sessionTokenBytes yields a 96 character hex token.
const sessionTokenBytes = 48

type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager) *SessionService {
	return &SessionService{db: db, repomanager: m, now: time.Now}
}

// Create issues a new session for userID. Timestamps are computed here, in
// UTC and truncated to the database precision, so that ExpiresAt minus
// CreatedAt is exactly SessionExpiration.
func (s *SessionService) Create(ctx context.Context, userID string) (*models.Session, error) {
	token, err := common.RandomHex(sessionTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	session, err := s.repomanager.Sessions(s.db).Create(ctx, &models.Session{
		ID:        uuid.New().String(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(SessionExpiration),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}
	return session, nil
}

// FindOneValidByToken returns the session for token if it has not expired.
func (s *SessionService) FindOneValidByToken(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, errNoActiveSession()
	}

	session, err := s.repomanager.Sessions(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errNoActiveSession()
		}
		return nil, fmt.Errorf("error reading session: %w", err)
	}
	if session.Expired(s.now()) {
		return nil, errNoActiveSession()
	}
	return session, nil
}
