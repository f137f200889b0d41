package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
)

// StatusService reports the health of the service dependencies.
type StatusService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	dbName      string
	now         func() time.Time
}

func NewStatusService(db *sql.DB, m repomanager.RepositoryManager, dbName string) *StatusService {
	return &StatusService{db: db, repomanager: m, dbName: dbName, now: time.Now}
}

func (s *StatusService) Get(ctx context.Context) (*models.Status, error) {
	database, err := s.repomanager.Status(s.db).Database(ctx, s.dbName)
	if err != nil {
		return nil, fmt.Errorf("error reading database status: %w", err)
	}
	return &models.Status{
		UpdatedAt:    s.now().UTC(),
		Dependencies: models.Dependencies{Database: *database},
	}, nil
}

// Ping checks that the database answers.
func (s *StatusService) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
