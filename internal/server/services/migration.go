package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/pressly/goose/v3"
)

// MigrationService lists and applies schema migrations on demand.
type MigrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewMigrationService(db *sql.DB, m repomanager.RepositoryManager) *MigrationService {
	return &MigrationService{db: db, repomanager: m, now: time.Now}
}

// Pending returns the migrations not yet applied, oldest first. Nothing is
// written to the database.
func (s *MigrationService) Pending(ctx context.Context) ([]models.Migration, error) {
	mg, err := s.repomanager.Migrator(s.db)
	if err != nil {
		return nil, fmt.Errorf("error loading migrations: %w", err)
	}

	statuses, err := mg.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading migration status: %w", err)
	}

	pending := make([]models.Migration, 0, len(statuses))
	for _, st := range statuses {
		if st.State != goose.StatePending {
			continue
		}
		pending = append(pending, models.Migration{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			State:   string(st.State),
		})
	}
	return pending, nil
}

// Up applies every pending migration and returns the ones that ran, stamped
// with the time the run finished.
func (s *MigrationService) Up(ctx context.Context) ([]models.Migration, error) {
	mg, err := s.repomanager.Migrator(s.db)
	if err != nil {
		return nil, fmt.Errorf("error loading migrations: %w", err)
	}

	results, err := mg.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	appliedAt := s.now().UTC()
	applied := make([]models.Migration, 0, len(results))
	for _, r := range results {
		applied = append(applied, models.Migration{
			Version:   r.Source.Version,
			Path:      r.Source.Path,
			State:     string(goose.StateApplied),
			AppliedAt: appliedAt,
		})
	}
	return applied, nil
}
