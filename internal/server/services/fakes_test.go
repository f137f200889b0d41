package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/dbx"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/status"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// fakeUsersRepo keeps users in memory and mimics the case-insensitive
// lookups of the postgres repository.
type fakeUsersRepo struct {
	rows []models.User

	findErr   error
	createErr error
	updateErr error

	creates int
	updates int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.creates++
	row := *u
	row.Email = strings.ToLower(row.Email)
	f.rows = append(f.rows, row)
	return &row, nil
}

func (f *fakeUsersRepo) find(match func(models.User) bool) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, r := range f.rows {
		if match(r) {
			row := r
			return &row, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.ID == id })
}

func (f *fakeUsersRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return f.find(func(u models.User) bool { return strings.EqualFold(u.Username, username) })
}

func (f *fakeUsersRepo) FindByUsernameForUpdate(ctx context.Context, username string) (*models.User, error) {
	return f.FindByUsername(ctx, username)
}

func (f *fakeUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUsersRepo) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.rows {
		if f.rows[i].ID == u.ID {
			f.updates++
			row := *u
			row.Email = strings.ToLower(row.Email)
			f.rows[i] = row
			return &row, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeSessionsRepo struct {
	byToken   map[string]models.Session
	createErr error
	findErr   error
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.byToken == nil {
		f.byToken = map[string]models.Session{}
	}
	f.byToken[s.Token] = *s
	row := *s
	return &row, nil
}

func (f *fakeSessionsRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.byToken[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

type fakeStatusRepo struct {
	out    *models.DatabaseStatus
	err    error
	dbName string
}

func (f *fakeStatusRepo) Database(ctx context.Context, dbName string) (*models.DatabaseStatus, error) {
	f.dbName = dbName
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

type fakeMigrator struct {
	statuses  []*goose.MigrationStatus
	results   []*goose.MigrationResult
	statusErr error
	upErr     error
}

func (f *fakeMigrator) Status(context.Context) ([]*goose.MigrationStatus, error) {
	return f.statuses, f.statusErr
}

func (f *fakeMigrator) Up(context.Context) ([]*goose.MigrationResult, error) {
	return f.results, f.upErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	s  *fakeSessionsRepo
	st *fakeStatusRepo
	mg *fakeMigrator

	migratorErr error
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository          { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository    { return m.s }
func (m *fakeRepoManager) Status(db dbx.DBTX) status.Repository        { return m.st }

func (m *fakeRepoManager) Migrator(*sql.DB) (repomanager.Migrator, error) {
	if m.migratorErr != nil {
		return nil, m.migratorErr
	}
	return m.mg, nil
}

// countingHasher records how often Hash runs.
type countingHasher struct {
	cryptox.PasswordHasher
	hashes int
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.hashes++
	return h.PasswordHasher.Hash(plaintext)
}

func newCountingHasher() *countingHasher {
	return &countingHasher{PasswordHasher: cryptox.NewBcryptHasher(4)}
}
