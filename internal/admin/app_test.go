package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct{}

func (fakeUsers) ReadOneByUsername(_ context.Context, username string) (*models.User, error) {
	if username == "alice" {
		return &models.User{ID: "u1", Username: "alice"}, nil
	}
	return nil, common.NewNotFoundError("Usuário não encontrado", "")
}

type fakeStatus struct{}

func (fakeStatus) Get(context.Context) (*models.Status, error) {
	return &models.Status{Dependencies: models.Dependencies{Database: models.DatabaseStatus{Version: "16.0"}}}, nil
}

type fakeMigrations struct{ upCalls int }

func (f *fakeMigrations) Pending(context.Context) ([]models.Migration, error) {
	return []models.Migration{{Version: 1, Path: "00001_create_users.sql", State: "pending"}}, nil
}

func (f *fakeMigrations) Up(context.Context) ([]models.Migration, error) {
	f.upCalls++
	return []models.Migration{{Version: 1, Path: "00001_create_users.sql", State: "applied"}}, nil
}

type harness struct {
	out    bytes.Buffer
	mig    *fakeMigrations
	dsn    string
	dbName string
	closed bool
}

func (h *harness) connect(_ context.Context, dsn, dbName string) (*Services, func() error, error) {
	h.dsn, h.dbName = dsn, dbName
	return &Services{Users: fakeUsers{}, Status: fakeStatus{}, Migrations: h.mig},
		func() error { h.closed = true; return nil }, nil
}

func run(t *testing.T, args ...string) (*harness, error) {
	t.Helper()
	h := &harness{mig: &fakeMigrations{}}
	app := NewApp(&h.out, h.connect)
	err := app.RunContext(context.Background(), append([]string{"admin"}, args...))
	return h, err
}

func TestMigrationsPending(t *testing.T) {
	h, err := run(t, "--dsn", "postgres://x", "migrations", "pending")
	require.NoError(t, err)

	var got []models.Migration
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &got))
	assert.Equal(t, "pending", got[0].State)
	assert.Equal(t, 0, h.mig.upCalls)
	assert.True(t, h.closed)
	assert.Equal(t, "postgres://x", h.dsn)
}

func TestMigrationsUp(t *testing.T) {
	h, err := run(t, "-d", "postgres://x", "migrations", "up")
	require.NoError(t, err)
	assert.Equal(t, 1, h.mig.upCalls)
	assert.Contains(t, h.out.String(), `"applied"`)
}

func TestStatus(t *testing.T) {
	h, err := run(t, "--dsn", "postgres://x", "--database-name", "accounts", "status")
	require.NoError(t, err)
	assert.Equal(t, "accounts", h.dbName)
	assert.Contains(t, h.out.String(), `"version": "16.0"`)
}

func TestUserShow(t *testing.T) {
	h, err := run(t, "--dsn", "postgres://x", "user", "show", "alice")
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), `"username": "alice"`)

	_, err = run(t, "--dsn", "postgres://x", "user", "show", "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = run(t, "--dsn", "postgres://x", "user", "show")
	assert.Error(t, err)
}

func TestConnectError(t *testing.T) {
	boom := errors.New("boom")
	app := NewApp(&bytes.Buffer{}, func(context.Context, string, string) (*Services, func() error, error) {
		return nil, nil, boom
	})

	err := app.RunContext(context.Background(), []string{"admin", "--dsn", "x", "status"})
	assert.ErrorIs(t, err, boom)
}
