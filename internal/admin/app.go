// Package admin implements the operator command line: migrations, status
// and user lookup against the accounts database.
package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophaccounts/internal/cryptox"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/dmitrijs2005/gophaccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophaccounts/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"
)

type UserReader interface {
	ReadOneByUsername(ctx context.Context, username string) (*models.User, error)
}

type StatusReader interface {
	Get(ctx context.Context) (*models.Status, error)
}

type Migrator interface {
	Pending(ctx context.Context) ([]models.Migration, error)
	Up(ctx context.Context) ([]models.Migration, error)
}

type Services struct {
	Users      UserReader
	Status     StatusReader
	Migrations Migrator
}

// Connector opens the database and builds the services. The returned close
// function releases the connection.
type Connector func(ctx context.Context, dsn, dbName string) (*Services, func() error, error)

// PostgresConnector connects through the pgx driver.
func PostgresConnector(ctx context.Context, dsn, dbName string) (*Services, func() error, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database unreachable: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return &Services{
		Users:      services.NewUserService(db, rm, cryptox.NewBcryptHasher(0)),
		Status:     services.NewStatusService(db, rm, dbName),
		Migrations: services.NewMigrationService(db, rm),
	}, db.Close, nil
}

func NewApp(out io.Writer, connect Connector) *cli.App {
	var dsn, dbName string

	withServices := func(fn func(c *cli.Context, s *Services) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			s, closeFn, err := connect(c.Context, dsn, dbName)
			if err != nil {
				return err
			}
			defer closeFn()
			return fn(c, s)
		}
	}

	return &cli.App{
		Name:   "gophaccounts-admin",
		Usage:  "Operate the accounts database",
		Writer: out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dsn",
				Aliases:     []string{"d"},
				Usage:       "PostgreSQL DSN",
				EnvVars:     []string{"DATABASE_URL"},
				Required:    true,
				Destination: &dsn,
			},
			&cli.StringFlag{
				Name:        "database-name",
				Aliases:     []string{"n"},
				Usage:       "Database name reported by status",
				EnvVars:     []string{"POSTGRES_DB"},
				Value:       "local_db",
				Destination: &dbName,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "migrations",
				Usage: "Inspect or apply schema migrations",
				Subcommands: []*cli.Command{
					{
						Name:  "pending",
						Usage: "List migrations not applied yet",
						Action: withServices(func(c *cli.Context, s *Services) error {
							pending, err := s.Migrations.Pending(c.Context)
							if err != nil {
								return err
							}
							return printJSON(out, pending)
						}),
					},
					{
						Name:  "up",
						Usage: "Apply pending migrations",
						Action: withServices(func(c *cli.Context, s *Services) error {
							applied, err := s.Migrations.Up(c.Context)
							if err != nil {
								return err
							}
							return printJSON(out, applied)
						}),
					},
				},
			},
			{
				Name:  "status",
				Usage: "Show database status",
				Action: withServices(func(c *cli.Context, s *Services) error {
					st, err := s.Status.Get(c.Context)
					if err != nil {
						return err
					}
					return printJSON(out, st)
				}),
			},
			{
				Name:  "user",
				Usage: "Look up accounts",
				Subcommands: []*cli.Command{
					{
						Name:      "show",
						Usage:     "Show one user by username",
						ArgsUsage: "<username>",
						Action: withServices(func(c *cli.Context, s *Services) error {
							if c.NArg() != 1 {
								return fmt.Errorf("expected exactly one username, got %d arguments", c.NArg())
							}
							u, err := s.Users.ReadOneByUsername(c.Context, c.Args().First())
							if err != nil {
								return err
							}
							return printJSON(out, u)
						}),
					},
				},
			},
		},
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
