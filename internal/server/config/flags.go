package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
)

var serverFlags = []string{"-a", "-g", "-d", "-n", "-t", "-o", "-e", "-p", "-k", "-m", "-l"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string    HTTP bind address (e.g. ":3000")
//	-g string    gRPC bind address (e.g. ":50051")
//	-d string    PostgreSQL DSN
//	-n string    database name reported by the status endpoint
//	-t duration  connection max lifetime (e.g. "30m")
//	-o int       max open connections
//	-e string    environment ("production" enables secure cookies)
//	-p string    password algorithm: bcrypt or argon2id
//	-k int       password hash cost, 0 for the environment default
//	-m bool      run migrations on start; pass -m=false to disable
//	-l string    log backend: zerolog or slog
//
// os.Args is filtered through flagx.FilterArgs first so that flags owned by
// other components do not break parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DatabaseName, "n", config.DatabaseName, "database name")
	fs.DurationVar(&config.DatabaseConnMaxLifetime, "t", config.DatabaseConnMaxLifetime, "database connection max lifetime")
	fs.IntVar(&config.DatabaseMaxOpenConns, "o", config.DatabaseMaxOpenConns, "database max open connections")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.StringVar(&config.PasswordAlgorithm, "p", config.PasswordAlgorithm, "password hashing algorithm")
	fs.IntVar(&config.PasswordHashCost, "k", config.PasswordHashCost, "password hash cost")
	fs.BoolVar(&config.MigrateOnStart, "m", config.MigrateOnStart, "run migrations on start")
	fs.StringVar(&config.LogBackend, "l", config.LogBackend, "log backend")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
