package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. Values from envFile
// are loaded first without overriding variables already set in the process
// environment; a missing file is not an error. Malformed numbers, booleans
// or durations panic, like invalid flags do.
//
// Recognised variables:
//
//	HTTP_ADDRESS, GRPC_ADDRESS, DATABASE_URL, POSTGRES_DB,
//	DATABASE_CONN_MAX_LIFETIME, DATABASE_MAX_OPEN_CONNS, ENVIRONMENT,
//	PASSWORD_ALGORITHM, PASSWORD_HASH_COST, MIGRATE_ON_START, LOG_BACKEND
func parseEnv(config *Config, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	envString("HTTP_ADDRESS", &config.EndpointAddrHTTP)
	envString("GRPC_ADDRESS", &config.EndpointAddrGRPC)
	envString("DATABASE_URL", &config.DatabaseDSN)
	envString("POSTGRES_DB", &config.DatabaseName)
	envString("ENVIRONMENT", &config.Environment)
	envString("PASSWORD_ALGORITHM", &config.PasswordAlgorithm)
	envString("LOG_BACKEND", &config.LogBackend)

	if v, ok := os.LookupEnv("DATABASE_CONN_MAX_LIFETIME"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.DatabaseConnMaxLifetime = d
	}
	envInt("DATABASE_MAX_OPEN_CONNS", &config.DatabaseMaxOpenConns)
	envInt("PASSWORD_HASH_COST", &config.PasswordHashCost)

	if v, ok := os.LookupEnv("MIGRATE_ON_START"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		config.MigrateOnStart = b
	}
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		*dst = n
	}
}
