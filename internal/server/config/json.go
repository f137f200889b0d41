package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophaccounts/internal/flagx"
	"github.com/dmitrijs2005/gophaccounts/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Durations use
// timex.Duration so both "30m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             string         `json:"database_dsn"`
	DatabaseName            string         `json:"database_name"`
	DatabaseConnMaxLifetime timex.Duration `json:"database_conn_max_lifetime"`
	DatabaseMaxOpenConns    int            `json:"database_max_open_conns"`
	Environment             string         `json:"environment"`
	PasswordAlgorithm       string         `json:"password_algorithm"`
	PasswordHashCost        int            `json:"password_hash_cost"`
	MigrateOnStart          bool           `json:"migrate_on_start"`
	LogBackend              string         `json:"log_backend"`
}

// parseJson loads the file named by -c / -config, if any, over config.
// Keys missing from the file keep their current values. An unreadable
// file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		EndpointAddrHTTP:        config.EndpointAddrHTTP,
		EndpointAddrGRPC:        config.EndpointAddrGRPC,
		DatabaseDSN:             config.DatabaseDSN,
		DatabaseName:            config.DatabaseName,
		DatabaseConnMaxLifetime: timex.Duration{Duration: config.DatabaseConnMaxLifetime},
		DatabaseMaxOpenConns:    config.DatabaseMaxOpenConns,
		Environment:             config.Environment,
		PasswordAlgorithm:       config.PasswordAlgorithm,
		PasswordHashCost:        config.PasswordHashCost,
		MigrateOnStart:          config.MigrateOnStart,
		LogBackend:              config.LogBackend,
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.DatabaseDSN = c.DatabaseDSN
	config.DatabaseName = c.DatabaseName
	config.DatabaseConnMaxLifetime = c.DatabaseConnMaxLifetime.Duration
	config.DatabaseMaxOpenConns = c.DatabaseMaxOpenConns
	config.Environment = c.Environment
	config.PasswordAlgorithm = c.PasswordAlgorithm
	config.PasswordHashCost = c.PasswordHashCost
	config.MigrateOnStart = c.MigrateOnStart
	config.LogBackend = c.LogBackend
}
