package models

import "time"

// DatabaseStatus describes the PostgreSQL instance backing the service.
type DatabaseStatus struct {
	Version           string `json:"version"`
	MaxConnections    int    `json:"max_connections"`
	ActiveConnections int    `json:"active_connections"`
}

// Status is the payload of the health endpoint.
type Status struct {
	UpdatedAt    time.Time    `json:"updated_at"`
	Dependencies Dependencies `json:"dependencies"`
}

type Dependencies struct {
	Database DatabaseStatus `json:"database"`
}

// Migration is one goose migration as reported by the migrations endpoint.
type Migration struct {
	Version   int64     `json:"version"`
	Path      string    `json:"path"`
	State     string    `json:"state"`
	AppliedAt time.Time `json:"applied_at,omitzero"`
}
