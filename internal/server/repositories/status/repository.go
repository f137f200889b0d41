// Package status reads health figures from the PostgreSQL server itself.
package status

import (
	"context"

	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
)

type Repository interface {
	// Database returns the server version, the configured connection limit
	// and the number of backends currently attached to dbName.
	Database(ctx context.Context, dbName string) (*models.DatabaseStatus, error)
}
