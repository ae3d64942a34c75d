// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB          *repository.MongoDB
	CatalogRepo repository.CatalogRepositoryInterface
}

// InitializeDatabase connects to MongoDB and creates the catalog repository.
// The catalog is the source of truth for products, locations and stock, so
// a connection failure is fatal.
func InitializeDatabase(cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		return nil, err
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	return &DatabaseComponents{
		DB:          db,
		CatalogRepo: repository.NewCatalogRepository(db),
	}, nil
}

// mongoHealthChecker adapts the MongoDB ping to the health check interface.
type mongoHealthChecker struct {
	db *repository.MongoDB
}

// Check pings the database with a short timeout.
func (c *mongoHealthChecker) Check() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.db.HealthCheck(ctx)
}

// Close releases the database connection.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
