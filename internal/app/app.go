// Package app provides application initialization and dependency injection.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/http"
)

// InitializeApp creates and wires all application dependencies.
// The returned cleanup function releases the database connection and must
// be called on shutdown.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	// Logger first, everything else logs through it.
	InitializeLogger(cfg.Log)

	dbComponents, err := InitializeDatabase(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	serviceComponents := InitializeServices(cfg, dbComponents.CatalogRepo)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = dbComponents.Close(ctx)
	}

	router := http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)
	return router, cleanup, nil
}
