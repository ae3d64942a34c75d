// Package app provides service initialization.
package app

import (
	"github.com/guttosm/fulfillment-service/config"
	"github.com/guttosm/fulfillment-service/internal/logger"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/guttosm/fulfillment-service/internal/shiprocket"
)

// ServiceComponents holds business service components.
type ServiceComponents struct {
	Provider  *shiprocket.Client
	Optimizer service.Optimizer
	Shipping  service.ShippingOptions
}

// InitializeServices initializes the shipping provider client and the
// optimization services on top of the catalog repository.
func InitializeServices(cfg config.Config, catalog service.CatalogLoader) *ServiceComponents {
	lg := logger.Logger()

	provider := shiprocket.NewClient(shiprocket.Config{
		BaseURL:  cfg.Shipping.BaseURL,
		Email:    cfg.Shipping.Email,
		Password: cfg.Shipping.Password,
		Timeout:  cfg.Shipping.Timeout,
	}, lg)

	estimator := service.NewPackingEstimator()
	evaluator := service.NewRateEvaluator(provider, estimator, lg)

	optimizer := service.NewOptimizerService(
		catalog,
		estimator,
		evaluator,
		lg,
		service.WithTimeout(cfg.Optimizer.Timeout),
	)

	shipping := service.NewShippingOptionsService(provider, lg)

	return &ServiceComponents{
		Provider:  provider,
		Optimizer: optimizer,
		Shipping:  shipping,
	}
}
