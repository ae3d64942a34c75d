package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// ShippingQuote is the result of one raw serviceability lookup.
type ShippingQuote struct {
	// Couriers are the serviceable quotes, cheapest first.
	Couriers []model.CourierOption `json:"available_couriers"`
	// Selected is the cheapest quote, nil when the route has none.
	Selected *model.CourierOption `json:"selected_courier,omitempty"`
	// ChargedWeightKg is the weight actually quoted after applying the
	// courier minimum.
	ChargedWeightKg decimal.Decimal `json:"charged_weight_kgs"`
}

// ShippingOptions exposes raw courier serviceability lookups.
type ShippingOptions interface {
	Quote(ctx context.Context, pickupPostcode, deliveryPostcode string, weightKg decimal.Decimal, cod bool) (*ShippingQuote, error)
}

// ShippingOptionsService implements ShippingOptions on a RateProvider.
type ShippingOptionsService struct {
	provider RateProvider
	logger   zerolog.Logger
}

// NewShippingOptionsService creates a ShippingOptionsService.
func NewShippingOptionsService(provider RateProvider, logger zerolog.Logger) *ShippingOptionsService {
	return &ShippingOptionsService{
		provider: provider,
		logger:   logger.With().Str("component", "shipping_options").Logger(),
	}
}

// Quote lists serviceable couriers for a route and weight, cheapest first.
// Weights under the courier minimum are quoted at the minimum.
func (s *ShippingOptionsService) Quote(ctx context.Context, pickupPostcode, deliveryPostcode string, weightKg decimal.Decimal, cod bool) (*ShippingQuote, error) {
	weight := chargeableWeight(weightKg)

	couriers, err := s.provider.AvailableCouriers(ctx, pickupPostcode, deliveryPostcode, cod, weight)
	if err != nil {
		return nil, fmt.Errorf("fetch shipping options: %w", err)
	}

	sorted := make([]model.CourierOption, len(couriers))
	copy(sorted, couriers)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rate.LessThan(sorted[j].Rate) })

	quote := &ShippingQuote{
		Couriers:        sorted,
		ChargedWeightKg: weight,
	}
	if len(sorted) > 0 {
		selected := sorted[0]
		quote.Selected = &selected
	}

	s.logger.Debug().
		Str("pickup", pickupPostcode).
		Str("delivery", deliveryPostcode).
		Str("weight_kg", weight.String()).
		Int("couriers", len(sorted)).
		Msg("shipping options quoted")

	return quote, nil
}
