// Package service implements the order fulfillment optimizer: packing
// estimation, feasibility checking, candidate allocation, shipment
// splitting and courier rate evaluation.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// CatalogLoader loads the catalog snapshot one optimization works on.
type CatalogLoader interface {
	LoadCatalog(ctx context.Context, productIDs []int64) (*model.Catalog, error)
}

// OptimizeOrder is the service-level input of one optimization request.
type OptimizeOrder struct {
	DeliveryPostcode string
	COD              bool
	// Quantities maps product id to requested units.
	Quantities map[int64]int
	// Custom pins the allocation; when non-empty the optimizer evaluates it
	// as the only candidate and skips strategy generation.
	Custom []AllocationEntry
}

// Optimizer computes the cheapest fulfillment plan for an order.
type Optimizer interface {
	Optimize(ctx context.Context, order OptimizeOrder) (*model.Plan, error)
}

// Option configures an OptimizerService.
type Option func(*OptimizerService)

// OptimizerService implements Optimizer. One Optimize call loads a catalog
// snapshot, checks feasibility, generates allocation candidates, prices
// them through the rate evaluator and returns the cheapest covered
// candidate as the plan.
type OptimizerService struct {
	catalog   CatalogLoader
	estimator *PackingEstimator
	evaluator *RateEvaluator
	timeout   time.Duration
	logger    zerolog.Logger
}

// NewOptimizerService creates a new OptimizerService with the given options.
func NewOptimizerService(catalog CatalogLoader, estimator *PackingEstimator, evaluator *RateEvaluator, logger zerolog.Logger, opts ...Option) *OptimizerService {
	s := &OptimizerService{
		catalog:   catalog,
		estimator: estimator,
		evaluator: evaluator,
		timeout:   30 * time.Second,
		logger:    logger.With().Str("component", "optimizer").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTimeout bounds the provider fan-out of a single optimization.
func WithTimeout(d time.Duration) Option {
	return func(s *OptimizerService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Optimize computes the cheapest fulfillment plan for the order.
//
// Infeasible orders return an InfeasibleError without any provider call.
// When no candidate has full courier coverage the cheapest uncovered
// candidate is returned with its unavailability reason, so the caller still
// sees the best available plan.
func (s *OptimizerService) Optimize(ctx context.Context, order OptimizeOrder) (*model.Plan, error) {
	if len(order.Quantities) == 0 {
		return nil, newInfeasible("No products specified")
	}
	if order.DeliveryPostcode == "" {
		return nil, newInfeasible("Delivery postcode is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()

	productIDs := sortedProductIDs(order.Quantities)
	catalog, err := s.catalog.LoadCatalog(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	snap := buildSnapshot(catalog, order.Quantities, s.estimator)
	if len(snap.products) == 0 {
		return nil, newInfeasible("No valid products found")
	}

	custom := len(order.Custom) > 0
	var candidates []*candidate
	if custom {
		c, err := customCandidate(snap, order.Custom)
		if err != nil {
			return nil, err
		}
		candidates = []*candidate{c}
	} else {
		if err := checkFeasibility(snap, order.Quantities); err != nil {
			return nil, err
		}
		candidates = generateCandidates(snap, order.Quantities)
		if len(candidates) == 0 {
			return nil, newInfeasible("No valid allocation strategies found")
		}
	}

	s.evaluator.Evaluate(ctx, candidates, snap, order.DeliveryPostcode, order.COD, custom)

	chosen, covered := selectCandidate(candidates)
	if chosen == nil {
		return nil, newInfeasible("No valid allocation strategies found")
	}

	plan := &model.Plan{
		Description:          describeCandidate(chosen),
		Strategy:             chosen.strategy,
		Shipments:            chosen.shipments,
		ShipmentCount:        len(chosen.shipments),
		PackagingCost:        chosen.packagingCost,
		ShippingCost:         chosen.shippingCost,
		TotalCost:            chosen.totalCost,
		TotalQuantity:        totalQuantity(order.Quantities),
		TotalProductCount:    len(order.Quantities),
		CanFulfillOrder:      chosen.canFulfill,
		Shortfall:            chosen.shortfall,
		AllCouriersAvailable: covered,
	}
	if !covered {
		plan.UnavailabilityReason = chosen.unavailabilityReason
	}

	s.logger.Info().
		Str("strategy", chosen.strategy).
		Int("candidates", len(candidates)).
		Int("shipments", plan.ShipmentCount).
		Str("total_cost", plan.TotalCost.String()).
		Bool("can_fulfill", chosen.canFulfill).
		Int("shortfall", chosen.shortfall).
		Bool("couriers_available", covered).
		Dur("duration", time.Since(started)).
		Msg("order optimized")

	return plan, nil
}

// selectCandidate picks the cheapest candidate with full courier coverage,
// falling back to the cheapest uncovered one.
func selectCandidate(candidates []*candidate) (*candidate, bool) {
	var covered, uncovered []*candidate
	for _, c := range candidates {
		if c.couriersAvailable {
			covered = append(covered, c)
		} else {
			uncovered = append(uncovered, c)
		}
	}
	byCost := func(list []*candidate) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].totalCost.LessThan(list[j].totalCost) })
	}
	byCost(covered)
	byCost(uncovered)

	if len(covered) > 0 {
		return covered[0], true
	}
	if len(uncovered) > 0 {
		return uncovered[0], false
	}
	return nil, false
}

// describeCandidate renders the plan summary, e.g. "All from Mumbai
// Warehouse (2 shipments)" or "Split: Mumbai Warehouse (4 items) + Delhi
// Hub (2 items)".
func describeCandidate(c *candidate) string {
	if len(c.shipments) == 0 {
		return ""
	}

	var order []int64
	byLocation := make(map[int64][]model.Shipment)
	for _, shipment := range c.shipments {
		if _, ok := byLocation[shipment.LocationID]; !ok {
			order = append(order, shipment.LocationID)
		}
		byLocation[shipment.LocationID] = append(byLocation[shipment.LocationID], shipment)
	}

	if len(order) == 1 {
		name := c.shipments[0].LocationName
		if name == "" {
			name = "single location"
		}
		if len(c.shipments) > 1 {
			return fmt.Sprintf("All from %s (%d shipments)", name, len(c.shipments))
		}
		return "All from " + name
	}

	parts := make([]string, 0, len(order))
	for _, locationID := range order {
		shipments := byLocation[locationID]
		name := shipments[0].LocationName
		if name == "" {
			name = "Location"
		}
		items := 0
		for _, shipment := range shipments {
			items += shipment.TotalQuantity
		}
		if len(shipments) > 1 {
			parts = append(parts, fmt.Sprintf("%s (%d items, %d shipments)", name, items, len(shipments)))
		} else {
			parts = append(parts, fmt.Sprintf("%s (%d items)", name, items))
		}
	}
	return "Split: " + strings.Join(parts, " + ")
}

func totalQuantity(quantities map[int64]int) int {
	total := 0
	for _, qty := range quantities {
		total += qty
	}
	return total
}
