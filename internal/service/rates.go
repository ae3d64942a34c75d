package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// RateProvider fetches courier serviceability quotes for a route and weight.
// Implementations must be safe for concurrent use.
type RateProvider interface {
	AvailableCouriers(ctx context.Context, pickupPostcode, deliveryPostcode string, cod bool, weightKg decimal.Decimal) ([]model.CourierOption, error)
}

var (
	// routeProbeWeights are tried in descending order to find the heaviest
	// shipment a route can carry.
	routeProbeWeights = []int{500, 400, 300, 200, 100}

	// fallbackMaxWeightKg caps shipments when the provider cannot be probed.
	fallbackMaxWeightKg = decimal.NewFromInt(150)

	// minChargeableWeightKg is the lowest weight couriers will quote.
	minChargeableWeightKg = decimal.NewFromFloat(0.5)
)

// RateEvaluator prices allocation candidates. It probes each route's weight
// ceiling, splits allocations into shipments under that ceiling, and
// attaches the cheapest courier quote to every shipment.
//
// Provider calls for one request are deduplicated: identical route/weight
// lookups across candidates resolve to a single upstream call, fanned out
// concurrently.
type RateEvaluator struct {
	provider  RateProvider
	estimator *PackingEstimator
	logger    zerolog.Logger
}

// NewRateEvaluator creates a RateEvaluator.
func NewRateEvaluator(provider RateProvider, estimator *PackingEstimator, logger zerolog.Logger) *RateEvaluator {
	return &RateEvaluator{
		provider:  provider,
		estimator: estimator,
		logger:    logger.With().Str("component", "rate_evaluator").Logger(),
	}
}

// Evaluate builds and prices the shipments of every candidate in place.
//
// In auto mode, allocation pinned to a location whose route has no courier
// at any probe weight is first moved to serviceable locations. Custom
// allocations are never rewritten; their unserviceable routes surface as
// unavailability reasons instead.
func (e *RateEvaluator) Evaluate(ctx context.Context, candidates []*candidate, snap *snapshot, deliveryPostcode string, cod, custom bool) {
	usedLocations := make(map[int64]bool)
	for _, c := range candidates {
		for locationID := range c.allocation {
			usedLocations[locationID] = true
		}
	}

	postcodes := make(map[string]bool)
	for locationID := range usedLocations {
		if loc, ok := snap.location(locationID); ok && loc.PostalCode != "" {
			postcodes[loc.PostalCode] = true
		}
	}

	routeMaxWeights := e.probeRoutes(ctx, postcodes, deliveryPostcode, cod)

	serviceable := make(map[int64]bool)
	unserviceable := make(map[int64]bool)
	for locationID := range usedLocations {
		loc, ok := snap.location(locationID)
		if !ok {
			continue
		}
		if maxWeightForPostcode(routeMaxWeights, loc.PostalCode).IsPositive() {
			serviceable[locationID] = true
		} else {
			unserviceable[locationID] = true
		}
	}

	if !custom {
		for _, c := range candidates {
			reallocateFromUnserviceable(c, snap, serviceable, unserviceable)
		}
	}

	for _, c := range candidates {
		e.buildShipments(c, snap, routeMaxWeights, deliveryPostcode)
	}

	quotes := e.fetchQuotes(ctx, candidates, deliveryPostcode, cod)

	for _, c := range candidates {
		e.priceCandidate(c, deliveryPostcode, quotes)
	}
}

// probeRoutes finds the maximum shipment weight per pickup postcode,
// concurrently across routes.
func (e *RateEvaluator) probeRoutes(ctx context.Context, postcodes map[string]bool, deliveryPostcode string, cod bool) map[string]decimal.Decimal {
	results := make(map[string]decimal.Decimal, len(postcodes))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for postcode := range postcodes {
		wg.Add(1)
		go func(postcode string) {
			defer wg.Done()
			maxWeight := e.maxWeightForRoute(ctx, postcode, deliveryPostcode, cod)
			mu.Lock()
			results[postcode] = maxWeight
			mu.Unlock()
		}(postcode)
	}
	wg.Wait()
	return results
}

// maxWeightForRoute probes descending weights until the provider returns a
// serviceable courier. Zero means no courier serves the route at any probe
// weight. When every probe fails outright the route is assumed usable up to
// the fallback ceiling rather than unserviceable.
func (e *RateEvaluator) maxWeightForRoute(ctx context.Context, pickupPostcode, deliveryPostcode string, cod bool) decimal.Decimal {
	allFailed := true
	for _, weight := range routeProbeWeights {
		couriers, err := e.provider.AvailableCouriers(ctx, pickupPostcode, deliveryPostcode, cod, decimal.NewFromInt(int64(weight)))
		if err != nil {
			e.logger.Debug().Err(err).
				Str("pickup", pickupPostcode).
				Int("weight_kg", weight).
				Msg("route probe failed")
			continue
		}
		allFailed = false
		if len(couriers) > 0 {
			return decimal.NewFromInt(int64(weight))
		}
	}
	if allFailed {
		e.logger.Warn().
			Str("pickup", pickupPostcode).
			Str("delivery", deliveryPostcode).
			Msg("all route probes failed, using fallback weight ceiling")
		return fallbackMaxWeightKg
	}
	return decimal.Zero
}

func maxWeightForPostcode(routeMaxWeights map[string]decimal.Decimal, postcode string) decimal.Decimal {
	if postcode == "" {
		return fallbackMaxWeightKg
	}
	if w, ok := routeMaxWeights[postcode]; ok {
		return w
	}
	return fallbackMaxWeightKg
}

// buildShipments expands a candidate's allocation into packaged,
// weight-bounded shipments. Locations on unserviceable routes produce no
// shipments, only an unavailability reason.
func (e *RateEvaluator) buildShipments(c *candidate, snap *snapshot, routeMaxWeights map[string]decimal.Decimal, deliveryPostcode string) {
	var shipments []model.Shipment
	var routeErrors []string

	locationIDs := make([]int64, 0, len(c.allocation))
	for id := range c.allocation {
		locationIDs = append(locationIDs, id)
	}
	sort.Slice(locationIDs, func(i, j int) bool { return locationIDs[i] < locationIDs[j] })

	for _, locationID := range locationIDs {
		loc, ok := snap.location(locationID)
		if !ok {
			continue
		}
		productQtys := c.allocation[locationID]

		maxWeight := maxWeightForPostcode(routeMaxWeights, loc.PostalCode)
		if maxWeight.IsZero() {
			routeErrors = append(routeErrors, fmt.Sprintf(
				"No courier options available between pickup location %s [%s] and delivery postcode [%s] (no alternative locations available)",
				loc.Name, loc.PostalCode, deliveryPostcode))
			continue
		}

		demands := make([]ItemDemand, 0, len(productQtys))
		for _, productID := range sortedProductIDs(productQtys) {
			if info, ok := snap.products[productID]; ok {
				demands = append(demands, ItemDemand{Product: info.product, Quantity: productQtys[productID]})
			}
		}
		packing := e.estimator.Estimate(demands, loc.Packages)

		shipments = append(shipments, splitShipments(snap, loc, productQtys, packing.Usages, maxWeight)...)
	}

	c.shipments = shipments
	if len(routeErrors) > 0 {
		c.couriersAvailable = false
		c.unavailabilityReason = strings.Join(routeErrors, "; ")
	}
}

// quoteKey caches one route/weight lookup. Weight is normalized to two
// decimal places so near-identical shipments share a quote.
func quoteKey(pickupPostcode, deliveryPostcode string, weight decimal.Decimal) string {
	return pickupPostcode + "-" + deliveryPostcode + "-" + weight.StringFixed(2)
}

func chargeableWeight(w decimal.Decimal) decimal.Decimal {
	if w.LessThan(minChargeableWeightKg) {
		return minChargeableWeightKg
	}
	return w
}

// fetchQuotes resolves all distinct route/weight quotes needed by the
// candidates' shipments with one concurrent provider call each. Failed
// lookups are absent from the result and read as "no couriers".
func (e *RateEvaluator) fetchQuotes(ctx context.Context, candidates []*candidate, deliveryPostcode string, cod bool) map[string][]model.CourierOption {
	type lookup struct {
		pickup string
		weight decimal.Decimal
	}
	lookups := make(map[string]lookup)
	for _, c := range candidates {
		for _, shipment := range c.shipments {
			if shipment.PickupPostcode == "" {
				continue
			}
			weight := chargeableWeight(shipment.TotalWeightKg)
			key := quoteKey(shipment.PickupPostcode, deliveryPostcode, weight)
			if _, ok := lookups[key]; !ok {
				lookups[key] = lookup{pickup: shipment.PickupPostcode, weight: weight}
			}
		}
	}

	results := make(map[string][]model.CourierOption, len(lookups))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for key, l := range lookups {
		wg.Add(1)
		go func(key string, l lookup) {
			defer wg.Done()
			couriers, err := e.provider.AvailableCouriers(ctx, l.pickup, deliveryPostcode, cod, l.weight)
			if err != nil {
				e.logger.Debug().Err(err).Str("key", key).Msg("quote lookup failed")
				return
			}
			mu.Lock()
			results[key] = couriers
			mu.Unlock()
		}(key, l)
	}
	wg.Wait()
	return results
}

// priceCandidate applies quotes to a candidate's shipments and derives its
// totals. Shipments that packed nothing are dropped with a reason. Every
// remaining shipment gets its couriers sorted cheapest first and its
// shipping cost set from the cheapest quote; shipments without quotes keep
// a zero shipping cost and mark the candidate uncovered.
func (e *RateEvaluator) priceCandidate(c *candidate, deliveryPostcode string, quotes map[string][]model.CourierOption) {
	packagingCost := decimal.Zero
	shippingCost := decimal.Zero
	couriersAvailable := true
	var reasons []string
	if c.unavailabilityReason != "" {
		reasons = append(reasons, c.unavailabilityReason)
		couriersAvailable = false
	}

	valid := make([]model.Shipment, 0, len(c.shipments))
	for _, shipment := range c.shipments {
		if len(shipment.Packages) == 0 {
			reasons = append(reasons, fmt.Sprintf("No packages available at %s to fit products (skipped)", shipment.LocationName))
			continue
		}
		packagingCost = packagingCost.Add(shipment.PackagingCost)

		if shipment.PickupPostcode == "" {
			couriersAvailable = false
			reasons = append(reasons, "Missing postal code for shipment")
			valid = append(valid, shipment)
			continue
		}

		weight := chargeableWeight(shipment.TotalWeightKg)
		couriers := quotes[quoteKey(shipment.PickupPostcode, deliveryPostcode, weight)]
		if len(couriers) == 0 {
			couriersAvailable = false
			reasons = append(reasons, fmt.Sprintf(
				"No courier options available between pickup location %s [%s] and delivery postcode [%s]",
				shipment.LocationName, shipment.PickupPostcode, deliveryPostcode))
			valid = append(valid, shipment)
			continue
		}

		sorted := make([]model.CourierOption, len(couriers))
		copy(sorted, couriers)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rate.LessThan(sorted[j].Rate) })

		shipment.Couriers = sorted
		selected := sorted[0]
		shipment.SelectedCourier = &selected
		shipment.ShippingCost = selected.Rate
		shippingCost = shippingCost.Add(selected.Rate)
		valid = append(valid, shipment)
	}

	// Most expensive shipments first in the response.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].TotalCost().GreaterThan(valid[j].TotalCost())
	})
	c.shipments = valid

	if len(valid) == 0 {
		couriersAvailable = false
		reasons = append(reasons, "No valid shipments - all locations lack suitable packaging")
	}

	c.packagingCost = packagingCost
	c.shippingCost = shippingCost
	c.totalCost = packagingCost.Add(shippingCost)
	c.couriersAvailable = couriersAvailable
	c.unavailabilityReason = strings.Join(reasons, "; ")
}
