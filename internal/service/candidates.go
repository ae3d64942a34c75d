package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// Strategy names reported on candidates and plans.
const (
	StrategySingleLocation = "single_location"
	StrategyConsolidation  = "fewest_locations"
	StrategyHighestStock   = "highest_stock"
	StrategyCustom         = "custom"
)

// candidate is the evaluator's working view of one allocation strategy.
type candidate struct {
	strategy             string
	allocation           model.Allocation
	canFulfill           bool
	shortfall            int
	shipments            []model.Shipment
	packagingCost        decimal.Decimal
	shippingCost         decimal.Decimal
	totalCost            decimal.Decimal
	couriersAvailable    bool
	unavailabilityReason string
}

func newCandidate(strategy string) *candidate {
	return &candidate{
		strategy:      strategy,
		allocation:    make(model.Allocation),
		packagingCost: decimal.Zero,
		shippingCost:  decimal.Zero,
		totalCost:     decimal.Zero,
	}
}

// generateCandidates builds the allocation strategies for an order: one
// single-location candidate per location that can fulfill everything alone,
// a consolidation candidate that favors locations covering the most distinct
// products, and a stock candidate that favors deep availability per product.
// Candidates that cannot fulfill the full order are discarded, as are exact
// duplicates of an earlier candidate.
func generateCandidates(snap *snapshot, quantities map[int64]int) []*candidate {
	var candidates []*candidate

	for _, locationID := range sortedLocationIDs(snap) {
		if canLocationFulfillAll(snap, locationID, quantities) {
			candidates = append(candidates, singleLocationCandidate(locationID, quantities))
		}
	}

	if c := greedyConsolidationCandidate(snap, quantities); c.canFulfill {
		candidates = append(candidates, c)
	}
	if c := greedyStockCandidate(snap, quantities); c.canFulfill {
		candidates = append(candidates, c)
	}

	return dedupCandidates(candidates)
}

func sortedLocationIDs(snap *snapshot) []int64 {
	ids := make([]int64, 0, len(snap.locations))
	for id := range snap.locations {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedProductIDs(quantities map[int64]int) []int64 {
	ids := make([]int64, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// canLocationFulfillAll reports whether one location can cover every
// requested quantity within its packable stock.
func canLocationFulfillAll(snap *snapshot, locationID int64, quantities map[int64]int) bool {
	if !snap.hasPackages(locationID) {
		return false
	}
	for productID, requested := range quantities {
		info, ok := snap.products[productID]
		if !ok {
			return false
		}
		stock, ok := info.stockByLocation[locationID]
		if !ok || stock.packable() < requested {
			return false
		}
	}
	return true
}

func singleLocationCandidate(locationID int64, quantities map[int64]int) *candidate {
	c := newCandidate(StrategySingleLocation)
	alloc := make(map[int64]int, len(quantities))
	for productID, qty := range quantities {
		alloc[productID] = qty
	}
	c.allocation[locationID] = alloc
	c.canFulfill = true
	return c
}

// greedyConsolidationCandidate fills the order from as few locations as
// possible by visiting locations in order of how many distinct requested
// products they can supply.
func greedyConsolidationCandidate(snap *snapshot, quantities map[int64]int) *candidate {
	c := newCandidate(StrategyConsolidation)

	remaining := make(map[int64]int, len(quantities))
	for productID, qty := range quantities {
		remaining[productID] = qty
	}

	coverage := func(locationID int64) int {
		count := 0
		for _, info := range snap.products {
			if stock, ok := info.stockByLocation[locationID]; ok && stock.packable() > 0 {
				count++
			}
		}
		return count
	}

	locationIDs := make([]int64, 0, len(snap.locations))
	for _, id := range sortedLocationIDs(snap) {
		if snap.hasPackages(id) {
			locationIDs = append(locationIDs, id)
		}
	}
	sort.SliceStable(locationIDs, func(i, j int) bool {
		return coverage(locationIDs[i]) > coverage(locationIDs[j])
	})

	for _, locationID := range locationIDs {
		var alloc map[int64]int
		for _, productID := range sortedProductIDs(remaining) {
			left := remaining[productID]
			if left <= 0 {
				continue
			}
			info, ok := snap.products[productID]
			if !ok {
				continue
			}
			stock, ok := info.stockByLocation[locationID]
			if !ok {
				continue
			}
			take := min(left, stock.packable())
			if take > 0 {
				if alloc == nil {
					alloc = make(map[int64]int)
				}
				alloc[productID] = take
				remaining[productID] = left - take
			}
		}
		if alloc != nil {
			c.allocation[locationID] = alloc
		}
	}

	c.shortfall = totalRemaining(remaining)
	c.canFulfill = c.shortfall == 0
	return c
}

// greedyStockCandidate allocates each product from its deepest packable
// stock first, product by product.
func greedyStockCandidate(snap *snapshot, quantities map[int64]int) *candidate {
	c := newCandidate(StrategyHighestStock)

	remaining := make(map[int64]int, len(quantities))
	for _, productID := range sortedProductIDs(quantities) {
		left := quantities[productID]
		info, ok := snap.products[productID]
		if !ok {
			remaining[productID] = left
			continue
		}

		locationIDs := make([]int64, 0, len(info.stockByLocation))
		for locationID := range info.stockByLocation {
			if snap.hasPackages(locationID) {
				locationIDs = append(locationIDs, locationID)
			}
		}
		sort.Slice(locationIDs, func(i, j int) bool {
			left, right := info.stockByLocation[locationIDs[i]].packable(), info.stockByLocation[locationIDs[j]].packable()
			if left != right {
				return left > right
			}
			return locationIDs[i] < locationIDs[j]
		})

		for _, locationID := range locationIDs {
			if left <= 0 {
				break
			}
			take := min(left, info.stockByLocation[locationID].packable())
			if take > 0 {
				alloc, ok := c.allocation[locationID]
				if !ok {
					alloc = make(map[int64]int)
					c.allocation[locationID] = alloc
				}
				alloc[productID] = take
				left -= take
			}
		}
		remaining[productID] = left
	}

	c.shortfall = totalRemaining(remaining)
	c.canFulfill = c.shortfall == 0
	return c
}

// customCandidate builds the single candidate for caller-pinned allocations.
// Unknown products and locations are rejected, everything else is taken
// verbatim: the caller owns the consequences of exceeding stock.
func customCandidate(snap *snapshot, entries []AllocationEntry) (*candidate, error) {
	c := newCandidate(StrategyCustom)
	var errs []string

	for _, entry := range entries {
		if entry.Quantity <= 0 {
			continue
		}
		info, ok := snap.products[entry.ProductID]
		if !ok {
			errs = append(errs, fmt.Sprintf("Product ID %d not found", entry.ProductID))
			continue
		}
		if _, ok := snap.location(entry.LocationID); !ok {
			errs = append(errs, fmt.Sprintf("Product '%s': Location ID %d not found", info.product.Title, entry.LocationID))
			continue
		}
		alloc, ok := c.allocation[entry.LocationID]
		if !ok {
			alloc = make(map[int64]int)
			c.allocation[entry.LocationID] = alloc
		}
		alloc[entry.ProductID] += entry.Quantity
	}

	if len(errs) > 0 {
		return nil, newInfeasible("Custom allocation validation failed:\n %s", strings.Join(errs, "\n• "))
	}
	if len(c.allocation) == 0 {
		return nil, newInfeasible("No valid allocations specified")
	}

	c.canFulfill = true
	return c, nil
}

// AllocationEntry is one caller-pinned product/location/quantity line.
type AllocationEntry struct {
	ProductID  int64
	LocationID int64
	Quantity   int
}

// dedupCandidates drops candidates whose allocation is identical to an
// earlier one. The key is a canonical rendering of the allocation with
// locations and products in ascending id order.
func dedupCandidates(candidates []*candidate) []*candidate {
	seen := make(map[string]bool, len(candidates))
	unique := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		key := allocationKey(c.allocation)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, c)
		}
	}
	return unique
}

func allocationKey(a model.Allocation) string {
	locationIDs := make([]int64, 0, len(a))
	for id := range a {
		locationIDs = append(locationIDs, id)
	}
	sort.Slice(locationIDs, func(i, j int) bool { return locationIDs[i] < locationIDs[j] })

	var b strings.Builder
	for _, locationID := range locationIDs {
		fmt.Fprintf(&b, "%d:{", locationID)
		for _, productID := range sortedProductIDs(a[locationID]) {
			fmt.Fprintf(&b, "%d=%d,", productID, a[locationID][productID])
		}
		b.WriteString("};")
	}
	return b.String()
}

// reallocateFromUnserviceable moves a candidate's allocation away from
// locations no courier serves, spreading each displaced product across the
// serviceable locations with the deepest remaining packable stock. Quantity
// that cannot be rehomed becomes shortfall.
func reallocateFromUnserviceable(c *candidate, snap *snapshot, serviceable, unserviceable map[int64]bool) {
	displaced := make(map[int64]int)
	for locationID, alloc := range c.allocation {
		if !unserviceable[locationID] {
			continue
		}
		for productID, qty := range alloc {
			displaced[productID] += qty
		}
		delete(c.allocation, locationID)
	}
	if len(displaced) == 0 {
		return
	}

	allocated := func(locationID, productID int64) int {
		return c.allocation[locationID][productID]
	}

	for _, productID := range sortedProductIDs(displaced) {
		qty := displaced[productID]
		info, ok := snap.products[productID]
		if !ok {
			continue
		}

		locationIDs := make([]int64, 0, len(serviceable))
		for locationID := range serviceable {
			stock, ok := info.stockByLocation[locationID]
			if ok && stock.packable() > 0 && snap.hasPackages(locationID) {
				locationIDs = append(locationIDs, locationID)
			}
		}
		sort.Slice(locationIDs, func(i, j int) bool {
			left, right := info.stockByLocation[locationIDs[i]].packable(), info.stockByLocation[locationIDs[j]].packable()
			if left != right {
				return left > right
			}
			return locationIDs[i] < locationIDs[j]
		})

		for _, locationID := range locationIDs {
			if qty <= 0 {
				break
			}
			room := info.stockByLocation[locationID].packable() - allocated(locationID, productID)
			if room <= 0 {
				continue
			}
			take := min(qty, room)
			alloc, ok := c.allocation[locationID]
			if !ok {
				alloc = make(map[int64]int)
				c.allocation[locationID] = alloc
			}
			alloc[productID] += take
			qty -= take
		}

		if qty > 0 {
			c.canFulfill = false
			c.shortfall += qty
		}
	}
}

func totalRemaining(remaining map[int64]int) int {
	total := 0
	for _, qty := range remaining {
		total += qty
	}
	return total
}
