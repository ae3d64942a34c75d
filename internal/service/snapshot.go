package service

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// defaultUnitWeightKg substitutes for products with no recorded weight so
// courier quoting always has a chargeable weight.
var defaultUnitWeightKg = decimal.NewFromFloat(0.5)

// locationStock is the working view of one product's availability at one
// location: raw stock plus how much of it the location can actually pack.
type locationStock struct {
	available   int
	maxPackable int
	issue       string
}

// packable is the effective sellable quantity, the lower of stock and
// packing capacity.
func (s *locationStock) packable() int {
	if s.available < s.maxPackable {
		return s.available
	}
	return s.maxPackable
}

// productInfo is the request-scoped view of one requested product.
type productInfo struct {
	product         model.Product
	weightKg        decimal.Decimal
	stockByLocation map[int64]*locationStock
}

// snapshot is the fully prepared working state for one optimization request.
// All packing capacity is computed up front so the candidate generators and
// the feasibility check operate on plain integers.
type snapshot struct {
	products  map[int64]*productInfo
	locations map[int64]model.PickupLocation
}

// location returns the pickup location and whether it is known.
func (s *snapshot) location(id int64) (model.PickupLocation, bool) {
	loc, ok := s.locations[id]
	return loc, ok
}

// hasPackages reports whether the location stocks any package type.
func (s *snapshot) hasPackages(locationID int64) bool {
	loc, ok := s.locations[locationID]
	return ok && len(loc.Packages) > 0
}

// buildSnapshot prepares the working state for the requested products. Only
// locations that hold stock of a requested product are included. For every
// product/location pair the estimator is run against the full stock to find
// the location's true packing capacity.
func buildSnapshot(catalog *model.Catalog, quantities map[int64]int, estimator *PackingEstimator) *snapshot {
	snap := &snapshot{
		products:  make(map[int64]*productInfo, len(quantities)),
		locations: make(map[int64]model.PickupLocation),
	}

	for productID := range quantities {
		product, ok := catalog.Products[productID]
		if !ok {
			continue
		}
		weight := product.WeightKg
		if weight.IsZero() {
			weight = defaultUnitWeightKg
		}
		info := &productInfo{
			product:         product,
			weightKg:        weight,
			stockByLocation: make(map[int64]*locationStock),
		}

		for locationID, units := range catalog.Stock[productID] {
			loc, ok := catalog.Locations[locationID]
			if !ok {
				continue
			}
			if _, seen := snap.locations[locationID]; !seen {
				snap.locations[locationID] = loc
			}
			info.stockByLocation[locationID] = &locationStock{available: units}
		}

		snap.products[productID] = info
	}

	for _, info := range snap.products {
		for locationID, stock := range info.stockByLocation {
			loc := snap.locations[locationID]
			if len(loc.Packages) == 0 {
				stock.maxPackable = 0
				continue
			}
			fillPackingCapacity(info, stock, loc.Packages, estimator)
		}
	}

	return snap
}

// fillPackingCapacity computes maxPackable for one product at one location.
//
// A product that exceeds every package type on volume or weight cannot be
// packed at all. A product with no recorded dimensions is assumed to fit.
// When the product fits but the location's package counts are all zero, the
// stock is still treated as packable so the shortfall surfaces as a package
// availability problem rather than a phantom stock problem.
func fillPackingCapacity(info *productInfo, stock *locationStock, packages []model.PackageType, estimator *PackingEstimator) {
	fitsSomewhere := !info.product.HasDimensions()
	if !fitsSomewhere {
		volume := info.product.Volume()
		for _, p := range packages {
			if p.Fits(volume, info.product.WeightKg) {
				fitsSomewhere = true
				break
			}
		}
	}

	if !fitsSomewhere {
		stock.maxPackable = 0
		stock.issue = "product dimensions or weight exceed all available package limits"
		return
	}

	estimate := estimator.MaxPackable(info.product, stock.available, packages)
	stock.maxPackable = estimate.PackedUnits

	if stock.maxPackable == 0 && stock.available > 0 {
		anyAvailable := false
		for _, p := range packages {
			if p.Available > 0 {
				anyAvailable = true
				break
			}
		}
		if !anyAvailable {
			stock.maxPackable = stock.available
			stock.issue = "product fits in package types but no packages available (all have 0 quantity)"
			return
		}
	}
	if !estimate.PackedAll() {
		stock.issue = estimate.Issue
	}
}

// totalPackable sums min(stock, packable capacity) across all locations.
func (p *productInfo) totalPackable() int {
	total := 0
	for _, s := range p.stockByLocation {
		total += s.packable()
	}
	return total
}

// totalStock sums raw units across all locations.
func (p *productInfo) totalStock() int {
	total := 0
	for _, s := range p.stockByLocation {
		total += s.available
	}
	return total
}
