package service

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// splitShipments turns one location's allocation into weight-bounded
// shipments. An allocation under the route's maximum weight ships whole.
// Heavier allocations are split greedily, heaviest unit weight first, and
// the location's package usage is distributed across the resulting
// shipments in proportion to their unit counts.
func splitShipments(
	snap *snapshot,
	loc model.PickupLocation,
	productQtys map[int64]int,
	usages []model.PackageUsage,
	maxWeightPerShipment decimal.Decimal,
) []model.Shipment {
	allocations, totalWeight, totalQty := buildAllocations(snap, productQtys)

	if totalWeight.LessThanOrEqual(maxWeightPerShipment) {
		return []model.Shipment{newShipment(loc, allocations, usages, totalWeight, totalQty)}
	}

	type tracker struct {
		alloc         model.ProductAllocation
		remaining     int
		weightPerUnit decimal.Decimal
	}
	trackers := make([]*tracker, 0, len(allocations))
	for _, alloc := range allocations {
		info, ok := snap.products[alloc.ProductID]
		if !ok {
			continue
		}
		trackers = append(trackers, &tracker{
			alloc:         alloc,
			remaining:     alloc.Quantity,
			weightPerUnit: info.weightKg,
		})
	}
	// Heaviest units first so the bulky products anchor each shipment.
	sort.SliceStable(trackers, func(i, j int) bool {
		return trackers[i].weightPerUnit.GreaterThan(trackers[j].weightPerUnit)
	})

	var groups [][]model.ProductAllocation
	var groupWeights []decimal.Decimal

	for {
		pending := false
		for _, t := range trackers {
			if t.remaining > 0 {
				pending = true
				break
			}
		}
		if !pending {
			break
		}

		var group []model.ProductAllocation
		groupWeight := decimal.Zero

		for _, t := range trackers {
			if t.remaining <= 0 {
				continue
			}
			capacity := maxWeightPerShipment.Sub(groupWeight)

			var unitsFit int
			if t.weightPerUnit.IsPositive() {
				unitsFit = int(capacity.Div(t.weightPerUnit).IntPart())
			} else {
				unitsFit = t.remaining
			}
			// A unit heavier than the whole limit still ships, alone.
			if unitsFit <= 0 && groupWeight.IsZero() {
				unitsFit = 1
			}
			if unitsFit <= 0 {
				continue
			}

			take := min(t.remaining, unitsFit)
			weight := t.weightPerUnit.Mul(decimal.NewFromInt(int64(take)))
			group = append(group, model.ProductAllocation{
				ProductID: t.alloc.ProductID,
				Title:     t.alloc.Title,
				Quantity:  take,
				WeightKg:  weight,
			})
			groupWeight = groupWeight.Add(weight)
			t.remaining -= take
		}

		if len(group) == 0 {
			break
		}
		groups = append(groups, group)
		groupWeights = append(groupWeights, groupWeight)
	}

	groupPackages := distributePackages(usages, groups)

	shipments := make([]model.Shipment, 0, len(groups))
	for i, group := range groups {
		qty := 0
		for _, alloc := range group {
			qty += alloc.Quantity
		}
		shipments = append(shipments, newShipment(loc, group, groupPackages[i], groupWeights[i], qty))
	}
	return shipments
}

// buildAllocations expands an allocation map into response allocations in
// product id order and returns the summed weight and quantity.
func buildAllocations(snap *snapshot, productQtys map[int64]int) ([]model.ProductAllocation, decimal.Decimal, int) {
	allocations := make([]model.ProductAllocation, 0, len(productQtys))
	totalWeight := decimal.Zero
	totalQty := 0

	for _, productID := range sortedProductIDs(productQtys) {
		qty := productQtys[productID]
		info, ok := snap.products[productID]
		if !ok {
			continue
		}
		weight := info.weightKg.Mul(decimal.NewFromInt(int64(qty)))
		allocations = append(allocations, model.ProductAllocation{
			ProductID: productID,
			Title:     info.product.Title,
			Quantity:  qty,
			WeightKg:  weight,
		})
		totalWeight = totalWeight.Add(weight)
		totalQty += qty
	}
	return allocations, totalWeight, totalQty
}

// distributePackages splits one location's package usage across shipment
// groups in proportion to each group's unit share. Counts round up, capped
// by what is left of the package type, so every physical package lands in
// exactly one shipment.
func distributePackages(usages []model.PackageUsage, groups [][]model.ProductAllocation) [][]model.PackageUsage {
	result := make([][]model.PackageUsage, len(groups))

	groupQtys := make([]int, len(groups))
	totalQty := 0
	for i, group := range groups {
		for _, alloc := range group {
			groupQtys[i] += alloc.Quantity
		}
		totalQty += groupQtys[i]
	}
	if totalQty == 0 {
		return result
	}

	for _, usage := range usages {
		inPackage := make(map[int64]bool, len(usage.Products))
		for _, p := range usage.Products {
			inPackage[p.ProductID] = true
		}

		remaining := usage.QuantityUsed
		for i := range groups {
			if remaining <= 0 {
				break
			}
			proportion := float64(groupQtys[i]) / float64(totalQty)
			count := int(math.Ceil(float64(usage.QuantityUsed) * proportion))
			count = min(count, remaining)
			if count <= 0 {
				continue
			}

			split := model.PackageUsage{
				Package:      usage.Package,
				QuantityUsed: count,
				TotalCost:    usage.Package.PricePerUnit.Mul(decimal.NewFromInt(int64(count))),
			}
			for _, alloc := range groups[i] {
				if inPackage[alloc.ProductID] {
					split.Products = append(split.Products, model.PackageProducts{
						ProductID: alloc.ProductID,
						Quantity:  alloc.Quantity,
					})
				}
			}

			result[i] = append(result[i], split)
			remaining -= count
		}
	}
	return result
}

// newShipment assembles a shipment and derives its packaging cost from the
// packages it carries.
func newShipment(
	loc model.PickupLocation,
	products []model.ProductAllocation,
	packages []model.PackageUsage,
	weight decimal.Decimal,
	qty int,
) model.Shipment {
	packagingCost := decimal.Zero
	for _, usage := range packages {
		packagingCost = packagingCost.Add(usage.TotalCost)
	}
	return model.Shipment{
		LocationID:     loc.ID,
		LocationName:   loc.Name,
		PickupPostcode: loc.PostalCode,
		Products:       products,
		Packages:       packages,
		TotalWeightKg:  weight,
		TotalQuantity:  qty,
		PackagingCost:  packagingCost,
		ShippingCost:   decimal.Zero,
	}
}
