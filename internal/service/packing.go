package service

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// ItemDemand is one product with a requested unit count, the input unit of
// the packing estimator.
type ItemDemand struct {
	Product  model.Product
	Quantity int
}

// PackingResult reports how a demand packs into a location's packages.
type PackingResult struct {
	// Usages lists the consumed package types, sorted by package name.
	Usages []model.PackageUsage
	// TotalCost is the summed package cost.
	TotalCost decimal.Decimal
	// PackagesUsed is the total number of physical packages consumed.
	PackagesUsed int
	// PackedUnits is how many units were actually placed. When the location
	// runs out of packages this is less than the requested total.
	PackedUnits int
	// PackedByProduct is the per-product placed unit count.
	PackedByProduct map[int64]int
	// Issue is a human-readable reason when not all units could be packed.
	Issue string
}

// PackedAll reports whether every requested unit was placed.
func (r PackingResult) PackedAll() bool { return r.Issue == "" }

// PackingEstimator packs product units into a location's package inventory
// using a first-fit-decreasing heuristic that favors cheap volume.
//
// The estimator is stateless and safe for concurrent use. Every call works
// on its own copy of the package inventory, so two estimates over the same
// location never interfere.
type PackingEstimator struct{}

// NewPackingEstimator creates a new PackingEstimator.
func NewPackingEstimator() *PackingEstimator {
	return &PackingEstimator{}
}

// binState tracks one opened physical package and its remaining capacity.
type binState struct {
	pkg           *pkgInventory
	usedVolume    float64
	usedWeight    float64
	productCounts map[int64]int
}

func (b *binState) remainingVolume() float64 {
	return b.pkg.volume - b.usedVolume
}

func (b *binState) canFit(itemVolume, itemWeight float64) bool {
	return b.remainingVolume() >= itemVolume && b.pkg.maxWeight-b.usedWeight >= itemWeight
}

func (b *binState) add(productID int64, itemVolume, itemWeight float64) {
	b.usedVolume += itemVolume
	b.usedWeight += itemWeight
	b.productCounts[productID]++
}

// pkgInventory is a mutable working copy of a package type's availability.
type pkgInventory struct {
	spec      model.PackageType
	volume    float64
	maxWeight float64
	remaining int
}

// packItem is a single unit awaiting placement.
type packItem struct {
	productID int64
	volume    float64
	weight    float64
}

// Estimate packs the given demands into the location's packages. Different
// products share a package when volume and weight allow it.
//
// Units are placed largest volume first. A unit goes into the opened package
// it fills tightest; when none fits, a new package is opened, preferring the
// cheapest volume that still fits the unit and falling back to the largest
// available package. Placement stops when the inventory runs out.
func (e *PackingEstimator) Estimate(demands []ItemDemand, packages []model.PackageType) PackingResult {
	result := PackingResult{
		TotalCost:       decimal.Zero,
		PackedByProduct: make(map[int64]int, len(demands)),
	}

	requestedUnits := 0
	items := make([]packItem, 0)
	for _, d := range demands {
		result.PackedByProduct[d.Product.ID] = 0
		requestedUnits += d.Quantity
		volume := d.Product.Volume().InexactFloat64()
		weight := d.Product.WeightKg.InexactFloat64()
		for i := 0; i < d.Quantity; i++ {
			items = append(items, packItem{productID: d.Product.ID, volume: volume, weight: weight})
		}
	}
	if len(items) == 0 {
		return result
	}

	// Largest volume first, product id breaks ties so runs are reproducible.
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].volume != items[j].volume {
			return items[i].volume > items[j].volume
		}
		return items[i].productID < items[j].productID
	})

	inventory := makeInventory(packages)

	var bins []*binState
	packedUnits := 0

	for _, item := range items {
		// Tightest fit among opened packages first.
		sort.SliceStable(bins, func(i, j int) bool {
			left := bins[i].remainingVolume() - item.volume
			right := bins[j].remainingVolume() - item.volume
			if left < 0 {
				left = maxFloat
			}
			if right < 0 {
				right = maxFloat
			}
			return left < right
		})

		placed := false
		for _, bin := range bins {
			if bin.canFit(item.volume, item.weight) {
				bin.add(item.productID, item.volume, item.weight)
				placed = true
				break
			}
		}

		if !placed {
			if next := nextSuitablePackage(inventory, item.volume, item.weight); next != nil {
				next.remaining--
				bin := &binState{pkg: next, productCounts: make(map[int64]int)}
				bin.add(item.productID, item.volume, item.weight)
				bins = append(bins, bin)
				placed = true
			}
		}

		if !placed {
			break
		}

		result.PackedByProduct[item.productID]++
		packedUnits++
	}

	result.PackedUnits = packedUnits
	result.Usages = aggregateUsages(bins, packages)
	for _, u := range result.Usages {
		result.TotalCost = result.TotalCost.Add(u.TotalCost)
		result.PackagesUsed += u.QuantityUsed
	}
	if packedUnits < requestedUnits {
		result.Issue = fmt.Sprintf("not enough packages to pack all items, can only pack %d of %d", packedUnits, requestedUnits)
	}
	return result
}

// MaxPackable returns how many units of a single product the location's
// package inventory can absorb, capped by the given unit count.
func (e *PackingEstimator) MaxPackable(product model.Product, units int, packages []model.PackageType) PackingResult {
	return e.Estimate([]ItemDemand{{Product: product, Quantity: units}}, packages)
}

const maxFloat = float64(1 << 62)

func makeInventory(packages []model.PackageType) []*pkgInventory {
	inventory := make([]*pkgInventory, 0, len(packages))
	for _, p := range packages {
		inventory = append(inventory, &pkgInventory{
			spec:      p,
			volume:    p.Volume().InexactFloat64(),
			maxWeight: p.MaxWeightKg.InexactFloat64(),
			remaining: p.Available,
		})
	}
	// Cheapest volume first. Package id breaks ties.
	sort.SliceStable(inventory, func(i, j int) bool {
		left, right := costPerVolume(inventory[i]), costPerVolume(inventory[j])
		if left != right {
			return left < right
		}
		return inventory[i].spec.ID < inventory[j].spec.ID
	})
	return inventory
}

func costPerVolume(p *pkgInventory) float64 {
	if p.volume <= 0 {
		return maxFloat
	}
	return p.spec.PricePerUnit.InexactFloat64() / p.volume
}

// nextSuitablePackage returns the first available package that fits the
// item, in cost-per-volume order. When nothing fits it returns the largest
// available package so that oversized demand still consumes inventory
// instead of failing outright.
func nextSuitablePackage(inventory []*pkgInventory, itemVolume, itemWeight float64) *pkgInventory {
	for _, p := range inventory {
		if p.remaining > 0 && p.volume >= itemVolume && p.maxWeight >= itemWeight {
			return p
		}
	}
	var largest *pkgInventory
	for _, p := range inventory {
		if p.remaining > 0 && (largest == nil || p.volume > largest.volume) {
			largest = p
		}
	}
	return largest
}

// aggregateUsages collapses opened packages into per-type usage entries,
// preserving the caller's package order and sorting by package name.
func aggregateUsages(bins []*binState, packages []model.PackageType) []model.PackageUsage {
	counts := make(map[int64]int)
	productsByPkg := make(map[int64]map[int64]int)
	for _, bin := range bins {
		id := bin.pkg.spec.ID
		counts[id]++
		agg, ok := productsByPkg[id]
		if !ok {
			agg = make(map[int64]int)
			productsByPkg[id] = agg
		}
		for productID, n := range bin.productCounts {
			agg[productID] += n
		}
	}

	usages := make([]model.PackageUsage, 0, len(counts))
	for _, p := range packages {
		count := counts[p.ID]
		if count == 0 {
			continue
		}
		usage := model.PackageUsage{
			Package:      p,
			QuantityUsed: count,
			TotalCost:    p.PricePerUnit.Mul(decimal.NewFromInt(int64(count))),
		}
		productIDs := make([]int64, 0, len(productsByPkg[p.ID]))
		for productID := range productsByPkg[p.ID] {
			productIDs = append(productIDs, productID)
		}
		sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })
		for _, productID := range productIDs {
			usage.Products = append(usage.Products, model.PackageProducts{
				ProductID: productID,
				Quantity:  productsByPkg[p.ID][productID],
			})
		}
		usages = append(usages, usage)
	}
	sort.SliceStable(usages, func(i, j int) bool {
		return usages[i].Package.Name < usages[j].Package.Name
	})
	return usages
}
