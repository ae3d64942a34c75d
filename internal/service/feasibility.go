package service

import (
	"fmt"
	"sort"
)

// InfeasibleError reports that an order cannot be fulfilled as requested.
// Its message names the first failing product and the dominant cause.
type InfeasibleError struct {
	Message string
}

func (e *InfeasibleError) Error() string { return e.Message }

// newInfeasible formats an InfeasibleError.
func newInfeasible(format string, args ...interface{}) *InfeasibleError {
	return &InfeasibleError{Message: fmt.Sprintf(format, args...)}
}

// checkFeasibility verifies that every requested product can be sourced and
// packed from the network as a whole. It returns nil when the order is
// fulfillable and an InfeasibleError naming the first failing product
// otherwise.
//
// For a failing product the cause is narrowed in order: unknown product, no
// stock anywhere, no packages configured at any stocking location, packages
// configured but all at zero quantity, product too large or heavy for every
// package type, enough stock but zero packing capacity, and finally the
// generic stock-versus-packability shortfall. Products are checked in id
// order so the reported error is deterministic.
func checkFeasibility(snap *snapshot, quantities map[int64]int) error {
	productIDs := make([]int64, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	for _, productID := range productIDs {
		requested := quantities[productID]

		info, ok := snap.products[productID]
		if !ok {
			return newInfeasible("Product ID %d not found", productID)
		}

		totalPackable := info.totalPackable()
		if totalPackable >= requested {
			continue
		}

		totalStock := info.totalStock()
		title := info.product.Title

		hasPackagesConfigured := false
		hasAvailablePackages := false
		fitsAnyPackage := !info.product.HasDimensions()
		volume := info.product.Volume()
		var packagingIssue string

		for locationID, stock := range info.stockByLocation {
			loc, ok := snap.location(locationID)
			if !ok {
				continue
			}
			if len(loc.Packages) > 0 {
				hasPackagesConfigured = true
			}
			for _, p := range loc.Packages {
				if p.Available > 0 {
					hasAvailablePackages = true
				}
				if p.Fits(volume, info.product.WeightKg) {
					fitsAnyPackage = true
				}
			}
			if packagingIssue == "" && stock.issue != "" {
				packagingIssue = stock.issue
			}
		}
		if !hasPackagesConfigured {
			fitsAnyPackage = false
		}

		switch {
		case totalStock == 0:
			return newInfeasible(
				"Insufficient stock for product '%s'. Requested: %d, Available stock: 0",
				title, requested)
		case !hasPackagesConfigured:
			return newInfeasible(
				"Product '%s' cannot be packaged. Stock available: %d, but no packages are configured at pickup locations. Requested: %d",
				title, totalStock, requested)
		case !hasAvailablePackages:
			return newInfeasible(
				"Product '%s' cannot be packaged. Stock available: %d, but no packages are available at pickup locations (all packages have 0 quantity). Requested: %d",
				title, totalStock, requested)
		case !fitsAnyPackage:
			return newInfeasible(
				"Product '%s' cannot be packaged. Stock available: %d, but product dimensions/weight exceed all available package limits. Requested: %d",
				title, totalStock, requested)
		case totalStock >= requested && totalPackable == 0:
			detail := packagingIssue
			if detail == "" {
				detail = "not enough packages available to pack the requested quantity"
			}
			return newInfeasible(
				"Product '%s' cannot be packaged with available packages. Stock available: %d, but %s. Requested: %d",
				title, totalStock, detail, requested)
		default:
			return newInfeasible(
				"Insufficient stock/packaging for product '%s'. Requested: %d, Available stock: %d, Packable (considering packaging constraints): %d",
				title, requested, totalStock, totalPackable)
		}
	}

	return nil
}
