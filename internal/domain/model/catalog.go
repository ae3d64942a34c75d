// Package model defines the core domain entities for the fulfillment service.
package model

import "github.com/shopspring/decimal"

// Product is an immutable snapshot of a sellable item for the duration of
// one optimization request.
type Product struct {
	// ID is the product identifier.
	ID int64 `json:"product_id" example:"101"`
	// Title is the display name of the product.
	Title string `json:"title" example:"Ceramic Vase"`
	// WeightKg is the weight of a single unit in kilograms.
	WeightKg decimal.Decimal `json:"weight_kgs" example:"1.5"`
	// Length, Breadth and Height are the unit dimensions in centimeters.
	Length  decimal.Decimal `json:"length" example:"20"`
	Breadth decimal.Decimal `json:"breadth" example:"15"`
	Height  decimal.Decimal `json:"height" example:"10"`
}

// Volume returns the unit volume in cubic centimeters. Products with missing
// dimensions report zero volume and fit any package on the volume axis.
func (p Product) Volume() decimal.Decimal {
	return p.Length.Mul(p.Breadth).Mul(p.Height)
}

// HasDimensions reports whether any dimension is set on the product.
func (p Product) HasDimensions() bool {
	return !p.Length.IsZero() || !p.Breadth.IsZero() || !p.Height.IsZero()
}

// PackageType describes a physical package stocked at one pickup location.
type PackageType struct {
	// ID is the package type identifier.
	ID int64 `json:"package_id" example:"7"`
	// Name is the display name, e.g. "Medium Box".
	Name string `json:"package_name" example:"Medium Box"`
	// Kind is the package category, e.g. "box" or "envelope".
	Kind string `json:"package_type" example:"box"`
	// Length, Breadth and Height are inner dimensions in centimeters.
	Length  int `json:"length" example:"40"`
	Breadth int `json:"breadth" example:"30"`
	Height  int `json:"height" example:"20"`
	// MaxWeightKg is the maximum content weight the package supports.
	MaxWeightKg decimal.Decimal `json:"max_weight" example:"10"`
	// PricePerUnit is the cost of consuming one package.
	PricePerUnit decimal.Decimal `json:"price_per_unit" example:"5"`
	// Available is how many of this package the location has in stock.
	Available int `json:"available_quantity" example:"25"`
}

// Volume returns the package's inner volume in cubic centimeters.
func (p PackageType) Volume() decimal.Decimal {
	return decimal.NewFromInt(int64(p.Length) * int64(p.Breadth) * int64(p.Height))
}

// Fits reports whether a single item with the given volume and weight can be
// placed into an empty package of this type.
func (p PackageType) Fits(itemVolume, itemWeight decimal.Decimal) bool {
	return p.Volume().GreaterThanOrEqual(itemVolume) && p.MaxWeightKg.GreaterThanOrEqual(itemWeight)
}

// PickupLocation is a shippable origin. A location with no package types
// cannot fulfill any shipment.
type PickupLocation struct {
	// ID is the pickup location identifier.
	ID int64 `json:"pickup_location_id" example:"3"`
	// Name is the display nickname of the location.
	Name string `json:"location_name" example:"Mumbai Warehouse"`
	// PostalCode is the pickup postcode used for courier quoting.
	PostalCode string `json:"postal_code" example:"400001"`
	// Packages are the package types stocked at this location.
	Packages []PackageType `json:"packages,omitempty"`
}

// Catalog is the read-only data snapshot one optimization request operates
// on. It is assembled by the repository layer at the start of a request and
// discarded afterwards.
type Catalog struct {
	// Products keyed by product id.
	Products map[int64]Product
	// Locations keyed by pickup location id.
	Locations map[int64]PickupLocation
	// Stock maps product id -> location id -> available units.
	Stock map[int64]map[int64]int
}

// StockAt returns the available units of a product at a location.
func (c Catalog) StockAt(productID, locationID int64) int {
	return c.Stock[productID][locationID]
}
