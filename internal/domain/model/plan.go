package model

import "github.com/shopspring/decimal"

// CourierOption is one serviceable courier quote for a shipment route.
type CourierOption struct {
	// CourierCompanyID identifies the courier at the shipping provider.
	CourierCompanyID int64 `json:"courier_company_id" example:"24"`
	// Name is the courier display name.
	Name string `json:"courier_name" example:"Delhivery Surface"`
	// Rate is the total quoted price for the shipment.
	Rate decimal.Decimal `json:"rate" example:"312.5"`
	// FreightCharge is the freight component of the rate.
	FreightCharge decimal.Decimal `json:"freight_charge" example:"280"`
	// CODCharge is the cash-on-delivery surcharge, zero for prepaid.
	CODCharge decimal.Decimal `json:"cod_charges" example:"0"`
	// EstimatedDeliveryDays is the courier's delivery estimate.
	EstimatedDeliveryDays string `json:"estimated_delivery_days" example:"4"`
	// MinWeightKg is the courier's chargeable minimum weight.
	MinWeightKg decimal.Decimal `json:"min_weight" example:"0.5"`
	// Rating is the courier's service rating, when the provider reports one.
	Rating float64 `json:"rating,omitempty" example:"4.2"`
}

// PackageProducts records which products, and how many units of each, went
// into the packages of one PackageUsage entry.
type PackageProducts struct {
	ProductID int64 `json:"product_id" example:"101"`
	Quantity  int   `json:"quantity" example:"2"`
}

// PackageUsage is the consumption of one package type inside a shipment.
type PackageUsage struct {
	// Package is the package type consumed.
	Package PackageType `json:"package"`
	// QuantityUsed is how many packages of this type the shipment uses.
	QuantityUsed int `json:"quantity_used" example:"3"`
	// TotalCost is QuantityUsed times the package unit price.
	TotalCost decimal.Decimal `json:"total_cost" example:"15"`
	// Products lists the per-product unit counts packed into these packages.
	Products []PackageProducts `json:"products,omitempty"`
}

// ProductAllocation is the quantity of one product assigned to a shipment.
type ProductAllocation struct {
	ProductID int64  `json:"product_id" example:"101"`
	Title     string `json:"title" example:"Ceramic Vase"`
	Quantity  int    `json:"quantity" example:"4"`
	// WeightKg is the total weight of the allocated units.
	WeightKg decimal.Decimal `json:"weight_kgs" example:"6"`
}

// Shipment is a single physical dispatch from one pickup location. A
// shipment never exceeds the route's maximum courier weight.
type Shipment struct {
	// LocationID is the pickup location the shipment leaves from.
	LocationID int64 `json:"pickup_location_id" example:"3"`
	// LocationName is the pickup location nickname.
	LocationName string `json:"location_name" example:"Mumbai Warehouse"`
	// PickupPostcode is the origin postcode used for quoting.
	PickupPostcode string `json:"pickup_postcode" example:"400001"`
	// Products are the allocated product quantities in this shipment.
	Products []ProductAllocation `json:"products"`
	// Packages are the package types consumed by this shipment.
	Packages []PackageUsage `json:"packages,omitempty"`
	// TotalWeightKg is the summed product weight of the shipment.
	TotalWeightKg decimal.Decimal `json:"total_weight_kgs" example:"5.5"`
	// TotalQuantity is the summed unit count of the shipment.
	TotalQuantity int `json:"total_quantity" example:"6"`
	// PackagingCost is the summed package cost of the shipment.
	PackagingCost decimal.Decimal `json:"packaging_cost" example:"15"`
	// ShippingCost is the selected courier rate, zero when no courier serves
	// the route.
	ShippingCost decimal.Decimal `json:"shipping_cost" example:"312.5"`
	// Couriers are all serviceable quotes for the route, cheapest first.
	Couriers []CourierOption `json:"available_couriers,omitempty"`
	// SelectedCourier is the cheapest serviceable quote, nil when the route
	// has none.
	SelectedCourier *CourierOption `json:"selected_courier,omitempty"`
}

// TotalCost returns packaging plus shipping cost for the shipment.
func (s Shipment) TotalCost() decimal.Decimal {
	return s.PackagingCost.Add(s.ShippingCost)
}

// Allocation maps pickup location id -> product id -> allocated units.
type Allocation map[int64]map[int64]int

// Clone returns a deep copy of the allocation.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for locID, products := range a {
		cp := make(map[int64]int, len(products))
		for productID, qty := range products {
			cp[productID] = qty
		}
		out[locID] = cp
	}
	return out
}

// TotalUnits returns the summed allocated quantity across all locations.
func (a Allocation) TotalUnits() int {
	total := 0
	for _, products := range a {
		for _, qty := range products {
			total += qty
		}
	}
	return total
}

// Candidate is one fully evaluated allocation strategy.
type Candidate struct {
	// Strategy names the generator that produced the candidate.
	Strategy string `json:"strategy" example:"single_location"`
	// Allocation is the per-location product assignment.
	Allocation Allocation `json:"-"`
	// Shipments are the weight-bounded dispatches the allocation splits into.
	Shipments []Shipment `json:"shipments"`
	// PackagingCost, ShippingCost and TotalCost are summed over shipments.
	PackagingCost decimal.Decimal `json:"packaging_cost" example:"30"`
	ShippingCost  decimal.Decimal `json:"shipping_cost" example:"625"`
	TotalCost     decimal.Decimal `json:"total_cost" example:"655"`
	// CouriersAvailable is true when every shipment has a serviceable courier.
	CouriersAvailable bool `json:"couriers_available" example:"true"`
	// UnavailabilityReason explains a false CouriersAvailable.
	UnavailabilityReason string `json:"unavailability_reason,omitempty"`
}

// Plan is the final optimization result: the cheapest evaluated candidate
// plus order-level totals.
type Plan struct {
	// Description is a human-readable summary of the chosen strategy, e.g.
	// "All from Mumbai Warehouse (2 shipments)".
	Description string `json:"description" example:"All from Mumbai Warehouse (1 shipment)"`
	// Strategy names the winning candidate's generator.
	Strategy string `json:"strategy" example:"single_location"`
	// Shipments are the dispatches of the winning candidate.
	Shipments []Shipment `json:"shipments"`
	// ShipmentCount is len(Shipments).
	ShipmentCount int `json:"shipment_count" example:"1"`
	// PackagingCost, ShippingCost and TotalCost summed over shipments.
	PackagingCost decimal.Decimal `json:"packaging_cost" example:"30"`
	ShippingCost  decimal.Decimal `json:"shipping_cost" example:"625"`
	TotalCost     decimal.Decimal `json:"total_cost" example:"655"`
	// TotalQuantity is the summed requested unit count of the order.
	TotalQuantity int `json:"total_quantity" example:"6"`
	// TotalProductCount is the number of distinct products requested.
	TotalProductCount int `json:"total_product_count" example:"2"`
	// CanFulfillOrder is false when part of the requested quantity could not
	// be allocated to any serviceable location.
	CanFulfillOrder bool `json:"can_fulfill_order" example:"true"`
	// Shortfall is the number of requested units the plan does not ship.
	Shortfall int `json:"shortfall,omitempty" example:"0"`
	// AllCouriersAvailable mirrors the winning candidate's courier coverage.
	AllCouriersAvailable bool `json:"all_couriers_available" example:"true"`
	// UnavailabilityReason explains a false AllCouriersAvailable.
	UnavailabilityReason string `json:"unavailability_reason,omitempty"`
}
