// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

// AllocationMode controls how the optimizer chooses pickup locations.
const (
	// ModeAuto lets the optimizer generate and compare allocation strategies.
	ModeAuto = "auto"
	// ModeCustom uses the caller-supplied allocation verbatim.
	ModeCustom = "custom"
)

// OrderItem is one requested product line in an optimization request.
type OrderItem struct {
	// ProductID identifies the requested product.
	ProductID int64 `json:"product_id" binding:"required,gt=0" example:"101" minimum:"1"`
	// Quantity is the number of units requested. Must be greater than 0.
	Quantity int `json:"quantity" binding:"required,gt=0" example:"4" minimum:"1"`
} // @name OrderItem

// CustomAllocationEntry pins a product quantity to a pickup location in
// custom mode.
type CustomAllocationEntry struct {
	ProductID        int64 `json:"product_id" binding:"required,gt=0" example:"101"`
	PickupLocationID int64 `json:"pickup_location_id" binding:"required,gt=0" example:"3"`
	Quantity         int   `json:"quantity" binding:"required,gt=0" example:"4"`
} // @name CustomAllocationEntry

// OptimizeOrderRequest represents the JSON request body for the order
// optimization endpoint.
//
// Items is required and every line must have a positive quantity. Mode
// defaults to "auto"; in "custom" mode the Allocation field is required and
// is evaluated as the only candidate.
//
// @Description Request to compute the cheapest fulfillment plan for an order
// @Example {"delivery_postcode": "560001", "payment_mode": "prepaid", "items": [{"product_id": 101, "quantity": 4}]}
type OptimizeOrderRequest struct {
	// DeliveryPostcode is the destination postcode. Required.
	DeliveryPostcode string `json:"delivery_postcode" binding:"required" example:"560001"`
	// PaymentMode is "prepaid" or "cod". Defaults to prepaid.
	PaymentMode string `json:"payment_mode,omitempty" example:"prepaid"`
	// Items are the requested product lines. At least one is required.
	Items []OrderItem `json:"items" binding:"required,min=1,dive"`
	// Mode is "auto" (default) or "custom".
	Mode string `json:"mode,omitempty" example:"auto"`
	// Allocation is the caller's fixed allocation, used only in custom mode.
	Allocation []CustomAllocationEntry `json:"allocation,omitempty"`
} // @name OptimizeOrderRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

var (
	// ErrNoItems is returned when the order has no product lines.
	ErrNoItems = &ValidationError{
		Field:   "items",
		Message: "at least one item is required",
	}
	// ErrInvalidQuantity is returned when a line quantity is not positive.
	ErrInvalidQuantity = &ValidationError{
		Field:   "items.quantity",
		Message: "must be a positive integer",
	}
	// ErrInvalidMode is returned when mode is neither auto nor custom.
	ErrInvalidMode = &ValidationError{
		Field:   "mode",
		Message: "must be \"auto\" or \"custom\"",
	}
	// ErrMissingAllocation is returned when custom mode has no allocation.
	ErrMissingAllocation = &ValidationError{
		Field:   "allocation",
		Message: "required when mode is \"custom\"",
	}
	// ErrMissingPostcode is returned when the delivery postcode is empty.
	ErrMissingPostcode = &ValidationError{
		Field:   "delivery_postcode",
		Message: "is required",
	}
)

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate performs custom validation on the request and normalizes the
// Mode and PaymentMode defaults. Returns an error if validation fails.
func (r *OptimizeOrderRequest) Validate() error {
	if r.DeliveryPostcode == "" {
		return ErrMissingPostcode
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if r.Mode == "" {
		r.Mode = ModeAuto
	}
	switch r.Mode {
	case ModeAuto:
	case ModeCustom:
		if len(r.Allocation) == 0 {
			return ErrMissingAllocation
		}
	default:
		return ErrInvalidMode
	}
	if r.PaymentMode == "" {
		r.PaymentMode = "prepaid"
	}
	return nil
}

// IsCOD reports whether the order is cash on delivery.
func (r *OptimizeOrderRequest) IsCOD() bool {
	return r.PaymentMode == "cod"
}

// ShippingOptionsRequest represents the JSON request body for the raw
// courier serviceability endpoint.
//
// @Description Request to list serviceable couriers for a route and weight
type ShippingOptionsRequest struct {
	// PickupPostcode is the origin postcode. Required.
	PickupPostcode string `json:"pickup_postcode" binding:"required" example:"400001"`
	// DeliveryPostcode is the destination postcode. Required.
	DeliveryPostcode string `json:"delivery_postcode" binding:"required" example:"560001"`
	// WeightKg is the shipment weight in kilograms. Must be greater than 0.
	WeightKg float64 `json:"weight_kgs" binding:"required,gt=0" example:"2.5"`
	// PaymentMode is "prepaid" or "cod". Defaults to prepaid.
	PaymentMode string `json:"payment_mode,omitempty" example:"prepaid"`
} // @name ShippingOptionsRequest

// IsCOD reports whether the quote is for cash on delivery.
func (r *ShippingOptionsRequest) IsCOD() bool {
	return r.PaymentMode == "cod"
}
