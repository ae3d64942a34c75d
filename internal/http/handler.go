// Package http provides the HTTP transport layer for the fulfillment service.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/guttosm/fulfillment-service/internal/service"
)

// Handler provides HTTP handlers for order optimization routes.
type Handler struct {
	optimizer service.Optimizer
	shipping  service.ShippingOptions
}

// NewHandler creates a new Handler instance.
func NewHandler(optimizer service.Optimizer, shipping service.ShippingOptions) *Handler {
	return &Handler{
		optimizer: optimizer,
		shipping:  shipping,
	}
}

// OptimizeOrder handles POST /api/orders/optimize requests.
//
// @Summary      Optimize order fulfillment
// @Description  Computes the cheapest fulfillment plan for an order: which pickup locations ship which products, packed into which package types, via which couriers. In auto mode the service generates and compares allocation strategies; in custom mode the caller's allocation is priced verbatim.
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Param        request body dto.OptimizeOrderRequest true "Order to optimize"
// @Success      200 {object} dto.SuccessResponse "Cheapest fulfillment plan"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      422 {object} dto.ErrorResponse "Order cannot be fulfilled with current stock or packaging"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      502 {object} dto.ErrorResponse "Shipping provider unavailable"
// @Failure      504 {object} dto.ErrorResponse "Request timed out"
// @Router       /api/orders/optimize [post]
func (h *Handler) OptimizeOrder(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.OptimizeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		var vErr *dto.ValidationError
		if errors.As(err, &vErr) {
			metrics.RecordOptimization(0, "validation_error", 0)
			builder.ErrorWithMessage(http.StatusBadRequest, vErr.Error(), err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	order := service.OptimizeOrder{
		DeliveryPostcode: req.DeliveryPostcode,
		COD:              req.IsCOD(),
		Quantities:       make(map[int64]int, len(req.Items)),
	}
	for _, item := range req.Items {
		order.Quantities[item.ProductID] += item.Quantity
	}
	if req.Mode == dto.ModeCustom {
		order.Custom = make([]service.AllocationEntry, 0, len(req.Allocation))
		for _, entry := range req.Allocation {
			order.Custom = append(order.Custom, service.AllocationEntry{
				ProductID:  entry.ProductID,
				LocationID: entry.PickupLocationID,
				Quantity:   entry.Quantity,
			})
		}
	}

	start := time.Now()
	plan, err := h.optimizer.Optimize(c.Request.Context(), order)
	duration := time.Since(start)

	if err != nil {
		var infeasible *service.InfeasibleError
		switch {
		case errors.As(err, &infeasible):
			metrics.RecordOptimization(duration, "infeasible", 0)
			builder.ErrorWithMessage(http.StatusUnprocessableEntity, infeasible.Message, err)
		case errors.Is(err, c.Request.Context().Err()) && c.Request.Context().Err() != nil:
			metrics.RecordOptimization(duration, "timeout", 0)
			builder.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
		default:
			metrics.RecordOptimization(duration, "error", 0)
			builder.Error(http.StatusBadGateway, i18n.ErrKeyUpstreamError, err)
		}
		return
	}

	metrics.RecordOptimization(duration, "success", plan.ShipmentCount)
	builder.SuccessOK(plan)
}

// ShippingOptions handles POST /api/shipping/options requests.
//
// @Summary      List courier options for a route
// @Description  Lists serviceable couriers between a pickup and delivery postcode for a given weight, cheapest first. Weights under the chargeable minimum are quoted at the minimum.
// @Tags         Shipping
// @Accept       json
// @Produce      json
// @Param        request body dto.ShippingOptionsRequest true "Route and weight to quote"
// @Success      200 {object} dto.SuccessResponse "Available couriers"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      502 {object} dto.ErrorResponse "Shipping provider unavailable"
// @Router       /api/shipping/options [post]
func (h *Handler) ShippingOptions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.ShippingOptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	quote, err := h.shipping.Quote(
		c.Request.Context(),
		req.PickupPostcode,
		req.DeliveryPostcode,
		decimal.NewFromFloat(req.WeightKg),
		req.IsCOD(),
	)
	if err != nil {
		builder.Error(http.StatusBadGateway, i18n.ErrKeyUpstreamError, err)
		return
	}

	builder.SuccessOK(quote)
}
