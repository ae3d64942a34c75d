package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/service/mocks"
	"github.com/guttosm/fulfillment-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(handler *Handler) *gin.Engine {
	router := gin.New()
	router.POST("/api/orders/optimize", handler.OptimizeOrder)
	router.POST("/api/shipping/options", handler.ShippingOptions)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func optimizeBody() dto.OptimizeOrderRequest {
	return dto.OptimizeOrderRequest{
		DeliveryPostcode: "560001",
		Items:            []dto.OrderItem{{ProductID: 101, Quantity: 2}},
	}
}

func TestHandler_OptimizeOrder(t *testing.T) {
	t.Run("returns the plan on success", func(t *testing.T) {
		plan := &model.Plan{
			Description:          "All from Mumbai Warehouse",
			Strategy:             "single_location",
			ShipmentCount:        1,
			TotalQuantity:        2,
			TotalCost:            decimal.NewFromInt(130),
			AllCouriersAvailable: true,
		}
		optimizer := new(mocks.MockOptimizer)
		optimizer.On("Optimize", mock.Anything, mock.MatchedBy(func(order service.OptimizeOrder) bool {
			return order.DeliveryPostcode == "560001" && order.Quantities[101] == 2 && !order.COD
		})).Return(plan, nil)

		router := newTestRouter(NewHandler(optimizer, new(mocks.MockShippingOptions)))
		w := postJSON(t, router, "/api/orders/optimize", optimizeBody())

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data, err := json.Marshal(resp.Data)
		require.NoError(t, err)
		var got model.Plan
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "All from Mumbai Warehouse", got.Description)
		assert.Equal(t, 1, got.ShipmentCount)
		optimizer.AssertExpectations(t)
	})

	t.Run("sums duplicate product lines", func(t *testing.T) {
		optimizer := new(mocks.MockOptimizer)
		optimizer.On("Optimize", mock.Anything, mock.MatchedBy(func(order service.OptimizeOrder) bool {
			return order.Quantities[101] == 5
		})).Return(&model.Plan{}, nil)

		body := optimizeBody()
		body.Items = []dto.OrderItem{{ProductID: 101, Quantity: 2}, {ProductID: 101, Quantity: 3}}

		router := newTestRouter(NewHandler(optimizer, new(mocks.MockShippingOptions)))
		w := postJSON(t, router, "/api/orders/optimize", body)

		assert.Equal(t, http.StatusOK, w.Code)
		optimizer.AssertExpectations(t)
	})

	t.Run("forwards custom allocation in custom mode", func(t *testing.T) {
		optimizer := new(mocks.MockOptimizer)
		optimizer.On("Optimize", mock.Anything, mock.MatchedBy(func(order service.OptimizeOrder) bool {
			return len(order.Custom) == 1 &&
				order.Custom[0] == service.AllocationEntry{ProductID: 101, LocationID: 3, Quantity: 2}
		})).Return(&model.Plan{Strategy: "custom"}, nil)

		body := optimizeBody()
		body.Mode = dto.ModeCustom
		body.Allocation = []dto.CustomAllocationEntry{{ProductID: 101, PickupLocationID: 3, Quantity: 2}}

		router := newTestRouter(NewHandler(optimizer, new(mocks.MockShippingOptions)))
		w := postJSON(t, router, "/api/orders/optimize", body)

		assert.Equal(t, http.StatusOK, w.Code)
		optimizer.AssertExpectations(t)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router := newTestRouter(NewHandler(new(mocks.MockOptimizer), new(mocks.MockShippingOptions)))

		req := httptest.NewRequest(http.MethodPost, "/api/orders/optimize", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
	})

	t.Run("rejects validation failures with the field message", func(t *testing.T) {
		optimizer := new(mocks.MockOptimizer)
		router := newTestRouter(NewHandler(optimizer, new(mocks.MockShippingOptions)))

		body := optimizeBody()
		body.Mode = "manual"
		w := postJSON(t, router, "/api/orders/optimize", body)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
		assert.Contains(t, resp.Message, "mode")
		optimizer.AssertNotCalled(t, "Optimize", mock.Anything, mock.Anything)
	})

	t.Run("maps infeasible orders to 422 with the reason", func(t *testing.T) {
		optimizer := new(mocks.MockOptimizer)
		optimizer.On("Optimize", mock.Anything, mock.Anything).
			Return(nil, &service.InfeasibleError{Message: "Product ID 101 not found"})

		router := newTestRouter(NewHandler(optimizer, new(mocks.MockShippingOptions)))
		w := postJSON(t, router, "/api/orders/optimize", optimizeBody())

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInfeasible, resp.Error)
		assert.Equal(t, "Product ID 101 not found", resp.Message)
	})

	t.Run("maps provider failures to 502", func(t *testing.T) {
		optimizer := new(mocks.MockOptimizer)
		optimizer.On("Optimize", mock.Anything, mock.Anything).
			Return(nil, errors.New("serviceability lookup: connection refused"))

		router := newTestRouter(NewHandler(optimizer, new(mocks.MockShippingOptions)))
		w := postJSON(t, router, "/api/orders/optimize", optimizeBody())

		require.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeUpstream, resp.Error)
	})

	t.Run("maps request timeouts to 504", func(t *testing.T) {
		optimizer := new(mocks.MockOptimizer)
		optimizer.On("Optimize", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ctx := args.Get(0).(context.Context)
				<-ctx.Done()
			}).
			Return(nil, context.DeadlineExceeded)

		router := gin.New()
		handler := NewHandler(optimizer, new(mocks.MockShippingOptions))
		router.POST("/api/orders/optimize", func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Millisecond)
			defer cancel()
			c.Request = c.Request.WithContext(ctx)
			handler.OptimizeOrder(c)
		})

		w := postJSON(t, router, "/api/orders/optimize", optimizeBody())

		require.Equal(t, http.StatusGatewayTimeout, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeTimeout, resp.Error)
	})
}

func TestHandler_ShippingOptions(t *testing.T) {
	body := dto.ShippingOptionsRequest{
		PickupPostcode:   "400001",
		DeliveryPostcode: "560001",
		WeightKg:         2.5,
	}

	t.Run("returns the quote on success", func(t *testing.T) {
		quote := &service.ShippingQuote{
			Couriers:        []model.CourierOption{{Name: "Delhivery Surface", Rate: decimal.NewFromInt(120)}},
			ChargedWeightKg: decimal.NewFromFloat(2.5),
		}
		quote.Selected = &quote.Couriers[0]

		shipping := new(mocks.MockShippingOptions)
		shipping.On("Quote", mock.Anything, "400001", "560001", decimal.NewFromFloat(2.5), false).
			Return(quote, nil)

		router := newTestRouter(NewHandler(new(mocks.MockOptimizer), shipping))
		w := postJSON(t, router, "/api/shipping/options", body)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.SuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotNil(t, resp.Data)
		shipping.AssertExpectations(t)
	})

	t.Run("rejects a missing pickup postcode", func(t *testing.T) {
		incomplete := body
		incomplete.PickupPostcode = ""

		router := newTestRouter(NewHandler(new(mocks.MockOptimizer), new(mocks.MockShippingOptions)))
		w := postJSON(t, router, "/api/shipping/options", incomplete)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
	})

	t.Run("maps provider failures to 502", func(t *testing.T) {
		shipping := new(mocks.MockShippingOptions)
		shipping.On("Quote", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("token refresh failed"))

		router := newTestRouter(NewHandler(new(mocks.MockOptimizer), shipping))
		w := postJSON(t, router, "/api/shipping/options", body)

		require.Equal(t, http.StatusBadGateway, w.Code)
		resp := decodeError(t, w)
		assert.Equal(t, dto.ErrCodeUpstream, resp.Error)
	})
}
