package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/mocks"
)

func testCouriers(rates ...float64) []model.CourierOption {
	couriers := make([]model.CourierOption, 0, len(rates))
	for i, rate := range rates {
		couriers = append(couriers, model.CourierOption{
			CourierCompanyID: int64(i + 1),
			Name:             "Courier",
			Rate:             decimal.NewFromFloat(rate),
		})
	}
	return couriers
}

// TestMaxWeightForRoute tests the descending weight probe.
func TestMaxWeightForRoute(t *testing.T) {
	logger := zerolog.Nop()
	estimator := NewPackingEstimator()

	t.Run("returns highest weight with couriers", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", false, decimal.NewFromInt(500)).
			Return([]model.CourierOption{}, nil).Once()
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", false, decimal.NewFromInt(400)).
			Return([]model.CourierOption{}, nil).Once()
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", false, decimal.NewFromInt(300)).
			Return(testCouriers(250), nil).Once()

		e := NewRateEvaluator(provider, estimator, logger)
		weight := e.maxWeightForRoute(context.Background(), "400001", "560001", false)

		assert.True(t, weight.Equal(decimal.NewFromInt(300)))
		provider.AssertExpectations(t)
	})

	t.Run("all probes empty means unserviceable", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", false, mock.Anything).
			Return([]model.CourierOption{}, nil)

		e := NewRateEvaluator(provider, estimator, logger)
		weight := e.maxWeightForRoute(context.Background(), "400001", "560001", false)

		assert.True(t, weight.IsZero())
	})

	t.Run("all probes failing falls back to the default ceiling", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", false, mock.Anything).
			Return(nil, errors.New("connection refused"))

		e := NewRateEvaluator(provider, estimator, logger)
		weight := e.maxWeightForRoute(context.Background(), "400001", "560001", false)

		assert.True(t, weight.Equal(fallbackMaxWeightKg))
	})
}

// TestMaxWeightForPostcode tests ceiling lookup defaults.
func TestMaxWeightForPostcode(t *testing.T) {
	weights := map[string]decimal.Decimal{"400001": decimal.NewFromInt(300)}

	assert.True(t, maxWeightForPostcode(weights, "400001").Equal(decimal.NewFromInt(300)))
	assert.True(t, maxWeightForPostcode(weights, "").Equal(fallbackMaxWeightKg))
	assert.True(t, maxWeightForPostcode(weights, "999999").Equal(fallbackMaxWeightKg))
}

// TestChargeableWeight tests the courier minimum floor.
func TestChargeableWeight(t *testing.T) {
	assert.True(t, chargeableWeight(decimal.NewFromFloat(0.2)).Equal(minChargeableWeightKg))
	assert.True(t, chargeableWeight(decimal.NewFromFloat(0.5)).Equal(minChargeableWeightKg))
	assert.True(t, chargeableWeight(decimal.NewFromInt(3)).Equal(decimal.NewFromInt(3)))
}

// TestRateEvaluator_Evaluate tests end-to-end candidate pricing.
func TestRateEvaluator_Evaluate(t *testing.T) {
	logger := zerolog.Nop()
	estimator := NewPackingEstimator()

	t.Run("prices shipments with the cheapest courier", func(t *testing.T) {
		snap := twoLocationSnapshot(t)
		quantities := map[int64]int{101: 2, 102: 2}
		candidates := generateCandidates(snap, quantities)
		require.NotEmpty(t, candidates)

		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, mock.Anything, "560001", false, mock.Anything).
			Return(testCouriers(250, 120, 310), nil)

		e := NewRateEvaluator(provider, estimator, logger)
		e.Evaluate(context.Background(), candidates, snap, "560001", false, false)

		c := candidates[0]
		assert.True(t, c.couriersAvailable)
		require.NotEmpty(t, c.shipments)
		for _, shipment := range c.shipments {
			require.NotNil(t, shipment.SelectedCourier)
			assert.True(t, shipment.SelectedCourier.Rate.Equal(decimal.NewFromInt(120)))
			assert.True(t, shipment.ShippingCost.Equal(decimal.NewFromInt(120)))
			for i := 1; i < len(shipment.Couriers); i++ {
				assert.True(t, shipment.Couriers[i-1].Rate.LessThanOrEqual(shipment.Couriers[i].Rate))
			}
		}
		assert.True(t, c.totalCost.Equal(c.packagingCost.Add(c.shippingCost)))
	})

	t.Run("auto mode reroutes away from unserviceable locations", func(t *testing.T) {
		catalog := testCatalog()
		catalog.Products[101] = testProduct(101, "Mug", 0.5, 10, 10, 10)
		catalog.Locations[1] = model.PickupLocation{
			ID: 1, Name: "A", PostalCode: "400001",
			Packages: []model.PackageType{testPackage(1, "Box", 30, 30, 30, 10, 5, 50)},
		}
		catalog.Locations[2] = model.PickupLocation{
			ID: 2, Name: "B", PostalCode: "110001",
			Packages: []model.PackageType{testPackage(2, "Box", 30, 30, 30, 10, 5, 50)},
		}
		addStock(catalog, 101, 1, 3)
		addStock(catalog, 101, 2, 5)
		quantities := map[int64]int{101: 5}
		snap := buildSnapshot(catalog, quantities, NewPackingEstimator())
		candidates := generateCandidates(snap, quantities)
		require.NotEmpty(t, candidates)

		provider := new(mocks.MockRateProvider)
		// Route from A has no couriers at any weight; route from B is fine.
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", false, mock.Anything).
			Return([]model.CourierOption{}, nil)
		provider.On("AvailableCouriers", mock.Anything, "110001", "560001", false, mock.Anything).
			Return(testCouriers(180), nil)

		e := NewRateEvaluator(provider, estimator, logger)
		e.Evaluate(context.Background(), candidates, snap, "560001", false, false)

		for _, c := range candidates {
			if !c.canFulfill {
				continue
			}
			for _, shipment := range c.shipments {
				assert.Equal(t, int64(2), shipment.LocationID)
			}
		}
	})

	t.Run("custom mode keeps unserviceable routes and reports them", func(t *testing.T) {
		snap := twoLocationSnapshot(t)
		c, err := customCandidate(snap, []AllocationEntry{{ProductID: 101, LocationID: 2, Quantity: 2}})
		require.NoError(t, err)

		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, "110001", "560001", false, mock.Anything).
			Return([]model.CourierOption{}, nil)

		e := NewRateEvaluator(provider, estimator, logger)
		e.Evaluate(context.Background(), []*candidate{c}, snap, "560001", false, true)

		assert.False(t, c.couriersAvailable)
		assert.Contains(t, c.unavailabilityReason, "No courier options available between pickup location Delhi Hub [110001] and delivery postcode [560001]")
		assert.Empty(t, c.shipments)
	})
}
