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

func TestShippingOptionsService_Quote(t *testing.T) {
	t.Run("sorts couriers and selects the cheapest", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", false, decimal.NewFromInt(3)).
			Return(testCouriers(250, 120, 310), nil)

		svc := NewShippingOptionsService(provider, zerolog.Nop())
		quote, err := svc.Quote(context.Background(), "400001", "560001", decimal.NewFromInt(3), false)

		require.NoError(t, err)
		require.Len(t, quote.Couriers, 3)
		assert.True(t, quote.Couriers[0].Rate.Equal(decimal.NewFromInt(120)))
		require.NotNil(t, quote.Selected)
		assert.True(t, quote.Selected.Rate.Equal(decimal.NewFromInt(120)))
		assert.True(t, quote.ChargedWeightKg.Equal(decimal.NewFromInt(3)))
	})

	t.Run("applies the chargeable weight floor", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, "400001", "560001", true, minChargeableWeightKg).
			Return([]model.CourierOption{}, nil)

		svc := NewShippingOptionsService(provider, zerolog.Nop())
		quote, err := svc.Quote(context.Background(), "400001", "560001", decimal.NewFromFloat(0.1), true)

		require.NoError(t, err)
		assert.Empty(t, quote.Couriers)
		assert.Nil(t, quote.Selected)
		assert.True(t, quote.ChargedWeightKg.Equal(minChargeableWeightKg))
	})

	t.Run("provider errors propagate", func(t *testing.T) {
		provider := new(mocks.MockRateProvider)
		provider.On("AvailableCouriers", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("boom"))

		svc := NewShippingOptionsService(provider, zerolog.Nop())
		_, err := svc.Quote(context.Background(), "400001", "560001", decimal.NewFromInt(1), false)

		require.Error(t, err)
	})
}
