// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) AvailableCouriers(ctx context.Context, pickupPostcode, deliveryPostcode string, cod bool, weightKg decimal.Decimal) ([]model.CourierOption, error) {
	args := m.Called(ctx, pickupPostcode, deliveryPostcode, cod, weightKg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CourierOption), args.Error(1)
}
