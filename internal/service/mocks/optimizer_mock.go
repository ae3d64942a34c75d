// Code generated manually. DO NOT EDIT.

// Package mocks provides testify mocks for the service-level interfaces.
// It lives apart from the repository/provider mocks so packages under test
// inside service can use those without importing service itself.
package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/service"
)

type MockOptimizer struct {
	mock.Mock
}

func (m *MockOptimizer) Optimize(ctx context.Context, order service.OptimizeOrder) (*model.Plan, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Plan), args.Error(1)
}

type MockShippingOptions struct {
	mock.Mock
}

func (m *MockShippingOptions) Quote(ctx context.Context, pickupPostcode, deliveryPostcode string, weightKg decimal.Decimal, cod bool) (*service.ShippingQuote, error) {
	args := m.Called(ctx, pickupPostcode, deliveryPostcode, weightKg, cod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ShippingQuote), args.Error(1)
}
