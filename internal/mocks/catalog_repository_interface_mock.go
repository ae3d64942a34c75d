// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/repository"
)

type MockCatalogRepositoryInterface struct {
	mock.Mock
}

func (m *MockCatalogRepositoryInterface) LoadCatalog(ctx context.Context, productIDs []int64) (*model.Catalog, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Catalog), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) UpsertProduct(ctx context.Context, doc repository.ProductDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCatalogRepositoryInterface) UpsertLocation(ctx context.Context, doc repository.LocationDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockCatalogRepositoryInterface) SetStock(ctx context.Context, productID, locationID int64, available int) error {
	args := m.Called(ctx, productID, locationID, available)
	return args.Error(0)
}
