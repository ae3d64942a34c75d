// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// CatalogRepositoryInterface defines the data access the optimizer needs.
type CatalogRepositoryInterface interface {
	LoadCatalog(ctx context.Context, productIDs []int64) (*model.Catalog, error)
	UpsertProduct(ctx context.Context, doc ProductDocument) error
	UpsertLocation(ctx context.Context, doc LocationDocument) error
	SetStock(ctx context.Context, productID, locationID int64, available int) error
}
