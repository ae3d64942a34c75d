//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container with unique database name
	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewCatalogRepository(db)

	t.Run("load empty catalog", func(t *testing.T) {
		catalog, err := repo.LoadCatalog(ctx, []int64{101})
		require.NoError(t, err)
		assert.Empty(t, catalog.Products)
		assert.Empty(t, catalog.Locations)
		assert.Empty(t, catalog.Stock)
	})

	t.Run("upsert and load a full catalog", func(t *testing.T) {
		require.NoError(t, repo.UpsertProduct(ctx, ProductDocument{
			ProductID: 101,
			Title:     "Ceramic Vase",
			WeightKgs: 1.5,
			Length:    20,
			Breadth:   20,
			Height:    35,
		}))
		require.NoError(t, repo.UpsertLocation(ctx, LocationDocument{
			LocationID: 1,
			Name:       "Mumbai Warehouse",
			PostalCode: "400001",
			Packages: []PackageDocument{
				{
					PackageID:    7,
					Name:         "Medium Box",
					Kind:         "box",
					Length:       40,
					Breadth:      40,
					Height:       40,
					MaxWeightKgs: 10,
					PricePerUnit: 15,
					Available:    25,
				},
			},
		}))
		require.NoError(t, repo.SetStock(ctx, 101, 1, 12))

		catalog, err := repo.LoadCatalog(ctx, []int64{101})
		require.NoError(t, err)

		product, ok := catalog.Products[101]
		require.True(t, ok)
		assert.Equal(t, "Ceramic Vase", product.Title)
		assert.True(t, product.WeightKg.Equal(decimal.NewFromFloat(1.5)))

		location, ok := catalog.Locations[1]
		require.True(t, ok)
		assert.Equal(t, "Mumbai Warehouse", location.Name)
		assert.Equal(t, "400001", location.PostalCode)
		require.Len(t, location.Packages, 1)
		assert.Equal(t, "Medium Box", location.Packages[0].Name)
		assert.Equal(t, 25, location.Packages[0].Available)
		assert.True(t, location.Packages[0].MaxWeightKg.Equal(decimal.NewFromInt(10)))

		assert.Equal(t, 12, catalog.Stock[101][1])
	})

	t.Run("upsert replaces an existing product", func(t *testing.T) {
		require.NoError(t, repo.UpsertProduct(ctx, ProductDocument{
			ProductID: 101,
			Title:     "Ceramic Vase v2",
			WeightKgs: 1.8,
		}))

		catalog, err := repo.LoadCatalog(ctx, []int64{101})
		require.NoError(t, err)
		assert.Equal(t, "Ceramic Vase v2", catalog.Products[101].Title)
	})

	t.Run("set stock updates in place", func(t *testing.T) {
		require.NoError(t, repo.SetStock(ctx, 101, 1, 3))

		catalog, err := repo.LoadCatalog(ctx, []int64{101})
		require.NoError(t, err)
		assert.Equal(t, 3, catalog.Stock[101][1])
	})

	t.Run("only requested products are loaded", func(t *testing.T) {
		require.NoError(t, repo.UpsertProduct(ctx, ProductDocument{ProductID: 202, Title: "Mug"}))
		require.NoError(t, repo.SetStock(ctx, 202, 1, 5))

		catalog, err := repo.LoadCatalog(ctx, []int64{202})
		require.NoError(t, err)
		assert.Len(t, catalog.Products, 1)
		assert.Contains(t, catalog.Products, int64(202))
		assert.NotContains(t, catalog.Stock, int64(101))
	})

	t.Run("locations without stock are not loaded", func(t *testing.T) {
		require.NoError(t, repo.UpsertLocation(ctx, LocationDocument{
			LocationID: 9,
			Name:       "Empty Depot",
			PostalCode: "110001",
		}))

		catalog, err := repo.LoadCatalog(ctx, []int64{101})
		require.NoError(t, err)
		assert.NotContains(t, catalog.Locations, int64(9))
	})
}

func TestMongoDB_HealthCheck_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	assert.NoError(t, db.HealthCheck(ctx))
}
