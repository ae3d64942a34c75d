package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

func testProduct(id int64, title string, weight float64, l, b, h int64) model.Product {
	return model.Product{
		ID:       id,
		Title:    title,
		WeightKg: decimal.NewFromFloat(weight),
		Length:   decimal.NewFromInt(l),
		Breadth:  decimal.NewFromInt(b),
		Height:   decimal.NewFromInt(h),
	}
}

func testPackage(id int64, name string, l, b, h int, maxWeight, price float64, available int) model.PackageType {
	return model.PackageType{
		ID:           id,
		Name:         name,
		Kind:         "box",
		Length:       l,
		Breadth:      b,
		Height:       h,
		MaxWeightKg:  decimal.NewFromFloat(maxWeight),
		PricePerUnit: decimal.NewFromFloat(price),
		Available:    available,
	}
}

// TestPackingEstimator_Estimate tests the core bin packing behavior.
func TestPackingEstimator_Estimate(t *testing.T) {
	estimator := NewPackingEstimator()

	t.Run("packs multiple units of one product into a single package", func(t *testing.T) {
		product := testProduct(101, "Mug", 0.5, 10, 10, 10)
		packages := []model.PackageType{testPackage(1, "Medium Box", 30, 30, 30, 10, 5, 20)}

		result := estimator.Estimate([]ItemDemand{{Product: product, Quantity: 4}}, packages)

		assert.True(t, result.PackedAll())
		assert.Equal(t, 4, result.PackedUnits)
		assert.Equal(t, 1, result.PackagesUsed)
		assert.Len(t, result.Usages, 1)
		assert.Equal(t, "Medium Box", result.Usages[0].Package.Name)
		assert.Equal(t, 1, result.Usages[0].QuantityUsed)
		assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, 4, result.PackedByProduct[101])
	})

	t.Run("different products share a package when space allows", func(t *testing.T) {
		mug := testProduct(101, "Mug", 0.5, 10, 10, 10)
		coaster := testProduct(102, "Coaster", 0.1, 10, 10, 2)
		packages := []model.PackageType{testPackage(1, "Medium Box", 30, 30, 30, 10, 5, 20)}

		result := estimator.Estimate([]ItemDemand{
			{Product: mug, Quantity: 2},
			{Product: coaster, Quantity: 3},
		}, packages)

		assert.True(t, result.PackedAll())
		assert.Equal(t, 5, result.PackedUnits)
		assert.Equal(t, 1, result.PackagesUsed)
		assert.Len(t, result.Usages, 1)
		assert.Len(t, result.Usages[0].Products, 2)
		assert.Equal(t, int64(101), result.Usages[0].Products[0].ProductID)
		assert.Equal(t, int64(102), result.Usages[0].Products[1].ProductID)
	})

	t.Run("weight limit forces a second package", func(t *testing.T) {
		brick := testProduct(201, "Brick", 2, 10, 10, 10)
		packages := []model.PackageType{testPackage(1, "Small Box", 30, 30, 30, 4, 3, 20)}

		// 4 bricks at 2kg against a 4kg limit packs two per box.
		result := estimator.Estimate([]ItemDemand{{Product: brick, Quantity: 4}}, packages)

		assert.True(t, result.PackedAll())
		assert.Equal(t, 4, result.PackedUnits)
		assert.Equal(t, 2, result.PackagesUsed)
		assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(6)))
	})

	t.Run("reports partial packing when inventory runs out", func(t *testing.T) {
		brick := testProduct(201, "Brick", 2, 10, 10, 10)
		packages := []model.PackageType{testPackage(1, "Small Box", 30, 30, 30, 4, 3, 1)}

		result := estimator.Estimate([]ItemDemand{{Product: brick, Quantity: 5}}, packages)

		assert.False(t, result.PackedAll())
		assert.Equal(t, 2, result.PackedUnits)
		assert.Equal(t, "not enough packages to pack all items, can only pack 2 of 5", result.Issue)
	})

	t.Run("prefers the cheapest volume that fits", func(t *testing.T) {
		mug := testProduct(101, "Mug", 0.5, 10, 10, 10)
		cheapPerVolume := testPackage(1, "Crate", 50, 50, 40, 30, 10, 5)
		expensivePerVolume := testPackage(2, "Small Box", 20, 20, 20, 5, 4, 5)

		result := estimator.Estimate(
			[]ItemDemand{{Product: mug, Quantity: 1}},
			[]model.PackageType{expensivePerVolume, cheapPerVolume},
		)

		assert.True(t, result.PackedAll())
		assert.Len(t, result.Usages, 1)
		assert.Equal(t, "Crate", result.Usages[0].Package.Name)
	})

	t.Run("equal cost per volume falls back to the lowest package id", func(t *testing.T) {
		mug := testProduct(101, "Mug", 0.5, 10, 10, 10)
		// Identical dimensions and price, listed higher id first.
		later := testPackage(7, "Box B", 30, 30, 30, 10, 5, 5)
		earlier := testPackage(3, "Box A", 30, 30, 30, 10, 5, 5)

		result := estimator.Estimate(
			[]ItemDemand{{Product: mug, Quantity: 1}},
			[]model.PackageType{later, earlier},
		)

		assert.True(t, result.PackedAll())
		assert.Len(t, result.Usages, 1)
		assert.Equal(t, int64(3), result.Usages[0].Package.ID)
	})

	t.Run("product without dimensions packs on weight alone", func(t *testing.T) {
		sticker := model.Product{ID: 301, Title: "Sticker", WeightKg: decimal.NewFromFloat(0.01)}
		packages := []model.PackageType{testPackage(1, "Envelope", 25, 18, 1, 0.5, 1, 10)}

		result := estimator.Estimate([]ItemDemand{{Product: sticker, Quantity: 10}}, packages)

		assert.True(t, result.PackedAll())
		assert.Equal(t, 10, result.PackedUnits)
	})

	t.Run("empty demand yields an empty result", func(t *testing.T) {
		result := estimator.Estimate(nil, []model.PackageType{testPackage(1, "Box", 10, 10, 10, 5, 2, 3)})

		assert.True(t, result.PackedAll())
		assert.Equal(t, 0, result.PackedUnits)
		assert.Empty(t, result.Usages)
	})
}

// TestPackingEstimator_EstimateIdempotent verifies repeated estimates over
// the same inputs give identical results.
func TestPackingEstimator_EstimateIdempotent(t *testing.T) {
	estimator := NewPackingEstimator()
	mug := testProduct(101, "Mug", 0.5, 10, 10, 10)
	plate := testProduct(102, "Plate", 0.8, 25, 25, 3)
	packages := []model.PackageType{
		testPackage(1, "Small Box", 20, 20, 20, 5, 3, 4),
		testPackage(2, "Medium Box", 30, 30, 30, 10, 5, 4),
	}
	demands := []ItemDemand{{Product: mug, Quantity: 5}, {Product: plate, Quantity: 3}}

	first := estimator.Estimate(demands, packages)
	second := estimator.Estimate(demands, packages)

	assert.Equal(t, first.PackedUnits, second.PackedUnits)
	assert.Equal(t, first.PackagesUsed, second.PackagesUsed)
	assert.True(t, first.TotalCost.Equal(second.TotalCost))
	assert.Equal(t, first.Usages, second.Usages)
}

// TestPackingEstimator_MaxPackable tests single product capacity checks.
func TestPackingEstimator_MaxPackable(t *testing.T) {
	estimator := NewPackingEstimator()
	brick := testProduct(201, "Brick", 2, 10, 10, 10)

	tests := []struct {
		name     string
		units    int
		packages []model.PackageType
		expected int
	}{
		{
			name:     "capacity covers all units",
			units:    4,
			packages: []model.PackageType{testPackage(1, "Box", 30, 30, 30, 10, 3, 5)},
			expected: 4,
		},
		{
			name:     "capacity capped by package count",
			units:    10,
			packages: []model.PackageType{testPackage(1, "Box", 30, 30, 30, 4, 3, 2)},
			expected: 4,
		},
		{
			name:     "no packages means zero capacity",
			units:    3,
			packages: nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := estimator.MaxPackable(brick, tt.units, tt.packages)
			assert.Equal(t, tt.expected, result.PackedUnits)
		})
	}
}
