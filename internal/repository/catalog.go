package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
)

// ProductDocument is the persisted form of a product.
type ProductDocument struct {
	ProductID int64     `bson:"product_id" json:"product_id"`
	Title     string    `bson:"title" json:"title"`
	WeightKgs float64   `bson:"weight_kgs" json:"weight_kgs"`
	Length    float64   `bson:"length" json:"length"`
	Breadth   float64   `bson:"breadth" json:"breadth"`
	Height    float64   `bson:"height" json:"height"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// PackageDocument is one package type embedded in a location document.
type PackageDocument struct {
	PackageID    int64   `bson:"package_id" json:"package_id"`
	Name         string  `bson:"name" json:"name"`
	Kind         string  `bson:"kind" json:"kind"`
	Length       int     `bson:"length" json:"length"`
	Breadth      int     `bson:"breadth" json:"breadth"`
	Height       int     `bson:"height" json:"height"`
	MaxWeightKgs float64 `bson:"max_weight_kgs" json:"max_weight_kgs"`
	PricePerUnit float64 `bson:"price_per_unit" json:"price_per_unit"`
	Available    int     `bson:"available" json:"available"`
}

// LocationDocument is the persisted form of a pickup location with its
// package inventory embedded.
type LocationDocument struct {
	LocationID int64             `bson:"location_id" json:"location_id"`
	Name       string            `bson:"name" json:"name"`
	PostalCode string            `bson:"postal_code" json:"postal_code"`
	Packages   []PackageDocument `bson:"packages" json:"packages"`
	UpdatedAt  time.Time         `bson:"updated_at" json:"updated_at"`
}

// StockDocument records available units of one product at one location.
type StockDocument struct {
	ProductID  int64     `bson:"product_id" json:"product_id"`
	LocationID int64     `bson:"location_id" json:"location_id"`
	Available  int       `bson:"available" json:"available"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// CatalogRepository loads and maintains the fulfillment catalog.
type CatalogRepository struct {
	db *MongoDB
}

// NewCatalogRepository creates a catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// LoadCatalog assembles the catalog snapshot for the given products: the
// product records, their stock rows, and every location holding that stock
// with its package inventory.
func (r *CatalogRepository) LoadCatalog(ctx context.Context, productIDs []int64) (*model.Catalog, error) {
	catalog := &model.Catalog{
		Products:  make(map[int64]model.Product),
		Locations: make(map[int64]model.PickupLocation),
		Stock:     make(map[int64]map[int64]int),
	}

	cursor, err := r.db.Products.Find(ctx, bson.M{"product_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	var products []ProductDocument
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, doc := range products {
		catalog.Products[doc.ProductID] = model.Product{
			ID:       doc.ProductID,
			Title:    doc.Title,
			WeightKg: decimal.NewFromFloat(doc.WeightKgs),
			Length:   decimal.NewFromFloat(doc.Length),
			Breadth:  decimal.NewFromFloat(doc.Breadth),
			Height:   decimal.NewFromFloat(doc.Height),
		}
	}

	cursor, err = r.db.Stock.Find(ctx, bson.M{"product_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	var stock []StockDocument
	if err := cursor.All(ctx, &stock); err != nil {
		return nil, err
	}

	locationIDs := make([]int64, 0)
	seen := make(map[int64]bool)
	for _, doc := range stock {
		byLocation, ok := catalog.Stock[doc.ProductID]
		if !ok {
			byLocation = make(map[int64]int)
			catalog.Stock[doc.ProductID] = byLocation
		}
		byLocation[doc.LocationID] = doc.Available
		if !seen[doc.LocationID] {
			seen[doc.LocationID] = true
			locationIDs = append(locationIDs, doc.LocationID)
		}
	}
	if len(locationIDs) == 0 {
		return catalog, nil
	}

	cursor, err = r.db.Locations.Find(ctx, bson.M{"location_id": bson.M{"$in": locationIDs}})
	if err != nil {
		return nil, err
	}
	var locations []LocationDocument
	if err := cursor.All(ctx, &locations); err != nil {
		return nil, err
	}
	for _, doc := range locations {
		loc := model.PickupLocation{
			ID:         doc.LocationID,
			Name:       doc.Name,
			PostalCode: doc.PostalCode,
			Packages:   make([]model.PackageType, 0, len(doc.Packages)),
		}
		for _, p := range doc.Packages {
			loc.Packages = append(loc.Packages, model.PackageType{
				ID:           p.PackageID,
				Name:         p.Name,
				Kind:         p.Kind,
				Length:       p.Length,
				Breadth:      p.Breadth,
				Height:       p.Height,
				MaxWeightKg:  decimal.NewFromFloat(p.MaxWeightKgs),
				PricePerUnit: decimal.NewFromFloat(p.PricePerUnit),
				Available:    p.Available,
			})
		}
		catalog.Locations[doc.LocationID] = loc
	}

	return catalog, nil
}

// UpsertProduct creates or replaces a product record.
func (r *CatalogRepository) UpsertProduct(ctx context.Context, doc ProductDocument) error {
	doc.UpdatedAt = time.Now()
	_, err := r.db.Products.ReplaceOne(
		ctx,
		bson.M{"product_id": doc.ProductID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// UpsertLocation creates or replaces a pickup location record.
func (r *CatalogRepository) UpsertLocation(ctx context.Context, doc LocationDocument) error {
	doc.UpdatedAt = time.Now()
	_, err := r.db.Locations.ReplaceOne(
		ctx,
		bson.M{"location_id": doc.LocationID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

// SetStock sets the available units of a product at a location.
func (r *CatalogRepository) SetStock(ctx context.Context, productID, locationID int64, available int) error {
	_, err := r.db.Stock.UpdateOne(
		ctx,
		bson.M{"product_id": productID, "location_id": locationID},
		bson.M{"$set": bson.M{"available": available, "updated_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}
