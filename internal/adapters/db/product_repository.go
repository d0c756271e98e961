package db

import (
	"context"
	"fmt"
	"time"

	"troffee-marketplace-service/internal/config"
	"troffee-marketplace-service/internal/domain/product"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/outbound"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository implements the product repository interface over the
// document store
type ProductRepository struct {
	collection *mongo.Collection
	scope      config.ScopeConfig
}

// productDoc is the stored shape of a product: the domain record plus the
// org/app scope fields
type productDoc struct {
	product.Product `bson:",inline"`
	OrgID           string `bson:"org_id"`
	AppID           string `bson:"app_id"`
}

// NewProductRepository creates a new product repository
func NewProductRepository(conn *Connection, scope config.ScopeConfig) *ProductRepository {
	return &ProductRepository{
		collection: conn.Collection(collectionProducts),
		scope:      scope,
	}
}

// Create inserts a new product and assigns its ID
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.ID = primitive.NewObjectID().Hex()

	doc := productDoc{Product: *p, OrgID: r.scope.OrgID, AppID: r.scope.AppID}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = id

	var doc productDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, shared.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &doc.Product, nil
}

// GetByIDs retrieves multiple products keyed by ID
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*product.Product, error) {
	result := make(map[string]*product.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = bson.M{"$in": ids}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	for i := range docs {
		result[docs[i].ID] = &docs[i].Product
	}

	return result, nil
}

// Find retrieves products matching the filter, ordered by creation time
// descending and capped at filter.Limit
func (r *ProductRepository) Find(ctx context.Context, f outbound.ProductFilter) ([]*product.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Condition != "" {
		filter["condition"] = f.Condition
	}
	if f.Visibility != "" {
		filter["visibility"] = f.Visibility
	}
	if f.OwnerID != "" {
		filter["owner_id"] = f.OwnerID
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if f.Limit > 0 {
		findOptions.SetLimit(int64(f.Limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*product.Product, 0, len(docs))
	for i := range docs {
		products = append(products, &docs[i].Product)
	}

	return products, nil
}

// Update applies a partial update to the named fields
func (r *ProductRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = id

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.MatchedCount == 0 {
		return shared.ErrProductNotFound
	}

	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = id

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if result.DeletedCount == 0 {
		return shared.ErrProductNotFound
	}

	return nil
}
