package db

import (
	"context"
	"fmt"
	"time"

	"troffee-marketplace-service/internal/config"
	"troffee-marketplace-service/internal/domain/review"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewRepository implements the review repository interface over the
// document store
type ReviewRepository struct {
	collection *mongo.Collection
	scope      config.ScopeConfig
}

type reviewDoc struct {
	review.Review `bson:",inline"`
	OrgID         string `bson:"org_id"`
	AppID         string `bson:"app_id"`
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(conn *Connection, scope config.ScopeConfig) *ReviewRepository {
	return &ReviewRepository{
		collection: conn.Collection(collectionReviews),
		scope:      scope,
	}
}

// Create inserts a new review and assigns its ID
func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rev.ID = primitive.NewObjectID().Hex()

	doc := reviewDoc{Review: *rev, OrgID: r.scope.OrgID, AppID: r.scope.AppID}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// FindByProductID retrieves reviews for a product, newest first
func (r *ReviewRepository) FindByProductID(ctx context.Context, productID string, limit int) ([]*review.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["product_id"] = productID

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []reviewDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	reviews := make([]*review.Review, 0, len(docs))
	for i := range docs {
		reviews = append(reviews, &docs[i].Review)
	}

	return reviews, nil
}
