package db

import (
	"context"
	"fmt"
	"time"

	"troffee-marketplace-service/internal/config"
	"troffee-marketplace-service/internal/domain/bookmark"
	"troffee-marketplace-service/internal/domain/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookmarkRepository implements the bookmark repository interface over the
// document store
type BookmarkRepository struct {
	collection *mongo.Collection
	scope      config.ScopeConfig
}

type bookmarkDoc struct {
	bookmark.Bookmark `bson:",inline"`
	OrgID             string `bson:"org_id"`
	AppID             string `bson:"app_id"`
}

// NewBookmarkRepository creates a new bookmark repository
func NewBookmarkRepository(conn *Connection, scope config.ScopeConfig) *BookmarkRepository {
	return &BookmarkRepository{
		collection: conn.Collection(collectionBookmarks),
		scope:      scope,
	}
}

// Upsert creates the (user, product) bookmark if absent and returns its ID.
// The write is a single conditional upsert so concurrent creates for the same
// pair converge on one document.
func (r *BookmarkRepository) Upsert(ctx context.Context, b *bookmark.Bookmark) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["user_id"] = b.UserID
	filter["product_id"] = b.ProductID

	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"user_id":    b.UserID,
			"product_id": b.ProductID,
			"created_at": b.CreatedAt,
			"org_id":     r.scope.OrgID,
			"app_id":     r.scope.AppID,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bookmarkDoc
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to upsert bookmark: %w", err)
	}

	return doc.ID, nil
}

// GetByID retrieves a bookmark by ID
func (r *BookmarkRepository) GetByID(ctx context.Context, id string) (*bookmark.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = id

	var doc bookmarkDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, shared.ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return &doc.Bookmark, nil
}

// FindByUserAndProduct retrieves the bookmark for a (user, product) pair
func (r *BookmarkRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*bookmark.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["user_id"] = userID
	filter["product_id"] = productID

	var doc bookmarkDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, shared.ErrBookmarkNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return &doc.Bookmark, nil
}

// FindByUserID retrieves a user's bookmarks, newest first
func (r *BookmarkRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]*bookmark.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["user_id"] = userID

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find bookmarks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bookmarkDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode bookmarks: %w", err)
	}

	bookmarks := make([]*bookmark.Bookmark, 0, len(docs))
	for i := range docs {
		bookmarks = append(bookmarks, &docs[i].Bookmark)
	}

	return bookmarks, nil
}

// Delete removes a bookmark
func (r *BookmarkRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = id

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	if result.DeletedCount == 0 {
		return shared.ErrBookmarkNotFound
	}

	return nil
}
