package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"troffee-marketplace-service/internal/config"
	"troffee-marketplace-service/internal/domain/offer"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/outbound"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OfferRepository implements the offer repository interface over the
// document store
type OfferRepository struct {
	collection *mongo.Collection
	scope      config.ScopeConfig
}

type offerDoc struct {
	offer.Offer `bson:",inline"`
	OrgID       string `bson:"org_id"`
	AppID       string `bson:"app_id"`
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(conn *Connection, scope config.ScopeConfig) *OfferRepository {
	return &OfferRepository{
		collection: conn.Collection(collectionOffers),
		scope:      scope,
	}
}

// Create inserts a new offer and assigns its ID
func (r *OfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o.ID = primitive.NewObjectID().Hex()

	doc := offerDoc{Offer: *o, OrgID: r.scope.OrgID, AppID: r.scope.AppID}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

// GetByID retrieves an offer by ID
func (r *OfferRepository) GetByID(ctx context.Context, id string) (*offer.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = id

	var doc offerDoc
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, shared.ErrOfferNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return &doc.Offer, nil
}

// FindByUser retrieves offers where the user is the buyer or the seller,
// newest first
func (r *OfferRepository) FindByUser(ctx context.Context, userID string, role outbound.OfferRole, limit int) ([]*offer.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	if role == outbound.OfferRoleSeller {
		filter["seller_id"] = userID
	} else {
		filter["buyer_id"] = userID
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find offers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []offerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}

	offers := make([]*offer.Offer, 0, len(docs))
	for i := range docs {
		offers = append(offers, &docs[i].Offer)
	}

	return offers, nil
}

// Transition conditionally moves a pending offer owned by sellerID to the
// given terminal status. The filter matches on status=pending, so a decided
// offer is never overwritten; when nothing matches, a follow-up read decides
// between not-found, forbidden and already-processed.
func (r *OfferRepository) Transition(ctx context.Context, id, sellerID string, to offer.Status) (*offer.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := scopeFilter(r.scope)
	filter["_id"] = id
	filter["seller_id"] = sellerID
	filter["status"] = offer.StatusPending

	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc offerDoc
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return &doc.Offer, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to transition offer: %w", err)
	}

	// No pending offer matched; work out why
	existing, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		if errors.Is(getErr, shared.ErrOfferNotFound) {
			return nil, shared.ErrOfferNotFound
		}
		return nil, getErr
	}
	if existing.SellerID != sellerID {
		return nil, shared.ErrForbidden
	}
	return nil, shared.ErrOfferAlreadyProcessed
}
