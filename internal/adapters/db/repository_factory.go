package db

import (
	"troffee-marketplace-service/internal/config"
	"troffee-marketplace-service/internal/ports/outbound"

	"go.mongodb.org/mongo-driver/bson"
)

// Collection names
const (
	collectionProducts  = "products"
	collectionReviews   = "reviews"
	collectionBookmarks = "bookmarks"
	collectionOffers    = "offers"
)

// RepositoryFactory creates all document store repositories. Every repository
// carries the org/app scope: each document is written with scope fields and
// every query filters on them.
type RepositoryFactory struct {
	conn  *Connection
	scope config.ScopeConfig
}

// NewRepositoryFactory creates a new repository factory
func NewRepositoryFactory(conn *Connection, scope config.ScopeConfig) *RepositoryFactory {
	return &RepositoryFactory{conn: conn, scope: scope}
}

// GetProductRepository returns the product repository
func (f *RepositoryFactory) GetProductRepository() outbound.ProductRepository {
	return NewProductRepository(f.conn, f.scope)
}

// GetReviewRepository returns the review repository
func (f *RepositoryFactory) GetReviewRepository() outbound.ReviewRepository {
	return NewReviewRepository(f.conn, f.scope)
}

// GetBookmarkRepository returns the bookmark repository
func (f *RepositoryFactory) GetBookmarkRepository() outbound.BookmarkRepository {
	return NewBookmarkRepository(f.conn, f.scope)
}

// GetOfferRepository returns the offer repository
func (f *RepositoryFactory) GetOfferRepository() outbound.OfferRepository {
	return NewOfferRepository(f.conn, f.scope)
}

// scopeFilter returns the base filter every scoped query starts from
func scopeFilter(scope config.ScopeConfig) bson.M {
	return bson.M{
		"org_id": scope.OrgID,
		"app_id": scope.AppID,
	}
}
