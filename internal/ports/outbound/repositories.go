package outbound

import (
	"context"

	"troffee-marketplace-service/internal/domain/bookmark"
	"troffee-marketplace-service/internal/domain/offer"
	"troffee-marketplace-service/internal/domain/product"
	"troffee-marketplace-service/internal/domain/review"
)

// ProductFilter holds the equality/range filters a product listing pushes
// down to the document store. Zero values mean "no filter". Limit caps the
// number of records fetched, newest first.
type ProductFilter struct {
	Category   string
	Condition  product.Condition
	Visibility product.Visibility
	OwnerID    string
	MinPrice   *float64
	MaxPrice   *float64
	Limit      int
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	// Create inserts a new product and assigns its ID
	Create(ctx context.Context, p *product.Product) error

	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id string) (*product.Product, error)

	// GetByIDs retrieves multiple products keyed by ID; missing IDs are
	// simply absent from the result
	GetByIDs(ctx context.Context, ids []string) (map[string]*product.Product, error)

	// Find retrieves products matching the filter, ordered by creation time
	// descending
	Find(ctx context.Context, filter ProductFilter) ([]*product.Product, error)

	// Update applies a partial update to the named fields
	Update(ctx context.Context, id string, fields map[string]interface{}) error

	// Delete removes a product
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	// Create inserts a new review and assigns its ID
	Create(ctx context.Context, r *review.Review) error

	// FindByProductID retrieves reviews for a product, newest first
	FindByProductID(ctx context.Context, productID string, limit int) ([]*review.Review, error)
}

// BookmarkRepository defines the interface for bookmark data operations
type BookmarkRepository interface {
	// Upsert creates the (user, product) bookmark if absent and returns its
	// ID; a repeat call returns the existing ID
	Upsert(ctx context.Context, b *bookmark.Bookmark) (string, error)

	// GetByID retrieves a bookmark by ID
	GetByID(ctx context.Context, id string) (*bookmark.Bookmark, error)

	// FindByUserAndProduct retrieves the bookmark for a (user, product) pair
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*bookmark.Bookmark, error)

	// FindByUserID retrieves a user's bookmarks, newest first
	FindByUserID(ctx context.Context, userID string, limit int) ([]*bookmark.Bookmark, error)

	// Delete removes a bookmark
	Delete(ctx context.Context, id string) error
}

// OfferRole selects which side of an offer a listing is for
type OfferRole string

const (
	OfferRoleBuyer  OfferRole = "buyer"
	OfferRoleSeller OfferRole = "seller"
)

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	// Create inserts a new offer and assigns its ID
	Create(ctx context.Context, o *offer.Offer) error

	// GetByID retrieves an offer by ID
	GetByID(ctx context.Context, id string) (*offer.Offer, error)

	// FindByUser retrieves offers where the user is the buyer or the seller,
	// newest first
	FindByUser(ctx context.Context, userID string, role OfferRole, limit int) ([]*offer.Offer, error)

	// Transition conditionally moves a pending offer owned by sellerID to the
	// given terminal status. The write matches on status=pending so a decided
	// offer is never overwritten; zero matches yield ErrOfferAlreadyProcessed.
	Transition(ctx context.Context, id, sellerID string, to offer.Status) (*offer.Offer, error)
}
