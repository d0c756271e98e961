package inbound

import (
	"context"

	"troffee-marketplace-service/internal/domain/bookmark"
	"troffee-marketplace-service/internal/domain/product"
	"troffee-marketplace-service/internal/domain/shared"
)

// BookmarkService defines the interface for bookmark operations
type BookmarkService interface {
	// CreateBookmark bookmarks a product for the caller; calling it twice
	// for the same product returns the same bookmark ID
	CreateBookmark(ctx context.Context, caller shared.Identity, req CreateBookmarkRequest) (string, error)

	// BookmarkStatus reports whether the caller has bookmarked a product
	BookmarkStatus(ctx context.Context, caller shared.Identity, productID string) (*BookmarkStatus, error)

	// ListBookmarks retrieves the caller's bookmarks joined with product data
	ListBookmarks(ctx context.Context, caller shared.Identity) ([]*BookmarkWithProduct, error)

	// DeleteBookmark removes a bookmark owned by the caller
	DeleteBookmark(ctx context.Context, caller shared.Identity, id string) error
}

// request to create a bookmark
type CreateBookmarkRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// BookmarkStatus reports whether a product is bookmarked by the caller
type BookmarkStatus struct {
	Bookmarked bool   `json:"bookmarked"`
	ID         string `json:"id,omitempty"`
}

// BookmarkWithProduct joins a bookmark with its product. Product is nil when
// the product has been deleted since bookmarking.
type BookmarkWithProduct struct {
	bookmark.Bookmark
	Product *product.Product `json:"product,omitempty"`
}
