package app

import (
	"context"
	"errors"
	"time"

	"troffee-marketplace-service/internal/domain/bookmark"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// BookmarkService implements the bookmark use cases
type BookmarkService struct {
	bookmarkRepo outbound.BookmarkRepository
	productRepo  outbound.ProductRepository
	fetchCap     int
	logger       zerolog.Logger
}

type BookmarkServiceParams struct {
	BookmarkRepo outbound.BookmarkRepository
	ProductRepo  outbound.ProductRepository
	FetchCap     int
	Logger       zerolog.Logger
}

// NewBookmarkService creates a new bookmark service
func NewBookmarkService(params BookmarkServiceParams) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: params.BookmarkRepo,
		productRepo:  params.ProductRepo,
		fetchCap:     params.FetchCap,
		logger:       params.Logger.With().Str("component", "bookmark_service").Logger(),
	}
}

// CreateBookmark bookmarks a product for the caller. Creation is idempotent:
// a repeat call for the same (user, product) pair returns the existing
// bookmark ID, never a duplicate.
func (s *BookmarkService) CreateBookmark(ctx context.Context, caller shared.Identity, req inbound.CreateBookmarkRequest) (string, error) {
	if req.ProductID == "" {
		return "", shared.ErrMissingProductID
	}

	b := &bookmark.Bookmark{
		UserID:    caller.UserID,
		ProductID: req.ProductID,
		CreatedAt: time.Now(),
	}

	id, err := s.bookmarkRepo.Upsert(ctx, b)
	if err != nil {
		s.logger.Error().Err(err).
			Str("user_id", caller.UserID).
			Str("product_id", req.ProductID).
			Msg("Failed to create bookmark")
		return "", err
	}

	s.logger.Info().
		Str("bookmark_id", id).
		Str("user_id", caller.UserID).
		Str("product_id", req.ProductID).
		Msg("Bookmark created")

	return id, nil
}

// BookmarkStatus reports whether the caller has bookmarked a product
func (s *BookmarkService) BookmarkStatus(ctx context.Context, caller shared.Identity, productID string) (*inbound.BookmarkStatus, error) {
	if productID == "" {
		return nil, shared.ErrMissingProductID
	}

	b, err := s.bookmarkRepo.FindByUserAndProduct(ctx, caller.UserID, productID)
	if err != nil {
		if errors.Is(err, shared.ErrBookmarkNotFound) {
			return &inbound.BookmarkStatus{Bookmarked: false}, nil
		}
		return nil, err
	}

	return &inbound.BookmarkStatus{Bookmarked: true, ID: b.ID}, nil
}

// ListBookmarks retrieves the caller's bookmarks joined with product data.
// Bookmarks whose product has since been deleted are returned without one.
func (s *BookmarkService) ListBookmarks(ctx context.Context, caller shared.Identity) ([]*inbound.BookmarkWithProduct, error) {
	bookmarks, err := s.bookmarkRepo.FindByUserID(ctx, caller.UserID, s.fetchCap)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("Failed to list bookmarks")
		return nil, err
	}

	productIDs := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		productIDs = append(productIDs, b.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("Failed to join bookmark products")
		return nil, err
	}

	items := make([]*inbound.BookmarkWithProduct, 0, len(bookmarks))
	for _, b := range bookmarks {
		items = append(items, &inbound.BookmarkWithProduct{
			Bookmark: *b,
			Product:  products[b.ProductID],
		})
	}

	return items, nil
}

// DeleteBookmark removes a bookmark owned by the caller
func (s *BookmarkService) DeleteBookmark(ctx context.Context, caller shared.Identity, id string) error {
	_, err := requireOwner(ctx, caller.UserID,
		func(ctx context.Context) (*bookmark.Bookmark, error) { return s.bookmarkRepo.GetByID(ctx, id) },
		func(b *bookmark.Bookmark) string { return b.UserID },
	)
	if err != nil {
		return err
	}

	if err := s.bookmarkRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("bookmark_id", id).Msg("Failed to delete bookmark")
		return err
	}

	s.logger.Info().Str("bookmark_id", id).Str("user_id", caller.UserID).Msg("Bookmark deleted")
	return nil
}
