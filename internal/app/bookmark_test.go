package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"troffee-marketplace-service/internal/domain/bookmark"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookmarkRepo struct {
	bookmarks map[string]*bookmark.Bookmark
	order     []string
	nextID    int
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{bookmarks: map[string]*bookmark.Bookmark{}}
}

func (f *fakeBookmarkRepo) Upsert(_ context.Context, b *bookmark.Bookmark) (string, error) {
	for _, existing := range f.bookmarks {
		if existing.UserID == b.UserID && existing.ProductID == b.ProductID {
			return existing.ID, nil
		}
	}
	f.nextID++
	id := fmt.Sprintf("bookmark-%d", f.nextID)
	cp := *b
	cp.ID = id
	f.bookmarks[id] = &cp
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeBookmarkRepo) GetByID(_ context.Context, id string) (*bookmark.Bookmark, error) {
	b, ok := f.bookmarks[id]
	if !ok {
		return nil, shared.ErrBookmarkNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookmarkRepo) FindByUserAndProduct(_ context.Context, userID, productID string) (*bookmark.Bookmark, error) {
	for _, b := range f.bookmarks {
		if b.UserID == userID && b.ProductID == productID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, shared.ErrBookmarkNotFound
}

func (f *fakeBookmarkRepo) FindByUserID(_ context.Context, userID string, limit int) ([]*bookmark.Bookmark, error) {
	var out []*bookmark.Bookmark
	for i := len(f.order) - 1; i >= 0; i-- {
		b := f.bookmarks[f.order[i]]
		if b.UserID != userID {
			continue
		}
		cp := *b
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeBookmarkRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.bookmarks[id]; !ok {
		return shared.ErrBookmarkNotFound
	}
	delete(f.bookmarks, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestBookmarkService(bookmarks *fakeBookmarkRepo, products *fakeProductRepo) *BookmarkService {
	return NewBookmarkService(BookmarkServiceParams{
		BookmarkRepo: bookmarks,
		ProductRepo:  products,
		FetchCap:     200,
		Logger:       zerolog.Nop(),
	})
}

func TestCreateBookmarkIdempotent(t *testing.T) {
	svc := newTestBookmarkService(newFakeBookmarkRepo(), newFakeProductRepo())
	caller := shared.Identity{UserID: "user-1"}

	first, err := svc.CreateBookmark(context.Background(), caller, inbound.CreateBookmarkRequest{ProductID: "prod-1"})
	require.NoError(t, err)

	second, err := svc.CreateBookmark(context.Background(), caller, inbound.CreateBookmarkRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different user gets their own bookmark
	other, err := svc.CreateBookmark(context.Background(), shared.Identity{UserID: "user-2"}, inbound.CreateBookmarkRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestCreateBookmarkRequiresProductID(t *testing.T) {
	svc := newTestBookmarkService(newFakeBookmarkRepo(), newFakeProductRepo())

	_, err := svc.CreateBookmark(context.Background(), shared.Identity{UserID: "user-1"}, inbound.CreateBookmarkRequest{})
	assert.ErrorIs(t, err, shared.ErrMissingProductID)
}

func TestBookmarkStatus(t *testing.T) {
	svc := newTestBookmarkService(newFakeBookmarkRepo(), newFakeProductRepo())
	caller := shared.Identity{UserID: "user-1"}

	status, err := svc.BookmarkStatus(context.Background(), caller, "prod-1")
	require.NoError(t, err)
	assert.False(t, status.Bookmarked)
	assert.Empty(t, status.ID)

	id, err := svc.CreateBookmark(context.Background(), caller, inbound.CreateBookmarkRequest{ProductID: "prod-1"})
	require.NoError(t, err)

	status, err = svc.BookmarkStatus(context.Background(), caller, "prod-1")
	require.NoError(t, err)
	assert.True(t, status.Bookmarked)
	assert.Equal(t, id, status.ID)

	// Another user's bookmark does not leak into the caller's status
	status, err = svc.BookmarkStatus(context.Background(), shared.Identity{UserID: "user-2"}, "prod-1")
	require.NoError(t, err)
	assert.False(t, status.Bookmarked)
}

func TestListBookmarksJoinsProducts(t *testing.T) {
	products := newFakeProductRepo()
	svc := newTestBookmarkService(newFakeBookmarkRepo(), products)
	caller := shared.Identity{UserID: "user-1"}

	productID := seedProduct(t, products, "seller-1")

	_, err := svc.CreateBookmark(context.Background(), caller, inbound.CreateBookmarkRequest{ProductID: productID})
	require.NoError(t, err)

	// Bookmark of a product that no longer exists
	_, err = svc.CreateBookmark(context.Background(), caller, inbound.CreateBookmarkRequest{ProductID: "deleted-prod"})
	require.NoError(t, err)

	items, err := svc.ListBookmarks(context.Background(), caller)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Newest first: the dangling bookmark has no product
	assert.Equal(t, "deleted-prod", items[0].ProductID)
	assert.Nil(t, items[0].Product)
	assert.Equal(t, productID, items[1].ProductID)
	require.NotNil(t, items[1].Product)
	assert.Equal(t, "Guitar", items[1].Product.Title)
}

func TestDeleteBookmarkOwnerOnly(t *testing.T) {
	svc := newTestBookmarkService(newFakeBookmarkRepo(), newFakeProductRepo())
	caller := shared.Identity{UserID: "user-1"}

	id, err := svc.CreateBookmark(context.Background(), caller, inbound.CreateBookmarkRequest{ProductID: "prod-1"})
	require.NoError(t, err)

	err = svc.DeleteBookmark(context.Background(), shared.Identity{UserID: "user-2"}, id)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.DeleteBookmark(context.Background(), caller, id)
	require.NoError(t, err)

	err = svc.DeleteBookmark(context.Background(), caller, id)
	assert.ErrorIs(t, err, shared.ErrBookmarkNotFound)
}

func TestBookmarkTimestampsAssigned(t *testing.T) {
	repo := newFakeBookmarkRepo()
	svc := newTestBookmarkService(repo, newFakeProductRepo())

	before := time.Now()
	id, err := svc.CreateBookmark(context.Background(), shared.Identity{UserID: "user-1"}, inbound.CreateBookmarkRequest{ProductID: "prod-1"})
	require.NoError(t, err)

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, b.CreatedAt.Before(before))
}
