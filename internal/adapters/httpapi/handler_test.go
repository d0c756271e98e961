package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"troffee-marketplace-service/internal/domain/offer"
	"troffee-marketplace-service/internal/domain/product"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeVerifier accepts tokens of the form "token-<userID>"
type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (shared.Identity, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return shared.Identity{}, shared.ErrInvalidToken
	}
	return shared.Identity{UserID: token[len(prefix):]}, nil
}

type stubProductService struct {
	createFn func(ctx context.Context, caller shared.Identity, req inbound.CreateProductRequest) (string, error)
	getFn    func(ctx context.Context, id string) (*product.Product, error)
	listFn   func(ctx context.Context, req inbound.ListProductsRequest) (*inbound.ProductPage, error)
	updateFn func(ctx context.Context, caller shared.Identity, id string, req inbound.UpdateProductRequest) error
	deleteFn func(ctx context.Context, caller shared.Identity, id string) error
}

func (s *stubProductService) CreateProduct(ctx context.Context, caller shared.Identity, req inbound.CreateProductRequest) (string, error) {
	return s.createFn(ctx, caller, req)
}
func (s *stubProductService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.getFn(ctx, id)
}
func (s *stubProductService) ListProducts(ctx context.Context, req inbound.ListProductsRequest) (*inbound.ProductPage, error) {
	return s.listFn(ctx, req)
}
func (s *stubProductService) UpdateProduct(ctx context.Context, caller shared.Identity, id string, req inbound.UpdateProductRequest) error {
	return s.updateFn(ctx, caller, id, req)
}
func (s *stubProductService) DeleteProduct(ctx context.Context, caller shared.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

type stubOfferService struct {
	createFn func(ctx context.Context, caller shared.Identity, req inbound.CreateOfferRequest) (string, error)
	listFn   func(ctx context.Context, caller shared.Identity, req inbound.ListOffersRequest) (*inbound.OfferPage, error)
	decideFn func(ctx context.Context, caller shared.Identity, id string, req inbound.DecideOfferRequest) (*offer.Offer, error)
}

func (s *stubOfferService) CreateOffer(ctx context.Context, caller shared.Identity, req inbound.CreateOfferRequest) (string, error) {
	return s.createFn(ctx, caller, req)
}
func (s *stubOfferService) ListOffers(ctx context.Context, caller shared.Identity, req inbound.ListOffersRequest) (*inbound.OfferPage, error) {
	return s.listFn(ctx, caller, req)
}
func (s *stubOfferService) DecideOffer(ctx context.Context, caller shared.Identity, id string, req inbound.DecideOfferRequest) (*offer.Offer, error) {
	return s.decideFn(ctx, caller, id, req)
}

type stubBookmarkService struct {
	createFn func(ctx context.Context, caller shared.Identity, req inbound.CreateBookmarkRequest) (string, error)
	statusFn func(ctx context.Context, caller shared.Identity, productID string) (*inbound.BookmarkStatus, error)
	listFn   func(ctx context.Context, caller shared.Identity) ([]*inbound.BookmarkWithProduct, error)
	deleteFn func(ctx context.Context, caller shared.Identity, id string) error
}

func (s *stubBookmarkService) CreateBookmark(ctx context.Context, caller shared.Identity, req inbound.CreateBookmarkRequest) (string, error) {
	return s.createFn(ctx, caller, req)
}
func (s *stubBookmarkService) BookmarkStatus(ctx context.Context, caller shared.Identity, productID string) (*inbound.BookmarkStatus, error) {
	return s.statusFn(ctx, caller, productID)
}
func (s *stubBookmarkService) ListBookmarks(ctx context.Context, caller shared.Identity) ([]*inbound.BookmarkWithProduct, error) {
	return s.listFn(ctx, caller)
}
func (s *stubBookmarkService) DeleteBookmark(ctx context.Context, caller shared.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func newTestRouter(register func(r *gin.Engine, requireAuth, optionalAuth gin.HandlerFunc)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r, RequireAuth(fakeVerifier{}, zerolog.Nop()), OptionalAuth(fakeVerifier{}, zerolog.Nop()))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
