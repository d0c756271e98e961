package httpapi

import (
	"context"
	"net/http"
	"testing"

	"troffee-marketplace-service/internal/domain/offer"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfferRouter(svc inbound.OfferService) *gin.Engine {
	h := NewOfferHandler(svc, zerolog.Nop())
	return newTestRouter(func(r *gin.Engine, requireAuth, _ gin.HandlerFunc) {
		r.POST("/offers", requireAuth, h.Create)
		r.GET("/offers", requireAuth, h.List)
		r.PATCH("/offers/:id", requireAuth, h.Decide)
	})
}

func TestOfferCreateReturnsID(t *testing.T) {
	var gotReq inbound.CreateOfferRequest
	svc := &stubOfferService{
		createFn: func(_ context.Context, _ shared.Identity, req inbound.CreateOfferRequest) (string, error) {
			gotReq = req
			return "offer-1", nil
		},
	}
	r := newOfferRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/offers", "token-buyer-1", map[string]interface{}{
		"productId": "prod-1",
		"amount":    250,
		"message":   "Deal?",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "offer-1", decodeBody(t, w)["id"])
	assert.Equal(t, "prod-1", gotReq.ProductID)
	require.NotNil(t, gotReq.Amount)
	assert.Equal(t, 250.0, *gotReq.Amount)
}

func TestOfferCreateValidatesBody(t *testing.T) {
	r := newOfferRouter(&stubOfferService{})

	// amount=0 fails the gt=0 rule
	w := doJSON(t, r, http.MethodPost, "/offers", "token-buyer-1", map[string]interface{}{
		"productId": "prod-1",
		"amount":    0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decodeBody(t, w)["error"])
}

func TestOfferCreateSelfOffer(t *testing.T) {
	svc := &stubOfferService{
		createFn: func(context.Context, shared.Identity, inbound.CreateOfferRequest) (string, error) {
			return "", shared.ErrSelfOffer
		},
	}
	r := newOfferRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/offers", "token-seller-1", map[string]interface{}{
		"productId": "prod-1",
		"amount":    100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, shared.ErrSelfOffer.Error(), decodeBody(t, w)["error"])
}

func TestOfferListPassesRole(t *testing.T) {
	var gotReq inbound.ListOffersRequest
	svc := &stubOfferService{
		listFn: func(_ context.Context, _ shared.Identity, req inbound.ListOffersRequest) (*inbound.OfferPage, error) {
			gotReq = req
			return &inbound.OfferPage{Items: []*offer.Offer{}, Page: 1, PageSize: 12}, nil
		},
	}
	r := newOfferRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/offers?role=seller&page=2", "token-seller-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "seller", gotReq.Role)
	assert.Equal(t, 2, gotReq.Page)
}

func TestOfferListInvalidRole(t *testing.T) {
	svc := &stubOfferService{
		listFn: func(context.Context, shared.Identity, inbound.ListOffersRequest) (*inbound.OfferPage, error) {
			return nil, shared.ErrInvalidOfferRole
		},
	}
	r := newOfferRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/offers?role=owner", "token-user-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOfferDecideReturnsUpdatedOffer(t *testing.T) {
	svc := &stubOfferService{
		decideFn: func(_ context.Context, _ shared.Identity, id string, req inbound.DecideOfferRequest) (*offer.Offer, error) {
			return &offer.Offer{ID: id, Status: offer.Status(req.Status)}, nil
		},
	}
	r := newOfferRouter(svc)

	w := doJSON(t, r, http.MethodPatch, "/offers/offer-1", "token-seller-1", map[string]interface{}{
		"status": "accepted",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "offer-1", body["id"])
	assert.Equal(t, "accepted", body["status"])
}

func TestOfferDecideErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"not found", shared.ErrOfferNotFound, http.StatusNotFound},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden},
		{"already processed", shared.ErrOfferAlreadyProcessed, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubOfferService{
				decideFn: func(context.Context, shared.Identity, string, inbound.DecideOfferRequest) (*offer.Offer, error) {
					return nil, tt.serviceErr
				},
			}
			r := newOfferRouter(svc)

			w := doJSON(t, r, http.MethodPatch, "/offers/offer-1", "token-x", map[string]interface{}{
				"status": "declined",
			})
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestOfferDecideRejectsNonDecisionStatus(t *testing.T) {
	r := newOfferRouter(&stubOfferService{})

	// oneof=accepted declined fails at bind time
	w := doJSON(t, r, http.MethodPatch, "/offers/offer-1", "token-seller-1", map[string]interface{}{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
