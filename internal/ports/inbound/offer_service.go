package inbound

import (
	"context"

	"troffee-marketplace-service/internal/domain/offer"
	"troffee-marketplace-service/internal/domain/shared"
)

// OfferService defines the interface for offer operations
type OfferService interface {
	// CreateOffer creates a pending offer from the caller on a product they
	// do not own
	CreateOffer(ctx context.Context, caller shared.Identity, req CreateOfferRequest) (string, error)

	// ListOffers retrieves the caller's offers for one role, newest first
	ListOffers(ctx context.Context, caller shared.Identity, req ListOffersRequest) (*OfferPage, error)

	// DecideOffer moves a pending offer to accepted or declined. Only the
	// seller may decide, and only once.
	DecideOffer(ctx context.Context, caller shared.Identity, id string, req DecideOfferRequest) (*offer.Offer, error)
}

// request to create an offer
type CreateOfferRequest struct {
	ProductID string   `json:"productId" binding:"required"`
	Amount    *float64 `json:"amount" binding:"required,gt=0"`
	Message   string   `json:"message" binding:"omitempty,max=500"`
}

// request to list the caller's offers
type ListOffersRequest struct {
	Role     string
	Page     int
	PageSize int
}

// request to decide a pending offer
type DecideOfferRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined"`
}

// OfferPage is one page of an offer listing
type OfferPage struct {
	Items    []*offer.Offer `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
}
