package app

import (
	"context"
	"time"

	"troffee-marketplace-service/internal/domain/offer"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// OfferService implements the offer use cases
type OfferService struct {
	offerRepo   outbound.OfferRepository
	productRepo outbound.ProductRepository
	broadcaster outbound.Broadcaster
	fetchCap    int
	logger      zerolog.Logger
}

type OfferServiceParams struct {
	OfferRepo   outbound.OfferRepository
	ProductRepo outbound.ProductRepository
	Broadcaster outbound.Broadcaster
	FetchCap    int
	Logger      zerolog.Logger
}

// NewOfferService creates a new offer service
func NewOfferService(params OfferServiceParams) *OfferService {
	return &OfferService{
		offerRepo:   params.OfferRepo,
		productRepo: params.ProductRepo,
		broadcaster: params.Broadcaster,
		fetchCap:    params.FetchCap,
		logger:      params.Logger.With().Str("component", "offer_service").Logger(),
	}
}

// CreateOffer creates a pending offer from the caller on a product they do
// not own. The seller is copied from the product's owner at creation time.
//
// The product read and the offer insert are two separate store operations;
// a product deleted between them leaves an offer referencing a dead product.
func (s *OfferService) CreateOffer(ctx context.Context, caller shared.Identity, req inbound.CreateOfferRequest) (string, error) {
	if req.Amount == nil || *req.Amount <= 0 {
		return "", shared.ErrInvalidOfferAmount
	}

	p, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Warn().Err(err).Str("product_id", req.ProductID).Msg("Offer target product not found")
		return "", err
	}

	now := time.Now()
	o := &offer.Offer{
		ProductID: p.ID,
		BuyerID:   caller.UserID,
		SellerID:  p.OwnerID,
		Amount:    *req.Amount,
		Message:   req.Message,
		Status:    offer.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if o.IsSelfOffer() {
		s.logger.Warn().
			Str("product_id", p.ID).
			Str("buyer_id", caller.UserID).
			Msg("Rejected self-offer")
		return "", shared.ErrSelfOffer
	}

	if err := s.offerRepo.Create(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("product_id", p.ID).Msg("Failed to create offer")
		return "", err
	}

	s.logger.Info().
		Str("offer_id", o.ID).
		Str("product_id", o.ProductID).
		Str("buyer_id", o.BuyerID).
		Str("seller_id", o.SellerID).
		Float64("amount", o.Amount).
		Msg("Offer created")

	s.publishOfferEvent(ctx, outbound.EventTypeOfferReceived, o.SellerID, o)

	return o.ID, nil
}

// ListOffers retrieves the caller's offers for one role, newest first
func (s *OfferService) ListOffers(ctx context.Context, caller shared.Identity, req inbound.ListOffersRequest) (*inbound.OfferPage, error) {
	role := outbound.OfferRole(req.Role)
	if role != outbound.OfferRoleBuyer && role != outbound.OfferRoleSeller {
		return nil, shared.ErrInvalidOfferRole
	}

	page, pageSize := normalizePage(req.Page, req.PageSize, defaultPageSize)

	items, err := s.offerRepo.FindByUser(ctx, caller.UserID, role, s.fetchCap)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID).Msg("Failed to list offers")
		return nil, err
	}

	pageItems, total := paginate(items, page, pageSize)

	return &inbound.OfferPage{
		Items:    pageItems,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// DecideOffer moves a pending offer to accepted or declined. The transition
// is legal only from pending, only for the seller stored on the offer, and
// exactly once; the store write itself matches on status=pending so a
// concurrent decision can never be overwritten.
func (s *OfferService) DecideOffer(ctx context.Context, caller shared.Identity, id string, req inbound.DecideOfferRequest) (*offer.Offer, error) {
	to := offer.Status(req.Status)
	if !to.IsDecision() {
		return nil, shared.ErrInvalidOfferStatus
	}

	o, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.SellerID != caller.UserID {
		s.logger.Warn().
			Str("offer_id", id).
			Str("caller_id", caller.UserID).
			Str("seller_id", o.SellerID).
			Msg("Non-seller attempted to decide offer")
		return nil, shared.ErrForbidden
	}

	if !o.IsPending() {
		return nil, shared.ErrOfferAlreadyProcessed
	}

	updated, err := s.offerRepo.Transition(ctx, id, caller.UserID, to)
	if err != nil {
		s.logger.Warn().Err(err).Str("offer_id", id).Str("status", string(to)).Msg("Offer transition failed")
		return nil, err
	}

	s.logger.Info().
		Str("offer_id", updated.ID).
		Str("seller_id", updated.SellerID).
		Str("status", string(updated.Status)).
		Msg("Offer decided")

	eventType := outbound.EventTypeOfferAccepted
	if to == offer.StatusDeclined {
		eventType = outbound.EventTypeOfferDeclined
	}
	s.publishOfferEvent(ctx, eventType, updated.BuyerID, updated)

	return updated, nil
}

// publishOfferEvent broadcasts an offer event to one user. Failures are
// logged and never fail the triggering request.
func (s *OfferService) publishOfferEvent(ctx context.Context, eventType outbound.EventType, userID string, o *offer.Offer) {
	if s.broadcaster == nil {
		return
	}

	event := outbound.Event{
		Type:   eventType,
		UserID: userID,
		Data: map[string]interface{}{
			"offer_id":   o.ID,
			"product_id": o.ProductID,
			"buyer_id":   o.BuyerID,
			"seller_id":  o.SellerID,
			"amount":     o.Amount,
			"status":     string(o.Status),
		},
		Timestamp: time.Now().Unix(),
	}

	if err := s.broadcaster.Publish(ctx, userID, event); err != nil {
		s.logger.Error().Err(err).
			Str("offer_id", o.ID).
			Str("user_id", userID).
			Str("event_type", string(eventType)).
			Msg("Failed to broadcast offer event")
		return
	}

	s.logger.Debug().
		Str("offer_id", o.ID).
		Str("user_id", userID).
		Str("event_type", string(eventType)).
		Msg("Offer event broadcasted")
}
