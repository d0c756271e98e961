package app

import (
	"context"
	"time"

	"troffee-marketplace-service/internal/domain/review"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// Reviews default to a larger page than products
const reviewDefaultPageSize = 20

// ReviewService implements the review use cases
type ReviewService struct {
	reviewRepo outbound.ReviewRepository
	fetchCap   int
	logger     zerolog.Logger
}

type ReviewServiceParams struct {
	ReviewRepo outbound.ReviewRepository
	FetchCap   int
	Logger     zerolog.Logger
}

// NewReviewService creates a new review service
func NewReviewService(params ReviewServiceParams) *ReviewService {
	return &ReviewService{
		reviewRepo: params.ReviewRepo,
		fetchCap:   params.FetchCap,
		logger:     params.Logger.With().Str("component", "review_service").Logger(),
	}
}

// CreateReview appends a review authored by the caller. Reviews have no
// update or delete path.
func (s *ReviewService) CreateReview(ctx context.Context, caller shared.Identity, req inbound.CreateReviewRequest) (string, error) {
	if req.ProductID == "" {
		return "", shared.ErrMissingProductID
	}
	if !review.RatingValid(req.Rating) {
		return "", shared.ErrInvalidRating
	}

	now := time.Now()
	r := &review.Review{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Text:      req.Text,
		AuthorID:  caller.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.reviewRepo.Create(ctx, r); err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("Failed to create review")
		return "", err
	}

	s.logger.Info().
		Str("review_id", r.ID).
		Str("product_id", r.ProductID).
		Int("rating", r.Rating).
		Msg("Review created")

	return r.ID, nil
}

// ListReviews retrieves a product's reviews newest first, plus the rating
// summary computed over every fetched review, not just the returned page
func (s *ReviewService) ListReviews(ctx context.Context, req inbound.ListReviewsRequest) (*inbound.ReviewPage, error) {
	if req.ProductID == "" {
		return nil, shared.ErrMissingProductID
	}

	page, pageSize := normalizePage(req.Page, req.PageSize, reviewDefaultPageSize)

	items, err := s.reviewRepo.FindByProductID(ctx, req.ProductID, s.fetchCap)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("Failed to list reviews")
		return nil, err
	}

	summary := review.Summarize(items)
	pageItems, _ := paginate(items, page, pageSize)

	return &inbound.ReviewPage{
		Items:    pageItems,
		Summary:  summary,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
