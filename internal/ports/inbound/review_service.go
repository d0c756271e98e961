package inbound

import (
	"context"

	"troffee-marketplace-service/internal/domain/review"
	"troffee-marketplace-service/internal/domain/shared"
)

// ReviewService defines the interface for review operations
type ReviewService interface {
	// CreateReview appends a review authored by the caller
	CreateReview(ctx context.Context, caller shared.Identity, req CreateReviewRequest) (string, error)

	// ListReviews retrieves a product's reviews plus an average/count summary
	ListReviews(ctx context.Context, req ListReviewsRequest) (*ReviewPage, error)
}

// request to create a review
type CreateReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Text      string `json:"text" binding:"omitempty,max=500"`
}

// request to list a product's reviews
type ListReviewsRequest struct {
	ProductID string
	Page      int
	PageSize  int
}

// ReviewPage is one page of reviews with the rating summary
type ReviewPage struct {
	Items    []*review.Review `json:"items"`
	Summary  review.Summary   `json:"summary"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}
