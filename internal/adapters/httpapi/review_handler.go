package httpapi

import (
	"net/http"

	"troffee-marketplace-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ReviewHandler exposes the review endpoints
type ReviewHandler struct {
	service inbound.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service inbound.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("component", "review_handler").Logger(),
	}
}

// Create handles POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	var req inbound.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.service.CreateReview(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List handles GET /reviews?productId=
func (h *ReviewHandler) List(c *gin.Context) {
	page, err := h.service.ListReviews(c.Request.Context(), inbound.ListReviewsRequest{
		ProductID: c.Query("productId"),
		Page:      queryInt(c, "page"),
		PageSize:  queryInt(c, "pageSize"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
