package httpapi

import (
	"net/http"

	"troffee-marketplace-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// OfferHandler exposes the offer endpoints
type OfferHandler struct {
	service inbound.OfferService
	logger  zerolog.Logger
}

// NewOfferHandler creates a new offer handler
func NewOfferHandler(service inbound.OfferService, logger zerolog.Logger) *OfferHandler {
	return &OfferHandler{
		service: service,
		logger:  logger.With().Str("component", "offer_handler").Logger(),
	}
}

// Create handles POST /offers
func (h *OfferHandler) Create(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	var req inbound.CreateOfferRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.service.CreateOffer(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List handles GET /offers?role=buyer|seller
func (h *OfferHandler) List(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	page, err := h.service.ListOffers(c.Request.Context(), caller, inbound.ListOffersRequest{
		Role:     c.Query("role"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Decide handles PATCH /offers/:id
func (h *OfferHandler) Decide(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	var req inbound.DecideOfferRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.service.DecideOffer(c.Request.Context(), caller, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}
