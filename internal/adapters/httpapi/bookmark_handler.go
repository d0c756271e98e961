package httpapi

import (
	"net/http"

	"troffee-marketplace-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BookmarkHandler exposes the bookmark endpoints
type BookmarkHandler struct {
	service inbound.BookmarkService
	logger  zerolog.Logger
}

// NewBookmarkHandler creates a new bookmark handler
func NewBookmarkHandler(service inbound.BookmarkService, logger zerolog.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		service: service,
		logger:  logger.With().Str("component", "bookmark_handler").Logger(),
	}
}

// Create handles POST /bookmarks; creation is idempotent per (user, product)
func (h *BookmarkHandler) Create(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	var req inbound.CreateBookmarkRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.service.CreateBookmark(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Status handles GET /bookmarks/status?productId=
func (h *BookmarkHandler) Status(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	status, err := h.service.BookmarkStatus(c.Request.Context(), caller, c.Query("productId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// List handles GET /bookmarks, joining each bookmark with its product
func (h *BookmarkHandler) List(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	items, err := h.service.ListBookmarks(c.Request.Context(), caller)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Delete handles DELETE /bookmarks/:id
func (h *BookmarkHandler) Delete(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	if err := h.service.DeleteBookmark(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
