package httpapi

import (
	"net/http"
	"strconv"

	"troffee-marketplace-service/internal/ports/inbound"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProductHandler exposes the product endpoints
type ProductHandler struct {
	service inbound.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service inbound.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("component", "product_handler").Logger(),
	}
}

// Create handles POST /products
func (h *ProductHandler) Create(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	var req inbound.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	id, err := h.service.CreateProduct(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List handles GET /products, with optional auth so ownerId=me can resolve
func (h *ProductHandler) List(c *gin.Context) {
	req := inbound.ListProductsRequest{
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		MinPrice:  queryFloat(c, "minPrice"),
		MaxPrice:  queryFloat(c, "maxPrice"),
		Page:      queryInt(c, "page"),
		PageSize:  queryInt(c, "pageSize"),
	}

	caller, authed := callerIdentity(c)
	if authed {
		req.CallerID = caller.UserID
	}

	if ownerID := c.Query("ownerId"); ownerID != "" {
		if ownerID == "me" {
			if !authed {
				c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
				return
			}
			ownerID = caller.UserID
		}
		req.OwnerID = ownerID
	}

	page, err := h.service.ListProducts(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// MyProducts handles GET /me/products
func (h *ProductHandler) MyProducts(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	page, err := h.service.ListProducts(c.Request.Context(), inbound.ListProductsRequest{
		OwnerID:  caller.UserID,
		CallerID: caller.UserID,
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	var req inbound.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateProduct(c.Request.Context(), caller, c.Param("id"), req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	caller, ok := callerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Missing Bearer token"})
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// queryInt parses an integer query parameter, zero when absent or malformed
func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

// queryFloat parses a float query parameter, nil when absent or malformed
func queryFloat(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
