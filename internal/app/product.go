package app

import (
	"context"
	"strings"
	"time"

	"troffee-marketplace-service/internal/domain/product"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/rs/zerolog"
)

// ProductService implements the product use cases
type ProductService struct {
	productRepo outbound.ProductRepository
	fetchCap    int
	logger      zerolog.Logger
}

type ProductServiceParams struct {
	ProductRepo outbound.ProductRepository
	FetchCap    int
	Logger      zerolog.Logger
}

// NewProductService creates a new product service
func NewProductService(params ProductServiceParams) *ProductService {
	return &ProductService{
		productRepo: params.ProductRepo,
		fetchCap:    params.FetchCap,
		logger:      params.Logger.With().Str("component", "product_service").Logger(),
	}
}

// CreateProduct creates a new product. The owner is always the verified
// caller; any ownerId present in the request body is never consulted.
func (s *ProductService) CreateProduct(ctx context.Context, caller shared.Identity, req inbound.CreateProductRequest) (string, error) {
	category := strings.TrimSpace(req.Category)
	if len(category) < 2 {
		return "", shared.NewValidationError(shared.Issue{Field: "category", Message: "must be at least 2 characters"})
	}

	now := time.Now()
	p := &product.Product{
		Title:       strings.TrimSpace(req.Title),
		Price:       *req.Price,
		Inventory:   1,
		Condition:   product.ConditionUsed,
		Category:    category,
		Visibility:  product.VisibilityPublic,
		Pickup:      true,
		ShipOptions: []string{},
		Photos:      []string{},
		OwnerID:     caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.Inventory != nil {
		p.Inventory = *req.Inventory
	}
	if req.Condition != "" {
		p.Condition = product.Condition(req.Condition)
	}
	if req.Visibility != "" {
		p.Visibility = product.Visibility(req.Visibility)
	}
	if req.Pickup != nil {
		p.Pickup = *req.Pickup
	}
	if req.ShipOptions != nil {
		p.ShipOptions = req.ShipOptions
	}
	if req.Photos != nil {
		p.Photos = req.Photos
	}

	if err := s.productRepo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("owner_id", caller.UserID).Msg("Failed to create product")
		return "", err
	}

	s.logger.Info().
		Str("product_id", p.ID).
		Str("owner_id", caller.UserID).
		Str("category", p.Category).
		Msg("Product created")

	return p.ID, nil
}

// GetProduct retrieves a single product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

// ListProducts retrieves a filtered, paginated listing ordered by creation
// time descending. Unless the caller lists their own products, only public
// records are visible regardless of other filters.
func (s *ProductService) ListProducts(ctx context.Context, req inbound.ListProductsRequest) (*inbound.ProductPage, error) {
	page, pageSize := normalizePage(req.Page, req.PageSize, defaultPageSize)

	filter := outbound.ProductFilter{
		Category:  strings.TrimSpace(req.Category),
		Condition: product.Condition(strings.TrimSpace(req.Condition)),
		OwnerID:   req.OwnerID,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
		Limit:     s.fetchCap,
	}

	// Private records are listable only by their owner
	ownOnly := req.OwnerID != "" && req.CallerID != "" && req.OwnerID == req.CallerID
	if !ownOnly {
		filter.Visibility = product.VisibilityPublic
	}

	items, err := s.productRepo.Find(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list products")
		return nil, err
	}

	// Free-text filter stays in memory; the store only handles equality and
	// range filters
	if q := strings.TrimSpace(req.Query); q != "" {
		matched := items[:0]
		for _, p := range items {
			if p.MatchesQuery(q) {
				matched = append(matched, p)
			}
		}
		items = matched
	}

	pageItems, total := paginate(items, page, pageSize)

	return &inbound.ProductPage{
		Items:    pageItems,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// UpdateProduct applies a partial update to a product owned by the caller
func (s *ProductService) UpdateProduct(ctx context.Context, caller shared.Identity, id string, req inbound.UpdateProductRequest) error {
	_, err := requireOwner(ctx, caller.UserID,
		func(ctx context.Context) (*product.Product, error) { return s.productRepo.GetByID(ctx, id) },
		func(p *product.Product) string { return p.OwnerID },
	)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.Inventory != nil {
		fields["inventory"] = *req.Inventory
	}
	if req.Condition != nil {
		fields["condition"] = *req.Condition
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if len(category) < 2 {
			return shared.NewValidationError(shared.Issue{Field: "category", Message: "must be at least 2 characters"})
		}
		fields["category"] = category
	}
	if req.Visibility != nil {
		fields["visibility"] = *req.Visibility
	}
	if req.Pickup != nil {
		fields["pickup"] = *req.Pickup
	}
	if req.ShipOptions != nil {
		fields["ship_options"] = req.ShipOptions
	}
	if req.Photos != nil {
		fields["photos"] = req.Photos
	}

	if len(fields) == 0 {
		return shared.ErrNoFieldsToUpdate
	}

	if err := s.productRepo.Update(ctx, id, fields); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("Failed to update product")
		return err
	}

	s.logger.Info().Str("product_id", id).Str("owner_id", caller.UserID).Msg("Product updated")
	return nil
}

// DeleteProduct deletes a product owned by the caller
func (s *ProductService) DeleteProduct(ctx context.Context, caller shared.Identity, id string) error {
	_, err := requireOwner(ctx, caller.UserID,
		func(ctx context.Context) (*product.Product, error) { return s.productRepo.GetByID(ctx, id) },
		func(p *product.Product) string { return p.OwnerID },
	)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("Failed to delete product")
		return err
	}

	s.logger.Info().Str("product_id", id).Str("owner_id", caller.UserID).Msg("Product deleted")
	return nil
}
