package inbound

import (
	"context"

	"troffee-marketplace-service/internal/domain/product"
	"troffee-marketplace-service/internal/domain/shared"
)

// ProductService defines the interface for product operations
type ProductService interface {
	// CreateProduct creates a new product owned by the caller
	CreateProduct(ctx context.Context, caller shared.Identity, req CreateProductRequest) (string, error)

	// GetProduct retrieves a product by ID
	GetProduct(ctx context.Context, id string) (*product.Product, error)

	// ListProducts retrieves a filtered, paginated product listing
	ListProducts(ctx context.Context, req ListProductsRequest) (*ProductPage, error)

	// UpdateProduct applies a partial update to a product owned by the caller
	UpdateProduct(ctx context.Context, caller shared.Identity, id string, req UpdateProductRequest) error

	// DeleteProduct deletes a product owned by the caller
	DeleteProduct(ctx context.Context, caller shared.Identity, id string) error
}

// request to create a product; OwnerID never comes from the client
type CreateProductRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=80"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Inventory   *int     `json:"inventory" binding:"omitempty,gte=0"`
	Condition   string   `json:"condition" binding:"omitempty,oneof=new used refurbished"`
	Category    string   `json:"category" binding:"required,min=2"`
	Visibility  string   `json:"visibility" binding:"omitempty,oneof=public private"`
	Pickup      *bool    `json:"pickup"`
	ShipOptions []string `json:"shipOptions"`
	Photos      []string `json:"photos" binding:"omitempty,max=12"`
}

// request to partially update a product; at least one field must be set
type UpdateProductRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=2,max=80"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Inventory   *int     `json:"inventory" binding:"omitempty,gte=0"`
	Condition   *string  `json:"condition" binding:"omitempty,oneof=new used refurbished"`
	Category    *string  `json:"category" binding:"omitempty,min=2"`
	Visibility  *string  `json:"visibility" binding:"omitempty,oneof=public private"`
	Pickup      *bool    `json:"pickup"`
	ShipOptions []string `json:"shipOptions"`
	Photos      []string `json:"photos" binding:"omitempty,max=12"`
}

// request to list products. CallerID is empty for unauthenticated requests;
// OwnerID is the already-resolved owner filter ("me" resolution happens at
// the HTTP layer).
type ListProductsRequest struct {
	Query     string
	Category  string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	OwnerID   string
	CallerID  string
	Page      int
	PageSize  int
}

// ProductPage is one page of a filtered product listing
type ProductPage struct {
	Items    []*product.Product `json:"items"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int                `json:"total"`
}
