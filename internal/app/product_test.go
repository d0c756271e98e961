package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"troffee-marketplace-service/internal/domain/product"
	"troffee-marketplace-service/internal/domain/shared"
	"troffee-marketplace-service/internal/ports/inbound"
	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[string]*product.Product
	order    []string // insertion order, newest last
	nextID   int
	findErr  error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*product.Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *product.Product) error {
	f.nextID++
	p.ID = fmt.Sprintf("prod-%d", f.nextID)
	cp := *p
	f.products[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, shared.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*product.Product, error) {
	out := map[string]*product.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Find(_ context.Context, filter outbound.ProductFilter) ([]*product.Product, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}

	var out []*product.Product
	// newest first
	for i := len(f.order) - 1; i >= 0; i-- {
		p := f.products[f.order[i]]
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Condition != "" && p.Condition != filter.Condition {
			continue
		}
		if filter.Visibility != "" && p.Visibility != filter.Visibility {
			continue
		}
		if filter.OwnerID != "" && p.OwnerID != filter.OwnerID {
			continue
		}
		if filter.MinPrice != nil && p.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && p.Price > *filter.MaxPrice {
			continue
		}
		cp := *p
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	p, ok := f.products[id]
	if !ok {
		return shared.ErrProductNotFound
	}
	if title, ok := fields["title"].(string); ok {
		p.Title = title
	}
	if price, ok := fields["price"].(float64); ok {
		p.Price = price
	}
	if visibility, ok := fields["visibility"].(string); ok {
		p.Visibility = product.Visibility(visibility)
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return shared.ErrProductNotFound
	}
	delete(f.products, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func newTestProductService(repo *fakeProductRepo) *ProductService {
	return NewProductService(ProductServiceParams{
		ProductRepo: repo,
		FetchCap:    200,
		Logger:      zerolog.Nop(),
	})
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestCreateProductOwnerIsCaller(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)
	caller := shared.Identity{UserID: "user-1"}

	id, err := svc.CreateProduct(context.Background(), caller, inbound.CreateProductRequest{
		Title:    "  Vintage Lamp  ",
		Price:    floatPtr(25),
		Category: "furniture",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	p, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.OwnerID)
	assert.Equal(t, "Vintage Lamp", p.Title)
}

func TestCreateProductDefaults(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)

	id, err := svc.CreateProduct(context.Background(), shared.Identity{UserID: "user-1"}, inbound.CreateProductRequest{
		Title:    "Bike",
		Price:    floatPtr(100),
		Category: "sports",
	})
	require.NoError(t, err)

	p, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Inventory)
	assert.Equal(t, product.ConditionUsed, p.Condition)
	assert.Equal(t, product.VisibilityPublic, p.Visibility)
	assert.True(t, p.Pickup)
	assert.NotNil(t, p.ShipOptions)
	assert.NotNil(t, p.Photos)
}

func TestCreateProductCategoryTooShortAfterTrim(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)

	_, err := svc.CreateProduct(context.Background(), shared.Identity{UserID: "user-1"}, inbound.CreateProductRequest{
		Title:    "Bike",
		Price:    floatPtr(100),
		Category: " a ",
	})

	var verr *shared.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "category", verr.Issues[0].Field)
}

func TestListProductsHidesPrivateFromOthers(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)
	owner := shared.Identity{UserID: "owner-1"}

	_, err := svc.CreateProduct(context.Background(), owner, inbound.CreateProductRequest{
		Title: "Public Chair", Price: floatPtr(10), Category: "furniture",
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), owner, inbound.CreateProductRequest{
		Title: "Private Chair", Price: floatPtr(20), Category: "furniture", Visibility: "private",
	})
	require.NoError(t, err)

	// Anonymous caller sees only the public record
	page, err := svc.ListProducts(context.Background(), inbound.ListProductsRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Public Chair", page.Items[0].Title)

	// The owner listing their own products sees both
	page, err = svc.ListProducts(context.Background(), inbound.ListProductsRequest{
		OwnerID:  owner.UserID,
		CallerID: owner.UserID,
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	// Another caller filtering by the same owner still sees only public
	page, err = svc.ListProducts(context.Background(), inbound.ListProductsRequest{
		OwnerID:  owner.UserID,
		CallerID: "someone-else",
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestListProductsPagination(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)
	caller := shared.Identity{UserID: "owner-1"}

	for i := 0; i < 25; i++ {
		_, err := svc.CreateProduct(context.Background(), caller, inbound.CreateProductRequest{
			Title:    fmt.Sprintf("Item %02d", i),
			Price:    floatPtr(float64(i)),
			Category: "misc",
		})
		require.NoError(t, err)
	}

	page, err := svc.ListProducts(context.Background(), inbound.ListProductsRequest{
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	require.Len(t, page.Items, 10)
	// Newest first: page 2 starts at the 11th newest, "Item 14"
	assert.Equal(t, "Item 14", page.Items[0].Title)

	// Past the end
	page, err = svc.ListProducts(context.Background(), inbound.ListProductsRequest{
		Page:     4,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 25, page.Total)
}

func TestListProductsFreeTextQuery(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)
	caller := shared.Identity{UserID: "owner-1"}

	for _, title := range []string{"Road Bike", "Mountain Bike", "Tennis Racket"} {
		_, err := svc.CreateProduct(context.Background(), caller, inbound.CreateProductRequest{
			Title: title, Price: floatPtr(50), Category: "sports",
		})
		require.NoError(t, err)
	}

	page, err := svc.ListProducts(context.Background(), inbound.ListProductsRequest{Query: "bike"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)

	// Category matches too
	page, err = svc.ListProducts(context.Background(), inbound.ListProductsRequest{Query: "SPORTS"})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)
	owner := shared.Identity{UserID: "owner-1"}

	id, err := svc.CreateProduct(context.Background(), owner, inbound.CreateProductRequest{
		Title: "Desk", Price: floatPtr(80), Category: "furniture",
	})
	require.NoError(t, err)

	err = svc.UpdateProduct(context.Background(), shared.Identity{UserID: "intruder"}, id, inbound.UpdateProductRequest{
		Title: strPtr("Stolen Desk"),
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.UpdateProduct(context.Background(), owner, id, inbound.UpdateProductRequest{
		Title: strPtr("Standing Desk"),
	})
	require.NoError(t, err)

	p, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Standing Desk", p.Title)
}

func TestUpdateProductNoFields(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)
	owner := shared.Identity{UserID: "owner-1"}

	id, err := svc.CreateProduct(context.Background(), owner, inbound.CreateProductRequest{
		Title: "Desk", Price: floatPtr(80), Category: "furniture",
	})
	require.NoError(t, err)

	err = svc.UpdateProduct(context.Background(), owner, id, inbound.UpdateProductRequest{})
	assert.ErrorIs(t, err, shared.ErrNoFieldsToUpdate)
}

func TestUpdateProductNotFoundBeforeForbidden(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)

	err := svc.UpdateProduct(context.Background(), shared.Identity{UserID: "anyone"}, "missing", inbound.UpdateProductRequest{
		Title: strPtr("Nope"),
	})
	assert.ErrorIs(t, err, shared.ErrProductNotFound)
}

func TestDeleteProductOwnerOnly(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestProductService(repo)
	owner := shared.Identity{UserID: "owner-1"}

	id, err := svc.CreateProduct(context.Background(), owner, inbound.CreateProductRequest{
		Title: "Desk", Price: floatPtr(80), Category: "furniture",
	})
	require.NoError(t, err)

	err = svc.DeleteProduct(context.Background(), shared.Identity{UserID: "intruder"}, id)
	assert.ErrorIs(t, err, shared.ErrForbidden)

	err = svc.DeleteProduct(context.Background(), owner, id)
	require.NoError(t, err)

	_, err = svc.GetProduct(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrProductNotFound)
}
