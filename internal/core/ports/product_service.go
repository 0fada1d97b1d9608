package ports

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// ListProductsInput carries the list endpoint query parameters.
type ListProductsInput struct {
	Marketplace string
	Page        int
	Limit       int
}

// ProductPage is a page of products with pagination metadata.
type ProductPage struct {
	Products    []*domain.Product `json:"products"`
	TotalCount  int64             `json:"totalCount"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

// CreateProductInput carries a new product. Available defaults to true and
// Currency to domain.DefaultCurrency.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Currency    string
	Marketplace string
	Available   *bool
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
	Currency    *string
	Marketplace *string
	Available   *bool
}

// ProductService defines use-case operations for products.
type ProductService interface {
	List(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}
