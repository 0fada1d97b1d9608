package ports

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// ProductFilter selects a page of products, newest first.
type ProductFilter struct {
	Marketplace domain.Marketplace // empty = all marketplaces
	Page        int                // 1-based
	Limit       int
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs returns the products that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
