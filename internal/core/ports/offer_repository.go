package ports

import (
	"context"
	"time"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// OfferFilter selects a page of offers ordered by ValidFrom descending.
type OfferFilter struct {
	ProductID string    // optional
	ActiveAt  time.Time // optional: only offers whose window contains ActiveAt
	Page      int
	Limit     int
}

// OfferRepository defines persistence operations for offers.
type OfferRepository interface {
	Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error)
	FindByID(ctx context.Context, id string) (*domain.Offer, error)
	List(ctx context.Context, filter OfferFilter) ([]*domain.Offer, int64, error)
	Update(ctx context.Context, o *domain.Offer) (*domain.Offer, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
