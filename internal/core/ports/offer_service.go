package ports

import (
	"context"
	"time"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
)

// ListOffersInput carries the offer list query parameters.
type ListOffersInput struct {
	ProductID  string
	ActiveOnly bool
	Page       int
	Limit      int
}

// OfferView is an offer with its derived fields resolved.
type OfferView struct {
	*domain.Offer
	IsActive       bool            `json:"isActive"`
	ProductDetails *domain.Product `json:"productDetails,omitempty"`
}

// OfferPage is a page of offers with pagination metadata.
type OfferPage struct {
	Offers      []OfferView `json:"offers"`
	TotalCount  int64       `json:"totalCount"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
}

// CreateOfferInput carries a new offer.
type CreateOfferInput struct {
	Title     string
	Discount  float64
	ProductID string
	ValidFrom time.Time
	ValidTo   time.Time
	Terms     string
}

// UpdateOfferInput is a partial update; nil fields are left unchanged.
type UpdateOfferInput struct {
	Title     *string
	Discount  *float64
	ProductID *string
	ValidFrom *time.Time
	ValidTo   *time.Time
	Terms     *string
}

// OfferService defines use-case operations for offers.
type OfferService interface {
	List(ctx context.Context, input ListOffersInput) (*OfferPage, error)
	Get(ctx context.Context, id string) (*OfferView, error)
	Create(ctx context.Context, input CreateOfferInput) (*OfferView, error)
	Update(ctx context.Context, id string, input UpdateOfferInput) (*OfferView, error)
	Delete(ctx context.Context, id string) error
}
