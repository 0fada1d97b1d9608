package memory

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

type OfferRepository struct {
	table[domain.Offer]
}

func NewOfferRepository() *OfferRepository {
	return &OfferRepository{table: table[domain.Offer]{rows: make(map[string]*domain.Offer)}}
}

func (r *OfferRepository) Create(_ context.Context, o *domain.Offer) (*domain.Offer, error) {
	if !validID(o.Product) {
		return nil, domain.NewValidationError("product", "product must be a valid id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *o
	cp.ID = newID()
	r.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *OfferRepository) FindByID(_ context.Context, id string) (*domain.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrOfferNotFound
	}
	out := *o
	return &out, nil
}

func (r *OfferRepository) List(_ context.Context, f ports.OfferFilter) ([]*domain.Offer, int64, error) {
	keep := func(o *domain.Offer) bool {
		if f.ProductID != "" && o.Product != f.ProductID {
			return false
		}
		if !f.ActiveAt.IsZero() && !o.IsActive(f.ActiveAt) {
			return false
		}
		return true
	}
	all := r.sorted(keep, func(a, b *domain.Offer) bool {
		if !a.ValidFrom.Equal(b.ValidFrom) {
			return a.ValidFrom.After(b.ValidFrom)
		}
		return a.ID > b.ID
	})
	return page(all, f.Page, f.Limit), int64(len(all)), nil
}

func (r *OfferRepository) Update(_ context.Context, o *domain.Offer) (*domain.Offer, error) {
	if !validID(o.Product) {
		return nil, domain.NewValidationError("product", "product must be a valid id")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[o.ID]; !ok {
		return nil, domain.ErrOfferNotFound
	}
	cp := *o
	r.rows[o.ID] = &cp
	out := cp
	return &out, nil
}

func (r *OfferRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrOfferNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *OfferRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]*domain.Offer)
	return nil
}
