package memory

import (
	"context"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

type ProductRepository struct {
	table[domain.Product]
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{table: table[domain.Product]{rows: make(map[string]*domain.Product)}}
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *p
	cp.ID = newID()
	r.rows[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

func (r *ProductRepository) FindByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Product, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := r.rows[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *ProductRepository) List(_ context.Context, f ports.ProductFilter) ([]*domain.Product, int64, error) {
	var keep func(*domain.Product) bool
	if f.Marketplace != "" {
		keep = func(p *domain.Product) bool { return p.Marketplace == f.Marketplace }
	}
	all := r.sorted(keep, func(a, b *domain.Product) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return page(all, f.Page, f.Limit), int64(len(all)), nil
}

func (r *ProductRepository) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	cp := *p
	r.rows[p.ID] = &cp
	out := cp
	return &out, nil
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *ProductRepository) DeleteAll(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = make(map[string]*domain.Product)
	return nil
}

// TitleCaseNames rewrites every product name to title case under one lock.
func (r *ProductRepository) TitleCaseNames(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var modified int64
	for _, p := range r.rows {
		if titled := domain.TitleCase(p.Name); titled != p.Name {
			p.Name = titled
			modified++
		}
	}
	return modified, nil
}
