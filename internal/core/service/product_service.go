package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

type ProductService struct {
	repo  ports.ProductRepository
	page  readThrough[*ports.ProductPage]
	item  readThrough[*domain.Product]
	audit ports.AuditRecorder
	now   func() time.Time
	log   zerolog.Logger
}

// NewProductService wires the product use cases. cache must be dedicated to
// products: every write flushes it entirely.
func NewProductService(repo ports.ProductRepository, cache ports.Cache, ttl time.Duration, audit ports.AuditRecorder, log zerolog.Logger) *ProductService {
	if audit == nil {
		audit = NopRecorder{}
	}
	return &ProductService{
		repo:  repo,
		page:  newReadThrough[*ports.ProductPage](cache, ttl, domain.EntityProduct, log),
		item:  newReadThrough[*domain.Product](cache, ttl, domain.EntityProduct, log),
		audit: audit,
		now:   time.Now,
		log:   log,
	}
}

// List returns a page of products, newest first, served from cache when a
// fresh entry exists for the same filter and page.
func (s *ProductService) List(ctx context.Context, in ports.ListProductsInput) (*ports.ProductPage, error) {
	marketplace := domain.Marketplace(strings.TrimSpace(in.Marketplace))
	if marketplace != "" && !marketplace.Valid() {
		return nil, domain.NewValidationError("marketplace", "marketplace must be one of: AWS Azure GCP")
	}
	page, limit := normalizePage(in.Page, in.Limit)

	key := fmt.Sprintf("list:marketplace=%s:page=%d:limit=%d", marketplace, page, limit)
	return s.page.get(ctx, key, func(ctx context.Context) (*ports.ProductPage, error) {
		products, total, err := s.repo.List(ctx, ports.ProductFilter{
			Marketplace: marketplace,
			Page:        page,
			Limit:       limit,
		})
		if err != nil {
			s.log.Error().Err(err).Str("op", "product.list").Msg("failed to list products")
			return nil, fmt.Errorf("list products: %w", err)
		}
		if products == nil {
			products = []*domain.Product{}
		}
		return &ports.ProductPage{
			Products:    products,
			TotalCount:  total,
			CurrentPage: page,
			TotalPages:  totalPages(total, limit),
		}, nil
	})
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.item.get(ctx, "id:"+id, func(ctx context.Context) (*domain.Product, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	now := s.now().UTC()
	p := &domain.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		Marketplace: domain.Marketplace(in.Marketplace),
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Currency == "" {
		p.Currency = domain.DefaultCurrency
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Str("op", "product.create").Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.page.flush(ctx)
	record(ctx, s.audit, domain.EntityProduct, created.ID, domain.AuditCreated, s.now)

	s.log.Info().Str("product_id", created.ID).Str("marketplace", string(created.Marketplace)).Msg("product created")
	return created, nil
}

// Update applies a partial update after re-validating the merged product.
func (s *ProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap("update", err)
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Currency != nil {
		p.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.Marketplace != nil {
		p.Marketplace = domain.Marketplace(*in.Marketplace)
	}
	if in.Available != nil {
		p.Available = *in.Available
	}
	p.UpdatedAt = s.now().UTC()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, s.wrap("update", err)
	}
	s.page.flush(ctx)
	record(ctx, s.audit, domain.EntityProduct, updated.ID, domain.AuditUpdated, s.now)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap("delete", err)
	}
	s.page.flush(ctx)
	record(ctx, s.audit, domain.EntityProduct, id, domain.AuditDeleted, s.now)
	return nil
}

func (s *ProductService) wrap(op string, err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return err
	}
	s.log.Error().Err(err).Str("op", "product."+op).Msg("product write failed")
	return fmt.Errorf("%s product: %w", op, err)
}
