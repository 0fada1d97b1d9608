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

// offerPage is the cached form of a list result. Derived fields are resolved
// per request so that isActive never goes stale inside the TTL.
type offerPage struct {
	Offers   []*domain.Offer   `json:"offers"`
	Products []*domain.Product `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

type offerItem struct {
	Offer   *domain.Offer   `json:"offer"`
	Product *domain.Product `json:"product,omitempty"`
}

type OfferService struct {
	repo     ports.OfferRepository
	products ports.ProductRepository
	page     readThrough[*offerPage]
	item     readThrough[*offerItem]
	audit    ports.AuditRecorder
	now      func() time.Time
	log      zerolog.Logger
}

// NewOfferService wires the offer use cases. cache must be dedicated to offers.
func NewOfferService(
	repo ports.OfferRepository,
	products ports.ProductRepository,
	cache ports.Cache,
	ttl time.Duration,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *OfferService {
	if audit == nil {
		audit = NopRecorder{}
	}
	return &OfferService{
		repo:     repo,
		products: products,
		page:     newReadThrough[*offerPage](cache, ttl, domain.EntityOffer, log),
		item:     newReadThrough[*offerItem](cache, ttl, domain.EntityOffer, log),
		audit:    audit,
		now:      time.Now,
		log:      log,
	}
}

// SetClock overrides the time source used for isActive and timestamps.
func (s *OfferService) SetClock(now func() time.Time) { s.now = now }

// List returns a page of offers with their products populated. The active
// filter is evaluated when the page is loaded, so a cached active list may
// include an offer that expired less than one TTL ago.
func (s *OfferService) List(ctx context.Context, in ports.ListOffersInput) (*ports.OfferPage, error) {
	productID := strings.TrimSpace(in.ProductID)
	page, limit := normalizePage(in.Page, in.Limit)

	key := fmt.Sprintf("list:product=%s:active=%t:page=%d:limit=%d", productID, in.ActiveOnly, page, limit)
	cached, err := s.page.get(ctx, key, func(ctx context.Context) (*offerPage, error) {
		filter := ports.OfferFilter{ProductID: productID, Page: page, Limit: limit}
		if in.ActiveOnly {
			filter.ActiveAt = s.now()
		}
		offers, total, err := s.repo.List(ctx, filter)
		if err != nil {
			s.log.Error().Err(err).Str("op", "offer.list").Msg("failed to list offers")
			return nil, fmt.Errorf("list offers: %w", err)
		}
		products, err := s.products.FindByIDs(ctx, productIDs(offers))
		if err != nil {
			return nil, fmt.Errorf("list offers: populate products: %w", err)
		}
		return &offerPage{Offers: offers, Products: products, Total: total, Page: page, Limit: limit}, nil
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.Product, len(cached.Products))
	for _, p := range cached.Products {
		byID[p.ID] = p
	}
	now := s.now()
	views := make([]ports.OfferView, 0, len(cached.Offers))
	for _, o := range cached.Offers {
		views = append(views, view(o, byID[o.Product], now))
	}

	return &ports.OfferPage{
		Offers:      views,
		TotalCount:  cached.Total,
		CurrentPage: cached.Page,
		TotalPages:  totalPages(cached.Total, cached.Limit),
	}, nil
}

func (s *OfferService) Get(ctx context.Context, id string) (*ports.OfferView, error) {
	item, err := s.item.get(ctx, "id:"+id, func(ctx context.Context) (*offerItem, error) {
		o, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		p, err := s.products.FindByID(ctx, o.Product)
		if err != nil && !errors.Is(err, domain.ErrProductNotFound) {
			return nil, fmt.Errorf("get offer: populate product: %w", err)
		}
		return &offerItem{Offer: o, Product: p}, nil
	})
	if err != nil {
		return nil, err
	}
	v := view(item.Offer, item.Product, s.now())
	return &v, nil
}

func (s *OfferService) Create(ctx context.Context, in ports.CreateOfferInput) (*ports.OfferView, error) {
	now := s.now().UTC()
	o := &domain.Offer{
		Title:     strings.TrimSpace(in.Title),
		Discount:  in.Discount,
		Product:   strings.TrimSpace(in.ProductID),
		ValidFrom: in.ValidFrom.UTC(),
		ValidTo:   in.ValidTo.UTC(),
		Terms:     strings.TrimSpace(in.Terms),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	product, err := s.referencedProduct(ctx, o.Product)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, o)
	if err != nil {
		s.log.Error().Err(err).Str("op", "offer.create").Msg("failed to create offer")
		return nil, fmt.Errorf("create offer: %w", err)
	}
	s.page.flush(ctx)
	record(ctx, s.audit, domain.EntityOffer, created.ID, domain.AuditCreated, s.now)

	v := view(created, product, s.now())
	return &v, nil
}

// Update applies a partial update. The validity window is re-checked against
// the stored values, so moving only validTo before validFrom is rejected.
func (s *OfferService) Update(ctx context.Context, id string, in ports.UpdateOfferInput) (*ports.OfferView, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.wrap("update", err)
	}

	if in.Title != nil {
		o.Title = strings.TrimSpace(*in.Title)
	}
	if in.Discount != nil {
		o.Discount = *in.Discount
	}
	if in.ProductID != nil {
		o.Product = strings.TrimSpace(*in.ProductID)
	}
	if in.ValidFrom != nil {
		o.ValidFrom = in.ValidFrom.UTC()
	}
	if in.ValidTo != nil {
		o.ValidTo = in.ValidTo.UTC()
	}
	if in.Terms != nil {
		o.Terms = strings.TrimSpace(*in.Terms)
	}
	o.UpdatedAt = s.now().UTC()
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var product *domain.Product
	if in.ProductID != nil {
		if product, err = s.referencedProduct(ctx, o.Product); err != nil {
			return nil, err
		}
	} else if product, err = s.products.FindByID(ctx, o.Product); err != nil && !errors.Is(err, domain.ErrProductNotFound) {
		return nil, fmt.Errorf("update offer: populate product: %w", err)
	}

	updated, err := s.repo.Update(ctx, o)
	if err != nil {
		return nil, s.wrap("update", err)
	}
	s.page.flush(ctx)
	record(ctx, s.audit, domain.EntityOffer, updated.ID, domain.AuditUpdated, s.now)

	v := view(updated, product, s.now())
	return &v, nil
}

func (s *OfferService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap("delete", err)
	}
	s.page.flush(ctx)
	record(ctx, s.audit, domain.EntityOffer, id, domain.AuditDeleted, s.now)
	return nil
}

func (s *OfferService) referencedProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil, domain.NewValidationError("product", "product does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup offer product: %w", err)
	}
	return p, nil
}

func (s *OfferService) wrap(op string, err error) error {
	if errors.Is(err, domain.ErrOfferNotFound) {
		return err
	}
	s.log.Error().Err(err).Str("op", "offer."+op).Msg("offer write failed")
	return fmt.Errorf("%s offer: %w", op, err)
}

func view(o *domain.Offer, p *domain.Product, now time.Time) ports.OfferView {
	return ports.OfferView{Offer: o, IsActive: o.IsActive(now), ProductDetails: p}
}

func productIDs(offers []*domain.Offer) []string {
	seen := make(map[string]struct{}, len(offers))
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		if _, ok := seen[o.Product]; ok {
			continue
		}
		seen[o.Product] = struct{}{}
		ids = append(ids, o.Product)
	}
	return ids
}
