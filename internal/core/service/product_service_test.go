package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/cache"
	"github.com/cloudmarket/marketplace-api/internal/infrastructure/db/memory"
)

// countingProducts counts the reads that reach the repository.
type countingProducts struct {
	*memory.ProductRepository
	mu    sync.Mutex
	lists int
	finds int
}

func (r *countingProducts) List(ctx context.Context, f ports.ProductFilter) ([]*domain.Product, int64, error) {
	r.mu.Lock()
	r.lists++
	r.mu.Unlock()
	return r.ProductRepository.List(ctx, f)
}

func (r *countingProducts) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	r.mu.Lock()
	r.finds++
	r.mu.Unlock()
	return r.ProductRepository.FindByID(ctx, id)
}

// recorder collects audit events synchronously.
type recorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recorder) Record(e domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEvent(nil), r.events...)
}

type productFixture struct {
	svc   *ProductService
	repo  *countingProducts
	cache *cache.Memory
	audit *recorder
	clock *time.Time
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f := &productFixture{
		repo:  &countingProducts{ProductRepository: memory.NewProductRepository()},
		audit: &recorder{},
		clock: &now,
	}
	f.cache = cache.NewMemory(func() time.Time { return *f.clock })
	f.svc = NewProductService(f.repo, f.cache, DefaultCacheTTL, f.audit, zerolog.Nop())
	f.svc.now = func() time.Time {
		*f.clock = f.clock.Add(time.Millisecond)
		return *f.clock
	}
	return f
}

func (f *productFixture) create(t *testing.T, name string, mp domain.Marketplace) *domain.Product {
	t.Helper()
	p, err := f.svc.Create(context.Background(), ports.CreateProductInput{Name: name, Price: 10, Marketplace: string(mp)})
	require.NoError(t, err)
	return p
}

func TestProductService_ListIsReadThrough(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	first, err := f.svc.List(ctx, ports.ListProductsInput{})
	require.NoError(t, err)
	second, err := f.svc.List(ctx, ports.ListProductsInput{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 1, f.repo.lists, "second identical query must be served from cache")
	assert.Equal(t, first, second)
	assert.NotNil(t, first.Products)
	assert.Empty(t, first.Products)

	*f.clock = f.clock.Add(DefaultCacheTTL)
	_, err = f.svc.List(ctx, ports.ListProductsInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.repo.lists, "expired entry must be reloaded")
}

func TestProductService_WritesFlushCache(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	before, err := f.svc.List(ctx, ports.ListProductsInput{})
	require.NoError(t, err)
	require.Empty(t, before.Products)

	created := f.create(t, "Test Product", domain.MarketplaceAWS)
	afterCreate, err := f.svc.List(ctx, ports.ListProductsInput{})
	require.NoError(t, err)
	require.Len(t, afterCreate.Products, 1)
	assert.Equal(t, created.ID, afterCreate.Products[0].ID)

	// Warm the single-item slot, then update.
	_, err = f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	name := "Renamed"
	_, err = f.svc.Update(ctx, created.ID, ports.UpdateProductInput{Name: &name})
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	afterDelete, err := f.svc.List(ctx, ports.ListProductsInput{})
	require.NoError(t, err)
	assert.Empty(t, afterDelete.Products)
	assert.EqualValues(t, 0, afterDelete.TotalCount)

	events := f.audit.all()
	require.Len(t, events, 3)
	assert.Equal(t, domain.AuditCreated, events[0].Action)
	assert.Equal(t, domain.AuditUpdated, events[1].Action)
	assert.Equal(t, domain.AuditDeleted, events[2].Action)
	for _, e := range events {
		assert.Equal(t, domain.EntityProduct, e.Entity)
		assert.Equal(t, created.ID, e.EntityID)
	}
}

func TestProductService_Pagination(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()
	for i := 0; i < 23; i++ {
		f.create(t, "p", domain.MarketplaceGCP)
	}

	tests := []struct {
		page, limit        int
		wantLen, wantPages int
	}{
		{1, 10, 10, 3},
		{3, 10, 3, 3},
		{4, 10, 0, 3},
		{1, 23, 23, 1},
		{2, 5, 5, 5},
		{0, 0, 10, 3},
	}
	for _, tt := range tests {
		page, err := f.svc.List(ctx, ports.ListProductsInput{Page: tt.page, Limit: tt.limit})
		require.NoError(t, err)
		assert.Len(t, page.Products, tt.wantLen, "page=%d limit=%d", tt.page, tt.limit)
		assert.Equal(t, tt.wantPages, page.TotalPages, "page=%d limit=%d", tt.page, tt.limit)
		assert.EqualValues(t, 23, page.TotalCount)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(1, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
	assert.Equal(t, 0, totalPages(5, 0))
}

func TestProductService_CreateDefaultsAndValidation(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()

	p, err := f.svc.Create(ctx, ports.CreateProductInput{Name: "  Storage ", Price: 49.99, Marketplace: "AWS", Currency: "eur"})
	require.NoError(t, err)
	assert.Equal(t, "Storage", p.Name)
	assert.Equal(t, "EUR", p.Currency)
	assert.True(t, p.Available)
	assert.Equal(t, "EUR 49.99", p.FormattedPrice())

	_, err = f.svc.Create(ctx, ports.CreateProductInput{Name: "", Price: -1, Marketplace: "IBM"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)

	_, err = f.svc.List(ctx, ports.ListProductsInput{Marketplace: "IBM"})
	assert.ErrorAs(t, err, &ve)
}

func TestProductService_NotFound(t *testing.T) {
	f := newProductFixture(t)
	ctx := context.Background()
	missing := "65a1f0c2e4b0a1b2c3d4e5f6"

	_, err := f.svc.Get(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	_, err = f.svc.Get(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 2, f.repo.finds, "errors are never cached")

	price := 1.0
	_, err = f.svc.Update(ctx, missing, ports.UpdateProductInput{Price: &price})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, f.svc.Delete(ctx, missing), domain.ErrProductNotFound)
	assert.Empty(t, f.audit.all())
}

// failingCache fails every operation; reads must still succeed.
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}
func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}
func (failingCache) Delete(context.Context, string) error { return errors.New("cache down") }
func (failingCache) Flush(context.Context) error          { return errors.New("cache down") }

func TestProductService_CacheFailuresAreIgnored(t *testing.T) {
	repo := memory.NewProductRepository()
	svc := NewProductService(repo, failingCache{}, DefaultCacheTTL, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Create(ctx, ports.CreateProductInput{Name: "x", Price: 1, Marketplace: "Azure"})
	require.NoError(t, err)
	page, err := svc.List(ctx, ports.ListProductsInput{})
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
}
