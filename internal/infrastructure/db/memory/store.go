// Package memory provides map-backed repositories with the same semantics as
// the MongoDB store. They back STORE_DRIVER=memory and the test suites.
package memory

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store bundles the in-memory repositories.
type Store struct {
	Users    *UserRepository
	Products *ProductRepository
	Offers   *OfferRepository
	Audit    *AuditRepository
}

func NewStore() *Store {
	return &Store{
		Users:    NewUserRepository(),
		Products: NewProductRepository(),
		Offers:   NewOfferRepository(),
		Audit:    NewAuditRepository(),
	}
}

// newID returns a fresh ObjectID hex string so ids look the same as with Mongo.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func validID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// page slices items for a 1-based page.
func page[T any](items []T, p, limit int) []T {
	if p < 1 {
		p = 1
	}
	if limit <= 0 {
		return []T{}
	}
	start := (p - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// table is a mutex-guarded id-keyed map shared by the repositories.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]*T
}

// sorted returns copies of the rows matching keep, ordered by less.
func (t *table[T]) sorted(keep func(*T) bool, less func(a, b *T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep == nil || keep(row) {
			cp := *row
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
