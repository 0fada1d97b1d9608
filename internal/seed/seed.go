// Package seed loads the default fixtures into a store. It is used by the
// seed command and by the API when it runs on the in-memory store.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

//go:embed seed.yaml
var defaultFixtures []byte

// Fixtures is the YAML document shape.
type Fixtures struct {
	Users    []UserFixture    `yaml:"users"`
	Products []ProductFixture `yaml:"products"`
	Offers   []OfferFixture   `yaml:"offers"`
}

type UserFixture struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

type ProductFixture struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
	Currency    string  `yaml:"currency"`
	Marketplace string  `yaml:"marketplace"`
	Available   bool    `yaml:"available"`
}

// OfferFixture references its product by position in Products. The window
// opens StartsIn after the seed runs and stays open for ValidFor.
type OfferFixture struct {
	Title    string        `yaml:"title"`
	Discount float64       `yaml:"discount"`
	Product  int           `yaml:"product"`
	StartsIn time.Duration `yaml:"startsIn"`
	ValidFor time.Duration `yaml:"validFor"`
	Terms    string        `yaml:"terms"`
}

// Repositories are the stores a seed run writes to.
type Repositories struct {
	Users    ports.UserRepository
	Products ports.ProductRepository
	Offers   ports.OfferRepository
}

// Options tunes a run. A nil Now means time.Now.
type Options struct {
	Clear bool
	Now   func() time.Time
}

// Result reports what a run inserted.
type Result struct {
	Users    []*domain.User
	Products []*domain.Product
	Offers   []*domain.Offer
}

// Default parses the embedded fixtures.
func Default() (*Fixtures, error) {
	return Parse(defaultFixtures)
}

// Parse decodes a fixtures document and checks offer references.
func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, o := range f.Offers {
		if o.Product < 0 || o.Product >= len(f.Products) {
			return nil, fmt.Errorf("offer %d: product index %d out of range", i, o.Product)
		}
		if o.ValidFor <= 0 {
			return nil, fmt.Errorf("offer %d: validFor must be positive", i)
		}
	}
	return &f, nil
}

// Run optionally clears the collections and inserts f. Writes stop at the
// first error; whatever was inserted before it stays.
func Run(ctx context.Context, repos Repositories, f *Fixtures, opts Options, log zerolog.Logger) (*Result, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	if opts.Clear {
		log.Info().Msg("clearing existing data")
		if err := repos.Offers.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clear offers: %w", err)
		}
		if err := repos.Products.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clear products: %w", err)
		}
		if err := repos.Users.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("clear users: %w", err)
		}
	} else {
		log.Info().Msg("keeping existing data")
	}

	res := &Result{}
	ts := now().UTC()

	for _, uf := range f.Users {
		u := &domain.User{
			Email:     domain.NormalizeEmail(uf.Email),
			Name:      strings.TrimSpace(uf.Name),
			Role:      domain.Role(uf.Role),
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if err := u.SetPassword(uf.Password); err != nil {
			return res, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		if err := u.Validate(); err != nil {
			return res, fmt.Errorf("user %s: %w", u.Email, err)
		}
		created, err := repos.Users.Create(ctx, u)
		if err != nil {
			return res, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		res.Users = append(res.Users, created)
	}
	log.Info().Int("count", len(res.Users)).Msg("seeded users")

	for _, pf := range f.Products {
		p := &domain.Product{
			Name:        pf.Name,
			Description: pf.Description,
			Price:       pf.Price,
			Currency:    pf.Currency,
			Marketplace: domain.Marketplace(pf.Marketplace),
			Available:   pf.Available,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		if p.Currency == "" {
			p.Currency = domain.DefaultCurrency
		}
		if err := p.Validate(); err != nil {
			return res, fmt.Errorf("product %q: %w", p.Name, err)
		}
		created, err := repos.Products.Create(ctx, p)
		if err != nil {
			return res, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		res.Products = append(res.Products, created)
	}
	log.Info().Int("count", len(res.Products)).Msg("seeded products")

	for _, of := range f.Offers {
		from := ts.Add(of.StartsIn)
		o := &domain.Offer{
			Title:     of.Title,
			Discount:  of.Discount,
			Product:   res.Products[of.Product].ID,
			ValidFrom: from,
			ValidTo:   from.Add(of.ValidFor),
			Terms:     of.Terms,
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if err := o.Validate(); err != nil {
			return res, fmt.Errorf("offer %q: %w", o.Title, err)
		}
		created, err := repos.Offers.Create(ctx, o)
		if err != nil {
			return res, fmt.Errorf("create offer %q: %w", o.Title, err)
		}
		res.Offers = append(res.Offers, created)
	}
	log.Info().Int("count", len(res.Offers)).Msg("seeded offers")

	return res, nil
}
