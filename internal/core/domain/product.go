package domain

import (
	"fmt"
	"strings"
	"time"
)

// Marketplace identifies the cloud marketplace a product is listed on.
type Marketplace string

const (
	MarketplaceAWS   Marketplace = "AWS"
	MarketplaceAzure Marketplace = "Azure"
	MarketplaceGCP   Marketplace = "GCP"
)

// DefaultCurrency is applied when a product is created without one.
const DefaultCurrency = "USD"

// Valid reports whether m is a supported marketplace.
func (m Marketplace) Valid() bool {
	switch m {
	case MarketplaceAWS, MarketplaceAzure, MarketplaceGCP:
		return true
	}
	return false
}

// Product is a catalog entry.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Currency    string      `json:"currency"`
	Marketplace Marketplace `json:"marketplace"`
	Available   bool        `json:"available"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// FormattedPrice renders the price with its currency, e.g. "USD 49.99".
func (p *Product) FormattedPrice() string {
	return fmt.Sprintf("%s %.2f", p.Currency, p.Price)
}

// Validate enforces the product invariants.
func (p *Product) Validate() error {
	var errs fieldErrors
	errs.check("name", strings.TrimSpace(p.Name), "required,max=200")
	errs.check("price", p.Price, "gte=0")
	errs.check("currency", p.Currency, "required,len=3")
	if !p.Marketplace.Valid() {
		errs.add("marketplace", "marketplace must be one of: AWS Azure GCP")
	}
	return errs.err()
}
