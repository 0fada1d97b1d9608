package domain

import (
	"strings"
	"time"
)

// Offer is a promotional discount bound to a single product. Product holds the
// referenced product id; deleting the product leaves the offer in place.
type Offer struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Discount  float64   `json:"discount"`
	Product   string    `json:"product"`
	ValidFrom time.Time `json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`
	Terms     string    `json:"terms"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsActive reports whether at falls within [ValidFrom, ValidTo].
func (o *Offer) IsActive(at time.Time) bool {
	return !at.Before(o.ValidFrom) && !at.After(o.ValidTo)
}

// Validate enforces the offer invariants, including ValidTo > ValidFrom.
func (o *Offer) Validate() error {
	var errs fieldErrors
	errs.check("title", strings.TrimSpace(o.Title), "required,max=200")
	errs.check("discount", o.Discount, "gte=0")
	errs.check("product", o.Product, "required,mongodb")
	if o.ValidFrom.IsZero() {
		errs.add("validFrom", "validFrom is required")
	}
	if o.ValidTo.IsZero() {
		errs.add("validTo", "validTo is required")
	}
	if !o.ValidFrom.IsZero() && !o.ValidTo.IsZero() && !o.ValidTo.After(o.ValidFrom) {
		errs.add("validTo", "validTo must be after validFrom")
	}
	return errs.err()
}
