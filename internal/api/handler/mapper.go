package handler

import (
	"time"

	"github.com/cloudmarket/marketplace-api/internal/core/domain"
	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateProductInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Currency:    req.Currency,
		Marketplace: req.Marketplace,
		Available:   req.Available,
	}
}

func toUpdateProductInput(req updateProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Marketplace: req.Marketplace,
		Available:   req.Available,
	}
}

func toCreateOfferInput(req createOfferRequest) ports.CreateOfferInput {
	return ports.CreateOfferInput{
		Title:     req.Title,
		Discount:  *req.Discount,
		ProductID: req.Product,
		ValidFrom: req.ValidFrom.UTC(),
		ValidTo:   req.ValidTo.UTC(),
		Terms:     req.Terms,
	}
}

func toUpdateOfferInput(req updateOfferRequest) ports.UpdateOfferInput {
	return ports.UpdateOfferInput{
		Title:     req.Title,
		Discount:  req.Discount,
		ProductID: req.Product,
		ValidFrom: utcPtr(req.ValidFrom),
		ValidTo:   utcPtr(req.ValidTo),
		Terms:     req.Terms,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		Currency:       p.Currency,
		Marketplace:    string(p.Marketplace),
		Available:      p.Available,
		FormattedPrice: p.FormattedPrice(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toProductPageResponse(page *ports.ProductPage) productPageResponse {
	out := productPageResponse{
		Products:    make([]productResponse, 0, len(page.Products)),
		TotalCount:  page.TotalCount,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
	for _, p := range page.Products {
		out.Products = append(out.Products, toProductResponse(p))
	}
	return out
}

func toOfferResponse(v *ports.OfferView) offerResponse {
	out := offerResponse{
		ID:        v.ID,
		Title:     v.Title,
		Discount:  v.Discount,
		Product:   v.Product,
		ValidFrom: v.ValidFrom,
		ValidTo:   v.ValidTo,
		Terms:     v.Terms,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
	if v.ProductDetails != nil {
		p := toProductResponse(v.ProductDetails)
		out.ProductDetails = &p
	}
	return out
}

func toOfferPageResponse(page *ports.OfferPage) offerPageResponse {
	out := offerPageResponse{
		Offers:      make([]offerResponse, 0, len(page.Offers)),
		TotalCount:  page.TotalCount,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
	}
	for i := range page.Offers {
		out.Offers = append(out.Offers, toOfferResponse(&page.Offers[i]))
	}
	return out
}
