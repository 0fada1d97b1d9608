package handler

import "time"

// ErrorResponse is the standard error envelope returned on all 4xx/5xx responses.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []FieldErrorPayload `json:"fields,omitempty"`
}

type FieldErrorPayload struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"required,max=100"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin manager user"`
}

// --- Users ---

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"  validate:"omitempty,min=1,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
}

// --- Products ---

type listProductsQuery struct {
	Marketplace string `query:"marketplace" validate:"omitempty,oneof=AWS Azure GCP"`
	Page        int    `query:"page"        validate:"omitempty,min=1"`
	Limit       int    `query:"limit"       validate:"omitempty,min=1,max=100"`
}

type createProductRequest struct {
	Name        string   `json:"name"        validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Price       *float64 `json:"price"       validate:"required,gte=0"`
	Currency    string   `json:"currency"    validate:"omitempty,len=3"`
	Marketplace string   `json:"marketplace" validate:"required,oneof=AWS Azure GCP"`
	Available   *bool    `json:"available"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Currency    *string  `json:"currency"    validate:"omitempty,len=3"`
	Marketplace *string  `json:"marketplace" validate:"omitempty,oneof=AWS Azure GCP"`
	Available   *bool    `json:"available"`
}

type productResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	Marketplace    string    `json:"marketplace"`
	Available      bool      `json:"available"`
	FormattedPrice string    `json:"formattedPrice"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type productPageResponse struct {
	Products    []productResponse `json:"products"`
	TotalCount  int64             `json:"totalCount"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

// --- Offers ---

type listOffersQuery struct {
	Product string `query:"product" validate:"omitempty,mongodb"`
	Active  bool   `query:"active"`
	Page    int    `query:"page"    validate:"omitempty,min=1"`
	Limit   int    `query:"limit"   validate:"omitempty,min=1,max=100"`
}

type createOfferRequest struct {
	Title     string     `json:"title"     validate:"required,max=200"`
	Discount  *float64   `json:"discount"  validate:"required,gte=0"`
	Product   string     `json:"product"   validate:"required,mongodb"`
	ValidFrom *time.Time `json:"validFrom" validate:"required"`
	ValidTo   *time.Time `json:"validTo"   validate:"required"`
	Terms     string     `json:"terms"     validate:"max=2000"`
}

type updateOfferRequest struct {
	Title     *string    `json:"title"     validate:"omitempty,min=1,max=200"`
	Discount  *float64   `json:"discount"  validate:"omitempty,gte=0"`
	Product   *string    `json:"product"   validate:"omitempty,mongodb"`
	ValidFrom *time.Time `json:"validFrom"`
	ValidTo   *time.Time `json:"validTo"`
	Terms     *string    `json:"terms"     validate:"omitempty,max=2000"`
}

type offerResponse struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Discount       float64          `json:"discount"`
	Product        string           `json:"product"`
	ValidFrom      time.Time        `json:"validFrom"`
	ValidTo        time.Time        `json:"validTo"`
	Terms          string           `json:"terms"`
	IsActive       bool             `json:"isActive"`
	ProductDetails *productResponse `json:"productDetails,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type offerPageResponse struct {
	Offers      []offerResponse `json:"offers"`
	TotalCount  int64           `json:"totalCount"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
}
