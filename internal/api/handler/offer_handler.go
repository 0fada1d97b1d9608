package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloudmarket/marketplace-api/internal/core/ports"
)

// OfferHandler handles HTTP requests for promotional offers.
type OfferHandler struct {
	service ports.OfferService
}

func NewOfferHandler(service ports.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

// List handles GET /offers.
//
// @Summary      List offers
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        product  query     string  false  "Only offers for this product id"
// @Param        active   query     bool    false  "Only offers whose window contains now"
// @Param        page     query     int     false  "Page number (default 1)"
// @Param        limit    query     int     false  "Page size (default 10, max 100)"
// @Success      200      {object}  offerPageResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /offers [get]
func (h *OfferHandler) List(c echo.Context) error {
	var q listOffersQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page, err := h.service.List(c.Request().Context(), ports.ListOffersInput{
		ProductID:  q.Product,
		ActiveOnly: q.Active,
		Page:       q.Page,
		Limit:      q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfferPageResponse(page))
}

// Get handles GET /offers/:id.
//
// @Summary      Get an offer
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Offer id"
// @Success      200  {object}  offerResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /offers/{id} [get]
func (h *OfferHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	v, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfferResponse(v))
}

// Create handles POST /offers.
//
// @Summary      Create an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOfferRequest  true  "Offer"
// @Success      201   {object}  offerResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /offers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	var req createOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	v, err := h.service.Create(c.Request().Context(), toCreateOfferInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOfferResponse(v))
}

// Update handles PUT /offers/:id. The merged validity window is re-checked.
//
// @Summary      Update an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Offer id"
// @Param        body  body      updateOfferRequest  true  "Fields to change"
// @Success      200   {object}  offerResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /offers/{id} [put]
func (h *OfferHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req updateOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	v, err := h.service.Update(c.Request().Context(), id, toUpdateOfferInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfferResponse(v))
}

// Delete handles DELETE /offers/:id.
//
// @Summary      Delete an offer
// @Tags         offers
// @Security     BearerAuth
// @Param        id   path  string  true  "Offer id"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /offers/{id} [delete]
func (h *OfferHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
