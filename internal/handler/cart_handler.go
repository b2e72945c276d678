package handler

import (
	"net/http"

	"dinelt/internal/model"
	"dinelt/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles the caller's cart.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Get handles GET /api/cart/ requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	cart, err := h.service.Get(r.Context(), p)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddItem handles POST /api/cart/items/ requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.CartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.service.AddItem(r.Context(), p, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// UpdateItem handles PATCH /api/cart/items/{id}/ requests.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	itemID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.CartItemUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.service.UpdateItem(r.Context(), p, itemID, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// RemoveItem handles DELETE /api/cart/items/{id}/ requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	itemID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), p, itemID)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart/ requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), p); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/cart/checkout/ requests. One order is created
// per restaurant in the cart.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	orders, err := h.service.Checkout(r.Context(), p)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, orders)
}
