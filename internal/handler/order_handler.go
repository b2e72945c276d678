package handler

import (
	"net/http"

	"dinelt/internal/model"
	"dinelt/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders/ requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.OrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.Create(r.Context(), p, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders/ requests. Only the caller's orders are returned.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	limit, offset, err := pagination(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	orders, err := h.service.List(r.Context(), p, limit, offset)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id}/ requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	orderID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	order, err := h.service.Get(r.Context(), p, orderID)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// AddItems handles POST /api/orders/{id}/items/ requests.
func (h *OrderHandler) AddItems(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	orderID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.OrderItemsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.AddItems(r.Context(), p, orderID, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/orders/{id}/status/ requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	orderID, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.OrderStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), p, orderID, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
