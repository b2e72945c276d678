package handler

import (
	"net/http"

	"dinelt/internal/model"
	"dinelt/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// FoodHandler handles menu item requests.
type FoodHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(service service.FoodService, logger zerolog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger.With().Str("handler", "food").Logger(),
	}
}

// List handles GET /api/foods/ requests, optionally filtered by ?restaurant=.
func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pagination(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var restaurantID *uuid.UUID
	if v := r.URL.Query().Get("restaurant"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			handleError(w, r, model.NewValidationError("invalid restaurant format"), h.logger)
			return
		}
		restaurantID = &id
	}

	foods, err := h.service.List(r.Context(), restaurantID, limit, offset)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

// Get handles GET /api/foods/{id}/ requests.
func (h *FoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	food, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.FoodRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	food, err := h.service.Create(r.Context(), p, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, food)
}

func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.FoodUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	food, err := h.service.Update(r.Context(), p, id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, food)
}

func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), p, id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
