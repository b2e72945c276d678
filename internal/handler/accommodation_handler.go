package handler

import (
	"net/http"

	"dinelt/internal/model"
	"dinelt/internal/service"

	"github.com/rs/zerolog"
)

// AccommodationHandler handles accommodation and booking requests.
type AccommodationHandler struct {
	accommodations service.AccommodationService
	bookings       service.BookingService
	logger         zerolog.Logger
}

// NewAccommodationHandler creates a new accommodation handler.
func NewAccommodationHandler(accommodations service.AccommodationService, bookings service.BookingService, logger zerolog.Logger) *AccommodationHandler {
	return &AccommodationHandler{
		accommodations: accommodations,
		bookings:       bookings,
		logger:         logger.With().Str("handler", "accommodation").Logger(),
	}
}

// List handles GET /api/accommodations/ requests.
func (h *AccommodationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pagination(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	accommodations, err := h.accommodations.List(r.Context(), limit, offset)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, accommodations)
}

func (h *AccommodationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	accommodation, err := h.accommodations.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, accommodation)
}

func (h *AccommodationHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.AccommodationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	accommodation, err := h.accommodations.Create(r.Context(), p, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, accommodation)
}

func (h *AccommodationHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req model.AccommodationUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	accommodation, err := h.accommodations.Update(r.Context(), p, id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, accommodation)
}

func (h *AccommodationHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.accommodations.Delete(r.Context(), p, id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListBookings handles GET /api/bookings/ requests.
func (h *AccommodationHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
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

	bookings, err := h.bookings.List(r.Context(), p, limit, offset)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// CreateBooking handles POST /api/bookings/ requests.
func (h *AccommodationHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	booking, err := h.bookings.Create(r.Context(), p, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/{id}/ requests.
func (h *AccommodationHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
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

	booking, err := h.bookings.Get(r.Context(), p, id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// CancelBooking handles DELETE /api/bookings/{id}/ requests.
func (h *AccommodationHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
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

	if err := h.bookings.Cancel(r.Context(), p, id); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
