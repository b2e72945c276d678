package handler

import (
	"net/http"

	"dinelt/internal/model"
	"dinelt/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProfileHandler handles own-profile and public profile requests.
type ProfileHandler struct {
	service service.ProfileService
	logger  zerolog.Logger
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(service service.ProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("handler", "profile").Logger(),
	}
}

// Me handles GET /api/profile/ requests.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	detail, err := h.service.Me(r.Context(), p)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Update handles PUT and PATCH on /api/profile/ and PUT /api/profile/update/.
// Both verbs are partial updates.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	detail, err := h.service.Update(r.Context(), p, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /api/profile/ requests. The whole account is removed.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteAccount(r.Context(), p); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetByUsername handles GET /api/profiles/{username}/ requests.
func (h *ProfileHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Follow handles POST /api/profiles/{username}/follow/ requests.
func (h *ProfileHandler) Follow(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	if err := h.service.Follow(r.Context(), p, chi.URLParam(r, "username")); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Unfollow handles DELETE /api/profiles/{username}/follow/ requests.
func (h *ProfileHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	if err := h.service.Unfollow(r.Context(), p, chi.URLParam(r, "username")); err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
