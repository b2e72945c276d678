package handler

import (
	"net/http"

	"dinelt/internal/model"
	"dinelt/internal/service"

	"github.com/rs/zerolog"
)

// PostHandler handles post, like and comment requests.
type PostHandler struct {
	service service.PostService
	logger  zerolog.Logger
}

// NewPostHandler creates a new post handler.
func NewPostHandler(service service.PostService, logger zerolog.Logger) *PostHandler {
	return &PostHandler{
		service: service,
		logger:  logger.With().Str("handler", "post").Logger(),
	}
}

// List handles GET /api/posts/ requests.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pagination(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	posts, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Create handles POST /api/posts/ requests.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var req model.PostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Create(r.Context(), p, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Get handles GET /api/posts/{id}/ requests.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	post, err := h.service.Get(r.Context(), p, id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Update handles PUT and PATCH /api/posts/{id}/ requests.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req model.PostUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.service.Update(r.Context(), p, id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}/ requests.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Like handles POST /api/posts/{id}/like/ requests.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	post, err := h.service.Like(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListComments handles GET /api/posts/{id}/comments/ requests.
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	comments, err := h.service.ListComments(r.Context(), id)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /api/posts/{id}/comments/ requests.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
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

	var req model.CommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.AddComment(r.Context(), p, id, &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
