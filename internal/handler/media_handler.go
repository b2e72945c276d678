package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"dinelt/internal/media"
	"dinelt/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// MediaHandler accepts image uploads.
type MediaHandler struct {
	store    media.Store
	maxBytes int64
	logger   zerolog.Logger
}

// NewMediaHandler creates a handler accepting uploads of at most maxBytes.
func NewMediaHandler(store media.Store, maxBytes int64, logger zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		store:    store,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "media").Logger(),
	}
}

// UploadResponse carries the public URL of a stored image.
type UploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/uploads/{kind}/ with a multipart "file" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	kind, err := media.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		handleError(w, r, model.NewValidationError(err.Error()), h.logger)
		return
	}

	// Leave room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+64<<10)
	file, _, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handleError(w, r, h.tooLarge(), h.logger)
			return
		}
		handleError(w, r, model.NewValidationError("file: this field is required"), h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		handleError(w, r, fmt.Errorf("failed to read upload: %w", err), h.logger)
		return
	}
	if int64(len(data)) > h.maxBytes {
		handleError(w, r, h.tooLarge(), h.logger)
		return
	}

	obj, err := media.NewObject(kind, data)
	if err != nil {
		handleError(w, r, model.NewValidationError(err.Error()), h.logger)
		return
	}

	url, err := h.store.Save(r.Context(), obj)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

func (h *MediaHandler) tooLarge() error {
	return model.NewValidationError(fmt.Sprintf("file: must be at most %d bytes", h.maxBytes))
}
