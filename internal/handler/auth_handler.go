package handler

import (
	"fmt"
	"net/http"

	"dinelt/internal/model"
	"dinelt/internal/service"

	"github.com/rs/zerolog"
)

// Routes lists the public account endpoints at GET /api/.
var Routes = []string{
	"/api/token/",
	"/api/register/",
	"/api/token/refresh/",
	"/api/profile/",
	"/api/profile/update/",
}

// AuthHandler handles registration and token requests.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/register/ requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Token handles POST /api/token/ requests.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, pair)
}

// Refresh handles POST /api/token/refresh/ requests.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req model.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	access, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, access)
}

// ListRoutes handles GET /api/ requests.
func (h *AuthHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Routes)
}

// Echo handles GET and POST /api/test/ requests.
func (h *AuthHandler) Echo(w http.ResponseWriter, r *http.Request) {
	p, err := caller(r)
	if err != nil {
		handleError(w, r, err, h.logger)
		return
	}

	var msg string
	switch r.Method {
	case http.MethodGet:
		msg = fmt.Sprintf("Congratulations %s, your API just responded to GET request", p.Username)
	case http.MethodPost:
		msg = "Congratulations, your API just responded to POST request with text: Hello buddy"
	default:
		writeError(w, r, http.StatusMethodNotAllowed, model.ErrCodeValidationFailed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": msg})
}
