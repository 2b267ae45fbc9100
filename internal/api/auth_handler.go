package api

import (
	"net/http"

	"github.com/Tribeoftech/atlas-files-manager/internal/service"
)

// AuthHandler holds the dependencies for session-related HTTP handlers.
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler with its dependencies.
func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Connect handles GET /connect. Credentials arrive as HTTP Basic auth;
// success yields a session token valid for 24 hours.
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	token, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// Disconnect handles GET /disconnect, revoking the presented token. An
// unknown token is reported as 401, not as a generic success.
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(TokenHeader)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
