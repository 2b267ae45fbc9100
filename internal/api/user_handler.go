package api

import (
	"encoding/json"
	"net/http"

	"github.com/Tribeoftech/atlas-files-manager/internal/service"
)

// UserHandler holds the dependencies for user-related HTTP handlers.
type UserHandler struct {
	service service.AuthService
}

// NewUserHandler creates a new UserHandler with its dependencies.
func NewUserHandler(svc service.AuthService) *UserHandler {
	return &UserHandler{service: svc}
}

type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create handles POST /users, registering a new account.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.service.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Me handles GET /users/me, returning the account behind the presented
// session token. Runs behind RequireAuth.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
