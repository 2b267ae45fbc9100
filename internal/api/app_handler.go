package api

import (
	"context"
	"net/http"

	"github.com/Tribeoftech/atlas-files-manager/internal/store"
)

// AppHandler serves the liveness and stats endpoints.
type AppHandler struct {
	users    store.UserStore
	files    store.FileStore
	sessions store.SessionStore
	dbPing   func(ctx context.Context) error
}

// NewAppHandler creates a new AppHandler. dbPing checks the document store
// connection; the session store carries its own Ping.
func NewAppHandler(users store.UserStore, files store.FileStore, sessions store.SessionStore, dbPing func(ctx context.Context) error) *AppHandler {
	return &AppHandler{
		users:    users,
		files:    files,
		sessions: sessions,
		dbPing:   dbPing,
	}
}

type statusResponse struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

type statsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// Status handles GET /status, reporting whether both backing stores are
// reachable.
func (h *AppHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Redis: h.sessions.Ping(r.Context()) == nil,
		DB:    h.dbPing(r.Context()) == nil,
	})
}

// Stats handles GET /stats, reporting user and file counts.
func (h *AppHandler) Stats(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server error"})
		return
	}

	files, err := h.files.Count(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Server error"})
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{Users: users, Files: files})
}
