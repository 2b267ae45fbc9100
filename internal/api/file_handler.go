package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/Tribeoftech/atlas-files-manager/internal/apperror"
	"github.com/Tribeoftech/atlas-files-manager/internal/domain"
	"github.com/Tribeoftech/atlas-files-manager/internal/service"
	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FileHandler holds the dependencies for file-related HTTP handlers. It
// keeps a session store reference of its own because content retrieval
// authenticates optionally, outside RequireAuth.
type FileHandler struct {
	service  service.FileService
	sessions store.SessionStore
}

// NewFileHandler creates a new FileHandler with its dependencies.
func NewFileHandler(svc service.FileService, sessions store.SessionStore) *FileHandler {
	return &FileHandler{service: svc, sessions: sessions}
}

type createFileRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parentId"`
	IsPublic bool   `json:"isPublic"`
	Data     string `json:"data"`
}

// Upload handles POST /files.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	var req createFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	node, err := h.service.Create(r.Context(), userID, service.CreateInput{
		Name:     req.Name,
		Type:     domain.FileType(req.Type),
		ParentID: req.ParentID,
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, node)
}

// Show handles GET /files/{id}, the owner-scoped detail view.
func (h *FileHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	node, err := h.service.Show(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, node)
}

// Index handles GET /files?parentId=&page=, one page of the requester's
// own nodes. An unparseable page falls back to the first one.
func (h *FileHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil {
		page = 0
	}

	nodes, err := h.service.Index(r.Context(), userID, r.URL.Query().Get("parentId"), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nodes)
}

// Publish handles PUT /files/{id}/publish.
func (h *FileHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, true)
}

// Unpublish handles PUT /files/{id}/unpublish.
func (h *FileHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublic(w, r, false)
}

func (h *FileHandler) setPublic(w http.ResponseWriter, r *http.Request, isPublic bool) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}

	node, err := h.service.SetPublic(r.Context(), userID, chi.URLParam(r, "id"), isPublic)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, node)
}

// Data handles GET /files/{id}/data?size=. The session is optional: an
// absent token means an anonymous request, but a token that is presented
// must resolve.
func (h *FileHandler) Data(w http.ResponseWriter, r *http.Request) {
	var requester *bson.ObjectID
	if token := r.Header.Get(TokenHeader); token != "" {
		userID, err := h.sessions.Resolve(r.Context(), token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
			return
		}
		requester = &userID
	}

	var size *int
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperror.Validation("size", "Invalid size"))
			return
		}
		size = &n
	}

	reader, contentType, err := h.service.Content(r.Context(), requester, chi.URLParam(r, "id"), size)
	if err != nil {
		writeError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, reader)
}
