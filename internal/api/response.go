package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Tribeoftech/atlas-files-manager/internal/apperror"
)

// errorResponse is the stable JSON shape every failure maps to.
type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON is a utility for sending JSON responses with a given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError translates an error from the service layer into a status code
// and the {error: message} body. The mapping switches on the closed set of
// error kinds, never on message text, and anything outside the taxonomy
// collapses into a generic 500 so driver errors never leak.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Server error"

	switch {
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrInvalidOperation):
		status = http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		status = http.StatusNotFound
	}

	var appErr *apperror.AppError
	if status != http.StatusInternalServerError && errors.As(err, &appErr) {
		message = appErr.Message
	}

	writeJSON(w, status, errorResponse{Error: message})
}
