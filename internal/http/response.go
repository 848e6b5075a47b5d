package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"goaltracker-backend-go/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteServiceError maps a repository failure onto its HTTP status,
// falling back to a generic 500 for anything unrecognized.
func WriteServiceError(w http.ResponseWriter, err error, fallback string) {
	var svcErr services.ServiceError
	if errors.As(err, &svcErr) {
		WriteError(w, svcErr.Status, svcErr.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, fallback)
}
