package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"drivegallery/internal/domain/drive"
)

// ErrorResponse is the JSON error body every endpoint returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendJSON sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// SendError sends an error JSON response
func SendError(w http.ResponseWriter, message string, statusCode int) {
	SendJSON(w, statusCode, ErrorResponse{Error: message})
}

// SendDomainError maps a domain error onto an HTTP status and sends it.
func SendDomainError(w http.ResponseWriter, err error) {
	var denied *drive.PermissionDeniedError
	switch {
	case errors.Is(err, drive.ErrNotFound):
		SendError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &denied):
		SendError(w, denied.Message, http.StatusForbidden)
	default:
		SendError(w, err.Error(), http.StatusInternalServerError)
	}
}
