package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/NickRemizov/face-review/internal/faces"
	"github.com/NickRemizov/face-review/internal/transport"
)

// errInvalidRequestBody is a shared error message for invalid JSON request bodies.
const errInvalidRequestBody = "invalid request body"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the error taxonomy onto HTTP statuses: invalid
// input is the caller's fault, lifecycle violations are conflicts, and
// upstream service failures are bad gateways.
func respondDomainError(w http.ResponseWriter, err error) {
	var verr *faces.ValidationError
	var serr *faces.StateError
	var svcErr *transport.ServiceError
	var netErr *transport.NetworkError

	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &serr):
		respondError(w, http.StatusConflict, serr.Error())
	case errors.As(err, &svcErr):
		respondError(w, http.StatusBadGateway, svcErr.Error())
	case errors.As(err, &netErr):
		respondError(w, http.StatusBadGateway, "upstream service unreachable")
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// HealthCheck handles the health check endpoint.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
