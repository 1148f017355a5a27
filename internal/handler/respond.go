package handler

import (
	"encoding/json"
	"net/http"
)

// Response status codes. ALREADY_EXISTS reuses 203 for duplicate
// registrations; nonstandard, but part of the external contract.
const (
	StatusSuccess       = http.StatusOK
	StatusCreated       = http.StatusCreated
	StatusAlreadyExists = http.StatusNonAuthoritativeInfo
	StatusBadRequest    = http.StatusBadRequest
	StatusForbidden     = http.StatusForbidden
	StatusNotFound      = http.StatusNotFound
	StatusServerError   = http.StatusInternalServerError
)

// envelope is the JSON response body: a message plus an operation-specific
// payload key.
type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
