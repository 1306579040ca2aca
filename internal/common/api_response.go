package common

import (
	"encoding/json"
	"net/http"

	"iwannabeavolunteer/portal/internal/logging"
	"iwannabeavolunteer/portal/internal/models/dtos"
)

// WriteJSON marshals body and writes it with code
func WriteJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("JSON encode failed", "error", err)
	}
}

// WriteError writes the uniform {"error": message} envelope
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, dtos.ErrorResponse{Error: message})
}
