package handlers

import (
	"encoding/json"
	"net/http"
)

// Generic messages returned to clients. Internal error detail stays server-side.
const (
	msgInvalidRequest = "Requête invalide"
	msgInternalError  = "Une erreur est survenue"
)

// DataResponse is the success envelope for list and create endpoints.
type DataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// MessageResponse is the failure envelope. Message is a plain string, or a
// map of field names to messages for validation failures.
type MessageResponse struct {
	Success bool `json:"success"`
	Message any  `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, DataResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message any) {
	writeJSON(w, status, MessageResponse{Success: false, Message: message})
}
