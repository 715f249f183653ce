package api

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the wire shape of every failure this service emits.
// The code is a stable machine-readable identifier; message carries debug
// detail and is omitted when empty so clients key off the code alone.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func BadRequest(w http.ResponseWriter, code, message string) {
	WriteError(w, http.StatusBadRequest, code, message)
}

func Internal(w http.ResponseWriter, code, message string) {
	WriteError(w, http.StatusInternalServerError, code, message)
}
