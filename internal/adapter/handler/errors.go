package handler

import (
	"encoding/json"
	"net/http"
)

// Error codes carried in every error response body.
const (
	ErrCodeRuntime               = 1000
	ErrCodeHandlerNotFound       = 1010
	ErrCodeResourceNotFound      = 1020
	ErrCodeRequestBodyInvalid    = 1030
	ErrCodeConstraintCheckFailed = 1040
)

type Error struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, errs ...Error) {
	writeJSON(w, status, ErrorResponse{Errors: errs})
}
