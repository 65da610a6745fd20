package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// errorBody mirrors the API envelope so middleware rejections look the same
// as handler errors to clients.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Code: status, Message: message}); err != nil && log != nil {
		log.ErrorContext(r.Context(), "failed to write error response", "error", err)
	}
}
