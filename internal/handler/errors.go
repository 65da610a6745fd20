package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// envelope is the body of every JSON response except /healthz.
// Page, Limit and TotalPages are only set on listings.
type envelope struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Page       *int   `json:"page,omitempty"`
	Limit      *int   `json:"limit,omitempty"`
	TotalPages *int   `json:"totalPages,omitempty"`
}

// errInternal is the only message a client ever sees for an unexpected failure.
const errInternal = "Internal server error"

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}

// ok writes a success envelope.
func (s *Server) ok(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	s.writeJSON(w, r, status, envelope{Code: status, Message: message, Data: data})
}

// writeError writes an error envelope with a null data field.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.writeJSON(w, r, status, envelope{Code: status, Message: message})
}

// writeServiceError maps an error returned by a service onto a status code.
// notFound is the message used when the error carries no detail of its own
// (e.g. "customer not found"), because the handler is the layer that knows
// what was being looked up. Anything unrecognized is logged and reported as
// a generic 500 with no internal detail.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		s.writeError(w, r, http.StatusBadRequest, detail(err, domain.ErrValidation, "Bad request"))
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, detail(err, domain.ErrNotFound, notFound))
	case errors.Is(err, domain.ErrConflict):
		s.writeError(w, r, http.StatusConflict, detail(err, domain.ErrConflict, "Resource already exists"))
	case errors.Is(err, domain.ErrUnauthorized):
		s.writeError(w, r, http.StatusUnauthorized, "Unauthorized")
	default:
		s.log.ErrorContext(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
		s.writeError(w, r, http.StatusInternalServerError, errInternal)
	}
}

// detail extracts the human-readable part that follows a wrapped sentinel.
// e.g. "service.CustomerService.Create: validation error: name is required" → "name is required"
// When the sentinel carries no detail, fallback is returned.
func detail(err, sentinel error, fallback string) string {
	marker := sentinel.Error() + ": "
	msg := err.Error()
	if i := strings.LastIndex(msg, marker); i >= 0 {
		if rest := msg[i+len(marker):]; rest != "" {
			return rest
		}
	}
	return fallback
}

// writeRequestError reports a request that failed binding or decoding.
func (s *Server) writeRequestError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	s.writeServiceError(w, r, err, "Not found")
}

// writePage writes one page of a listing, converting each item with conv.
func writePage[T, R any](s *Server, w http.ResponseWriter, r *http.Request, message string, p domain.Page[T], conv func(T) R) {
	data := make([]R, len(p.Data))
	for i, item := range p.Data {
		data[i] = conv(item)
	}
	s.writeJSON(w, r, http.StatusOK, envelope{
		Code:       http.StatusOK,
		Message:    message,
		Data:       data,
		Page:       &p.Page,
		Limit:      &p.Limit,
		TotalPages: &p.TotalPages,
	})
}
