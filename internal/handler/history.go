package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkordes/travel-crm/backend/internal/domain"
	"github.com/pkordes/travel-crm/backend/internal/report"
)

// DownloadHistory handles GET /customer/{id}/download-destinations-history.
// It returns a PDF attachment by default; ?format=csv returns CSV instead.
// The document is rendered into memory first so a rendering failure can
// still produce a JSON error instead of a truncated file.
func (s *Server) DownloadHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	var format *string
	if err := bindQuery(r.URL.Query(), "format", &format); err != nil {
		s.writeRequestError(w, r, err)
		return
	}
	f := report.FormatPDF
	if format != nil {
		f = report.Format(*format)
	}
	renderer, ok := s.renderers[f]
	if !ok {
		s.writeRequestError(w, r, fmt.Errorf("%w: format must be pdf or csv", domain.ErrValidation))
		return
	}

	h, err := s.history.History(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err, "Customer not found")
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, h); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.FileName(h.Customer, renderer)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.ErrorContext(r.Context(), "failed to write history document", "error", err, "customer_id", id)
	}
}
