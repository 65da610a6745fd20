package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of a CSV history.
var csvHeaders = []string{
	"customer_id", "customer_name", "customer_email",
	"index", "destination", "start_date", "end_date", "status",
}

// CSVRenderer writes a history as one row per destination.
type CSVRenderer struct {
	loc *time.Location
}

// NewCSVRenderer returns a CSVRenderer that prints timestamps in loc as RFC 3339.
func NewCSVRenderer(loc *time.Location) *CSVRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &CSVRenderer{loc: loc}
}

func (r *CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }
func (r *CSVRenderer) Extension() string   { return "csv" }

// Render writes the header row followed by one record per destination.
func (r *CSVRenderer) Render(w io.Writer, h domain.History) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("report.CSVRenderer.Render: %w", err)
	}
	id := strconv.FormatInt(h.Customer.ID, 10)
	for i, d := range h.Destinations {
		record := []string{
			id, h.Customer.Name, h.Customer.Email,
			strconv.Itoa(i + 1), d.Destination,
			d.StartDate.In(r.loc).Format(time.RFC3339),
			d.EndDate.In(r.loc).Format(time.RFC3339),
			string(d.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("report.CSVRenderer.Render: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("report.CSVRenderer.Render: %w", err)
	}
	return nil
}
