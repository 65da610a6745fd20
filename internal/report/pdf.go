package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// PDFRenderer lays out a history as an A4 document: a title, the customer's
// name and email, then one block per destination.
type PDFRenderer struct {
	loc      *time.Location
	compress bool
}

// NewPDFRenderer returns a PDFRenderer that prints timestamps in loc.
func NewPDFRenderer(loc *time.Location) *PDFRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &PDFRenderer{loc: loc, compress: true}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }
func (r *PDFRenderer) Extension() string   { return "pdf" }

// Render writes the document to w.
func (r *PDFRenderer) Render(w io.Writer, h domain.History) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetTitle("Destinations History", true)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	// Core fonts are cp1252; translate so accented names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Destinations History", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr("Customer: "+h.Customer.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Email: "+h.Customer.Email), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(h.Destinations) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 7, "No destinations recorded.", "", 1, "L", false, 0, "")
	}
	for i, d := range h.Destinations {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s", i+1, d.Destination)), "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, "Start: "+d.StartDate.In(r.loc).Format(dateLayout), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "End: "+d.EndDate.In(r.loc).Format(dateLayout), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, "Status: "+string(d.Status), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("report.PDFRenderer.Render: %w", err)
	}
	return nil
}
