// Package report renders a customer's destination history as a downloadable
// document. Renderers are pure: given a domain.History they write bytes and
// never touch storage.
package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/pkordes/travel-crm/backend/internal/domain"
)

// Format names a history document encoding, as accepted by ?format=.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// Renderer writes a history document in one format.
type Renderer interface {
	ContentType() string
	Extension() string
	Render(w io.Writer, h domain.History) error
}

// dateLayout is the human-readable timestamp layout used in documents.
const dateLayout = "Mon, 02 Jan 2006 15:04 MST"

// Renderers returns one renderer per supported format, all formatting
// timestamps in loc.
func Renderers(loc *time.Location) map[Format]Renderer {
	return map[Format]Renderer{
		FormatPDF: NewPDFRenderer(loc),
		FormatCSV: NewCSVRenderer(loc),
	}
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// FileName builds the attachment name for a customer's history document,
// e.g. "destinations-history-12-ana-wijaya.pdf".
func FileName(c domain.Customer, r Renderer) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(c.Name), "-"), "-")
	if slug == "" {
		return fmt.Sprintf("destinations-history-%d.%s", c.ID, r.Extension())
	}
	return fmt.Sprintf("destinations-history-%d-%s.%s", c.ID, slug, r.Extension())
}
