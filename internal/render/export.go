package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/youruser/ticketrender/internal/ticket"
)

// Artifact is an exported ticket. Bytes are owned by the caller.
type Artifact struct {
	Format Format
	Bytes  []byte
	Width  int
	Height int
}

// ContentType is the MIME type of the artifact.
func (a *Artifact) ContentType() string {
	if a.Format == FormatPDF {
		return "application/pdf"
	}
	return "image/png"
}

// Filename follows ticket-{ticket_number_or_id}.{ext}.
func (a *Artifact) Filename(rec *ticket.Record) string {
	id := "ticket"
	if rec != nil && rec.Identifier() != "" {
		id = rec.Identifier()
	}
	return fmt.Sprintf("ticket-%s.%s", sanitizeFilename(id), a.Format)
}

func sanitizeFilename(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}

// EncodePNG serializes img losslessly at its own size.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfEpoch pins the document dates so identical tickets give identical PDFs.
var pdfEpoch = time.Unix(0, 0).UTC()

// EncodePDF wraps PNG bytes in a single landscape page of exactly w×h
// points with the image covering the whole page.
func EncodePDF(pngBytes []byte, w, h int) ([]byte, error) {
	orientation := "P"
	if w > h {
		orientation = "L"
	}
	// fpdf swaps the size for landscape pages, so pass it portrait-first
	size := fpdf.SizeType{Wd: float64(w), Ht: float64(h)}
	if orientation == "L" {
		size = fpdf.SizeType{Wd: float64(h), Ht: float64(w)}
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("ticket", opts, bytes.NewReader(pngBytes))
	pdf.ImageOptions("ticket", 0, 0, float64(w), float64(h), false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}
