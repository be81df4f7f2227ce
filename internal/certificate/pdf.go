package certificate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer renders templates into A4 portrait PDFs.
type PDFRenderer struct {
	now func() time.Time
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{now: time.Now}
}

// RenderTextDocument draws the images and the centered lines and returns the PDF bytes.
func (r *PDFRenderer) RenderTextDocument(t Template) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	pdf.SetCreationDate(r.now())
	pdf.AddPage()

	for _, img := range t.Images {
		if err := placeImage(pdf, img); err != nil {
			return nil, err
		}
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, line := range t.Lines {
		if line.SpaceBefore > 0 {
			pdf.Ln(line.SpaceBefore)
		}
		style := ""
		if line.Bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, line.Size)
		pdf.CellFormat(0, 10, tr(line.Text), "", 1, "C", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("output pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func placeImage(pdf *fpdf.Fpdf, img Image) error {
	opts := fpdf.ImageOptions{ReadDpi: true}

	switch {
	case len(img.Data) > 0:
		opts.ImageType = "PNG"
		pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		pdf.ImageOptions(img.Name, img.X, img.Y, img.W, 0, false, opts, 0, "")
	case img.Path != "":
		if _, err := os.Stat(img.Path); err != nil {
			return nil
		}
		opts.ImageType = strings.TrimPrefix(strings.ToUpper(filepath.Ext(img.Path)), ".")
		pdf.ImageOptions(img.Path, img.X, img.Y, img.W, 0, false, opts, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("place image %s: %w", img.Name, err)
	}
	return nil
}
