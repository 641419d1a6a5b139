package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/normalize"
)

// PDFRenderer draws the preview card as a one-page PDF using gofpdf.
// Images are referenced by URL, never downloaded.
type PDFRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{normalizer: normalize.New()}
}

// Render converts result into PDF bytes.
func (r *PDFRenderer) Render(link string, result *core.EnrichmentResult) ([]byte, error) {
	c := newCard(link, result, r.normalizer)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(c.Title, true)
	pdf.AddPage()

	// Core fonts are cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(c.Title), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	source := c.URL
	if c.Site != "" {
		source = c.Site + " - " + c.URL
	}
	pdf.MultiCell(0, 5, tr(source), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	if c.Description != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 5.5, tr(c.Description), "", "L", false)
		pdf.Ln(4)
	}

	for _, f := range c.Facts {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 5, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(f.Value), "", "L", false)
	}

	if c.Image != "" {
		renderLink(pdf, tr("Image: "+c.Image))
	}

	if c.Embed != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, "Embed", "", "L", false)
		pdf.SetFont("Courier", "", 9)
		pdf.SetFillColor(245, 245, 245)
		pdf.MultiCell(0, 4.5, tr(c.Embed), "", "L", true)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderLink(pdf *gofpdf.Fpdf, text string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 80, 160)
	pdf.MultiCell(0, 4.5, text, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
}
