package output

import (
	"bytes"
	"fmt"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/go-pdf/fpdf"
)

const (
	pdfMarginLeft   = 20.0
	pdfMarginTop    = 20.0
	pdfMarginRight  = 20.0
	pdfMarginBottom = 20.0
	pdfPageWidth    = 210.0
	pdfLabelWidth   = 110.0
)

// PDFFormatter renders an A4 report with one bordered table per section.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

func (p PDFFormatter) Format(c *domain.DamagesCase) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetAutoPageBreak(true, pdfMarginBottom)
	// Core fonts are cp1252; translate bullets and accents before writing.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	contentWidth := pdfPageWidth - pdfMarginLeft - pdfMarginRight

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(45, 92, 169)
	pdf.CellFormat(contentWidth, 12, "Economic Damages Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(contentWidth, 7, tr(fmt.Sprintf("%s - %s", c.ClientName, c.Jurisdiction.DisplayName())), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(contentWidth, 9, "Total Economic Damages: "+money.Format(c.TotalDamages), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(230, 238, 247)
	pdf.SetDrawColor(204, 204, 204)
	for _, s := range Sections(c) {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(45, 92, 169)
		pdf.CellFormat(contentWidth, 8, tr(s.Title), "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
		for _, l := range s.Lines {
			pdf.CellFormat(pdfLabelWidth, 6, tr(l.Label), "1", 0, "L", false, 0, "")
			pdf.CellFormat(contentWidth-pdfLabelWidth, 6, tr(l.Value), "1", 1, "R", false, 0, "")
		}
		if s.Note != "" {
			pdf.SetFont("Arial", "I", 8)
			pdf.MultiCell(contentWidth, 4.5, tr(s.Note), "", "L", false)
		}
		pdf.Ln(3)
	}

	if len(c.Notes) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(45, 92, 169)
		pdf.CellFormat(contentWidth, 8, "Assumptions & Adjustments", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(50, 50, 50)
		for _, n := range c.Notes {
			pdf.MultiCell(contentWidth, 4.5, tr("- "+n.Message), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
