package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a Grid into a landscape PDF sized for printing.
// Descriptor cells wrap, so row heights are computed from the tallest
// cell in each row.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

const (
	pdfPageWidth  = 277.0 // A4 landscape minus margins
	pdfLineHeight = 4.5
	pdfCellPad    = 2.0
)

// Render creates the PDF document.
func (e *PDFExporter) Render(grid Grid) ([]byte, error) {
	if len(grid.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()
	translate := pdf.UnicodeTranslatorFromDescriptor("")

	if grid.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 9, translate(grid.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	widths := columnWidths(len(grid.Headers))

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range grid.Headers {
		pdf.CellFormat(widths[i], 8, translate(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range grid.Rows {
		height := rowHeight(pdf, translate, widths, row)
		if pdf.GetY()+height > 190 {
			pdf.AddPage()
		}
		x, y := pdf.GetXY()
		for i := range grid.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.Rect(x, y, widths[i], height, "D")
			pdf.SetXY(x+pdfCellPad/2, y+pdfCellPad/2)
			pdf.MultiCell(widths[i]-pdfCellPad, pdfLineHeight, translate(value), "", "L", false)
			x += widths[i]
			pdf.SetXY(x, y)
		}
		pdf.SetXY(10, y+height)
	}

	if len(grid.Footnotes) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(0, 6, translate("Criterios de Evaluación"), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 8)
		for _, note := range grid.Footnotes {
			pdf.MultiCell(pdfPageWidth, pdfLineHeight, translate("- "+note), "", "L", false)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths gives the item column a fixed share, the weight column a
// narrow one, and splits the remainder across the level columns.
func columnWidths(count int) []float64 {
	widths := make([]float64, count)
	if count == 1 {
		widths[0] = pdfPageWidth
		return widths
	}
	if count == 2 {
		widths[0] = pdfPageWidth * 0.6
		widths[1] = pdfPageWidth * 0.4
		return widths
	}
	widths[0] = 55
	widths[1] = 18
	rest := (pdfPageWidth - widths[0] - widths[1]) / float64(count-2)
	for i := 2; i < count; i++ {
		widths[i] = rest
	}
	return widths
}

func rowHeight(pdf *gofpdf.Fpdf, translate func(string) string, widths []float64, row []string) float64 {
	max := 1
	for i, value := range row {
		if i >= len(widths) {
			break
		}
		lines := pdf.SplitLines([]byte(translate(value)), widths[i]-pdfCellPad)
		if len(lines) > max {
			max = len(lines)
		}
	}
	return float64(max)*pdfLineHeight + pdfCellPad
}
