// Package render lays out an invoice summary as a printable PDF.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// Widths are in millimetres.
var itemColumns = []struct {
	title string
	width float64
	align string
}{
	{"Item", 60, "L"},
	{"Price", 25, "R"},
	{"Qty", 12, "R"},
	{"Disc %", 16, "R"},
	{"Tax %", 16, "R"},
	{"Time", 21, "R"},
	{"Total", 30, "R"},
}

// PDFRenderer writes invoice summaries as single page A4 documents.
type PDFRenderer struct {
	formatter *invoice.Formatter
	title     string
	log       zerolog.Logger
}

// NewPDFRenderer creates a renderer printing amounts with f. A nil f
// selects US dollars.
func NewPDFRenderer(f *invoice.Formatter) *PDFRenderer {
	if f == nil {
		f = invoice.DefaultFormatter()
	}
	return &PDFRenderer{
		formatter: f,
		title:     "Invoice",
		log:       logger.WithComponent("pdf"),
	}
}

// Render writes s to w. client may be nil when the draft has no client.
func (r *PDFRenderer) Render(w io.Writer, s invoice.Summary, client *models.Client) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(r.title, true)
	pdf.SetAuthor("invoicer", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, r.title, "", 1, "L", false, 0, "")
	if s.Paid {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "PAID", "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "", 11)
	if client != nil {
		pdf.CellFormat(0, 6, tr("Bill to: "+client.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(client.Email), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 6, tr(client.Location), "", 1, "L", false, 0, "")
	} else if s.ClientID != "" {
		pdf.CellFormat(0, 6, tr("Bill to: "+s.ClientID), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range itemColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, item := range s.Items {
		cells := []string{
			item.Name,
			r.formatter.Format(item.Price),
			strconv.Itoa(item.Quantity),
			item.Discount.String(),
			item.Tax.String(),
			fmt.Sprintf("%d %s", item.Time.Value, item.Time.Unit),
			r.formatter.Format(item.Breakdown.Total),
		}
		for i, col := range itemColumns {
			pdf.CellFormat(col.width, 7, tr(cells[i]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
		if item.Description != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 5, tr(item.Description), "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 10)
		}
	}
	pdf.Ln(4)

	t := s.Totals
	rows := [][2]string{
		{"Subtotal", r.formatter.Format(t.Subtotal)},
		{"Total Discount", r.formatter.Format(t.TotalDiscount.Neg())},
		{"Total Tax", r.formatter.Format(t.TotalTax)},
		{"Total Amount", r.formatter.Format(t.TotalAmount)},
	}
	if len(s.Payments) > 0 {
		rows = append(rows,
			[2]string{"Total Paid", r.formatter.Format(t.TotalPayments)},
			[2]string{"Balance", r.formatter.Format(t.Balance)},
		)
	}
	for _, row := range rows {
		pdf.CellFormat(150, 6, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, tr(row[1]), "", 1, "R", false, 0, "")
	}

	if len(s.Payments) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 7, "Payments", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, p := range s.Payments {
			line := fmt.Sprintf("%s  %s", p.Type, r.formatter.Format(p.Amount))
			if p.Reference != "" {
				line += "  (" + p.Reference + ")"
			}
			pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		r.log.Error().Err(err).Msg("Failed to render invoice PDF")
		return fmt.Errorf("render invoice pdf: %w", err)
	}

	r.log.Debug().
		Int("items", len(s.Items)).
		Int("payments", len(s.Payments)).
		Msg("Invoice PDF rendered")
	return nil
}
