// services/export_pdf.go
package services

import (
	"bytes"
	"fmt"
	"time"

	"aquacrm-backend/models"
	"aquacrm-backend/utils"

	"github.com/jung-kurt/gofpdf"
)

// The creation date is pinned so identical input yields identical
// bytes across runs.
var pdfEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// ExportPDF renders the filtered collection as a single printable A4
// document: one table plus a totals row.
func ExportPDF(invoices []models.Invoice) ([]byte, error) {
	if len(invoices) == 0 {
		return nil, ErrNoInvoices
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "AquaCRM Invoices")
	pdf.Ln(14)

	headers := []string{"Invoice No", "Date", "Customer", "Base Price", "GST", "Total", "Status"}
	widths := []float64{45, 30, 70, 35, 30, 35, 30}

	pdf.SetFont("Arial", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	var total int64
	for _, inv := range invoices {
		cells := []string{
			inv.InvoiceNo,
			formatDate(inv.Date),
			inv.CustomerName,
			rupees(utils.BasePrice(inv.TotalAmount)),
			rupees(utils.GSTValue(inv.TotalAmount)),
			rupees(inv.TotalAmount),
			inv.PaymentStatus,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 7, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		total += inv.TotalAmount
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(widths[0]+widths[1]+widths[2], 8, fmt.Sprintf("Total (%d invoices)", len(invoices)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[3], 8, rupees(utils.BasePrice(sumTotals(invoices))), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[4], 8, rupees(utils.GSTValue(sumTotals(invoices))), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[5], 8, rupees(total), "1", 0, "L", false, 0, "")
	pdf.CellFormat(widths[6], 8, "", "1", 0, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func sumTotals(invoices []models.Invoice) int64 {
	var total int64
	for _, inv := range invoices {
		total += inv.TotalAmount
	}
	return total
}
