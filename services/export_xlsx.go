// services/export_xlsx.go
package services

import (
	"fmt"

	"aquacrm-backend/models"
	"aquacrm-backend/utils"

	"github.com/xuri/excelize/v2"
)

// ExportXLSX writes the filtered collection as a workbook mirroring
// the general CSV columns. Document timestamps are pinned to keep the
// artifact stable across runs.
func ExportXLSX(invoices []models.Invoice) ([]byte, error) {
	if len(invoices) == 0 {
		return nil, ErrNoInvoices
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoices"
	f.SetSheetName("Sheet1", sheet)
	f.SetDocProps(&excelize.DocProperties{
		Creator:  "aquacrm-backend",
		Created:  pdfEpoch.Format("2006-01-02T15:04:05Z"),
		Modified: pdfEpoch.Format("2006-01-02T15:04:05Z"),
	})

	for col, h := range generalCSVHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, inv := range invoices {
		values := []any{
			inv.InvoiceNo,
			formatDate(inv.Date),
			inv.CustomerName,
			inv.CustomerPhone,
			inv.CustomerEmail,
			inv.CustomerAddress,
			yesNo(inv.GST),
			yesNo(inv.PO),
			yesNo(inv.Quotation),
			inv.PaymentType,
			formatDatePtr(inv.DeliveryDate),
			inv.DeliveredBy,
			utils.BasePrice(inv.TotalAmount),
			utils.GSTValue(inv.TotalAmount),
			inv.TotalAmount,
			inv.PaymentStatus,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
