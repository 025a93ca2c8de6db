// services/export_csv.go
package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"aquacrm-backend/models"
	"aquacrm-backend/utils"
)

// ErrNoInvoices rejects an export over an empty filtered set; no
// partial artifact is ever written.
var ErrNoInvoices = errors.New("no invoices to export")

const exportDateLayout = "2006-01-02"

// csvField wraps a field in double quotes with internal quotes
// doubled. Every field is quoted so the output is byte-stable, no
// other escaping is applied.
func csvField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func csvRow(fields []string) string {
	return strings.Join(fields, ",") + "\n"
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func formatDate(t time.Time) string {
	return t.Format(exportDateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

func rupees(v int64) string {
	return strconv.FormatInt(v, 10)
}

var generalCSVHeader = []string{
	"Invoice No", "Date", "Customer", "Phone", "Email", "Address",
	"GST", "PO", "Quotation", "Payment Type", "Delivery Date",
	"Delivered By", "Base Price", "GST Amount", "Total", "Status",
}

// ExportCSV renders the general 16-column CSV over the filtered
// collection. Output is deterministic: identical input yields
// byte-identical bytes.
func ExportCSV(invoices []models.Invoice) ([]byte, error) {
	if len(invoices) == 0 {
		return nil, ErrNoInvoices
	}

	var b strings.Builder
	writeCSVRow(&b, generalCSVHeader)
	for _, inv := range invoices {
		writeCSVRow(&b, []string{
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
			rupees(utils.BasePrice(inv.TotalAmount)),
			rupees(utils.GSTValue(inv.TotalAmount)),
			rupees(inv.TotalAmount),
			inv.PaymentStatus,
		})
	}
	return []byte(b.String()), nil
}

var salesCSVHeader = []string{
	"Invoice No", "Date", "Customer", "GST", "GST No", "GST Name",
	"Base Price", "GST Amount", "Total",
}

// ExportSalesCSV renders the narrower 9-column accounting hand-off.
func ExportSalesCSV(invoices []models.Invoice) ([]byte, error) {
	if len(invoices) == 0 {
		return nil, ErrNoInvoices
	}

	var b strings.Builder
	writeCSVRow(&b, salesCSVHeader)
	for _, inv := range invoices {
		writeCSVRow(&b, []string{
			inv.InvoiceNo,
			formatDate(inv.Date),
			inv.CustomerName,
			yesNo(inv.GST),
			inv.GSTNo,
			inv.GSTName,
			rupees(utils.BasePrice(inv.TotalAmount)),
			rupees(utils.GSTValue(inv.TotalAmount)),
			rupees(inv.TotalAmount),
		})
	}
	return []byte(b.String()), nil
}

func writeCSVRow(b *strings.Builder, fields []string) {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = csvField(f)
	}
	b.WriteString(csvRow(quoted))
}
