package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"aquacrm-backend/models"

	"github.com/xuri/excelize/v2"
)

func exportFixture() []models.Invoice {
	delivery := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
	return []models.Invoice{
		{
			InvoiceNo:     "INV-001",
			Date:          time.Date(2024, time.March, 5, 10, 30, 0, 0, time.UTC),
			CustomerName:  `Acme "Traders"`,
			CustomerPhone: "+919876543210",
			GST:           true,
			GSTNo:         "33AAAAA0000A1Z5",
			GSTName:       "Acme Traders Pvt Ltd",
			DeliveryDate:  &delivery,
			DeliveredBy:   "Suresh",
			PaymentType:   "upi",
			PaymentStatus: "paid",
			TotalAmount:   12000,
		},
		{
			InvoiceNo:     "INV-002",
			Date:          time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
			CustomerName:  "Lakshmi Stores",
			PaymentStatus: "unpaid",
			TotalAmount:   4500,
		},
	}
}

func splitCSVRows(t *testing.T, out []byte) []string {
	t.Helper()
	s := string(out)
	if !strings.HasSuffix(s, "\n") {
		t.Fatal("csv must end with a newline")
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestExportCSV(t *testing.T) {
	out, err := ExportCSV(exportFixture())
	if err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	rows := splitCSVRows(t, out)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	wantHeader := `"Invoice No","Date","Customer","Phone","Email","Address","GST","PO","Quotation","Payment Type","Delivery Date","Delivered By","Base Price","GST Amount","Total","Status"`
	if rows[0] != wantHeader {
		t.Errorf("header row\n got %s\nwant %s", rows[0], wantHeader)
	}

	wantRow := `"INV-001","2024-03-05","Acme ""Traders""","+919876543210","","","Yes","No","No","upi","2024-03-07","Suresh","10169","1830","12000","paid"`
	if rows[1] != wantRow {
		t.Errorf("data row\n got %s\nwant %s", rows[1], wantRow)
	}

	// Every field quoted, 16 per row.
	for i, row := range rows {
		if !strings.HasPrefix(row, `"`) || !strings.HasSuffix(row, `"`) {
			t.Errorf("row %d not fully quoted: %s", i, row)
		}
	}
}

func TestExportSalesCSV(t *testing.T) {
	out, err := ExportSalesCSV(exportFixture())
	if err != nil {
		t.Fatalf("ExportSalesCSV: %v", err)
	}
	rows := splitCSVRows(t, out)
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}

	wantHeader := `"Invoice No","Date","Customer","GST","GST No","GST Name","Base Price","GST Amount","Total"`
	if rows[0] != wantHeader {
		t.Errorf("header row\n got %s\nwant %s", rows[0], wantHeader)
	}
	wantRow := `"INV-002","2024-04-02","Lakshmi Stores","No","","","3813","686","4500"`
	if rows[2] != wantRow {
		t.Errorf("data row\n got %s\nwant %s", rows[2], wantRow)
	}
}

func TestExportsAreDeterministic(t *testing.T) {
	fixture := exportFixture()

	first, err := ExportCSV(fixture)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ExportCSV(fixture)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("csv export must be byte-stable")
	}

	firstPDF, err := ExportPDF(fixture)
	if err != nil {
		t.Fatal(err)
	}
	secondPDF, err := ExportPDF(fixture)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(firstPDF, secondPDF) {
		t.Error("pdf export must be byte-stable")
	}
}

func TestExportPDF(t *testing.T) {
	out, err := ExportPDF(exportFixture())
	if err != nil {
		t.Fatalf("ExportPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("output does not start with a pdf header: %q", out[:8])
	}
}

func TestExportXLSX(t *testing.T) {
	out, err := ExportXLSX(exportFixture())
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Invoices", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Invoice No" {
		t.Errorf("A1 = %q, want Invoice No", got)
	}
	got, err = f.GetCellValue("Invoices", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "INV-001" {
		t.Errorf("A2 = %q, want INV-001", got)
	}
	got, err = f.GetCellValue("Invoices", "O3")
	if err != nil {
		t.Fatal(err)
	}
	if got != "4500" {
		t.Errorf("O3 = %q, want 4500", got)
	}
}

func TestExportsRejectEmptySet(t *testing.T) {
	exports := map[string]func([]models.Invoice) ([]byte, error){
		"csv":       ExportCSV,
		"sales csv": ExportSalesCSV,
		"pdf":       ExportPDF,
		"xlsx":      ExportXLSX,
	}
	for name, export := range exports {
		t.Run(name, func(t *testing.T) {
			out, err := export(nil)
			if err != ErrNoInvoices {
				t.Fatalf("err = %v, want ErrNoInvoices", err)
			}
			if out != nil {
				t.Fatal("no partial artifact on empty set")
			}
		})
	}
}
