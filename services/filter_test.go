package services

import (
	"testing"
	"time"

	"aquacrm-backend/models"
)

func filterFixture() []models.Invoice {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return []models.Invoice{
		{InvoiceNo: "INV-001", Date: date(2024, time.March, 5), GST: true, TotalAmount: 12000},
		{InvoiceNo: "INV-002", Date: date(2024, time.March, 20), PO: true, TotalAmount: 4500},
		{InvoiceNo: "INV-003", Date: date(2024, time.April, 2), TotalAmount: 2000},
		{InvoiceNo: "INV-004", Date: date(2023, time.March, 9), GST: true, PO: true, TotalAmount: 8000},
	}
}

func invoiceNos(list []models.Invoice) []string {
	nos := make([]string, len(list))
	for i, inv := range list {
		nos[i] = inv.InvoiceNo
	}
	return nos
}

func TestFilterInvoices(t *testing.T) {
	tests := []struct {
		name   string
		filter InvoiceFilter
		want   []string
	}{
		{
			name:   "all all all is the identity",
			filter: InvoiceFilter{Month: "all", Year: "all", Flag: "all"},
			want:   []string{"INV-001", "INV-002", "INV-003", "INV-004"},
		},
		{
			name:   "empty strings pass everything",
			filter: InvoiceFilter{},
			want:   []string{"INV-001", "INV-002", "INV-003", "INV-004"},
		},
		{
			name:   "month only",
			filter: InvoiceFilter{Month: "3", Year: "all", Flag: "all"},
			want:   []string{"INV-001", "INV-002", "INV-004"},
		},
		{
			name:   "month and year conjunction",
			filter: InvoiceFilter{Month: "3", Year: "2024", Flag: "all"},
			want:   []string{"INV-001", "INV-002"},
		},
		{
			name:   "gst flag",
			filter: InvoiceFilter{Month: "all", Year: "all", Flag: "gst"},
			want:   []string{"INV-001", "INV-004"},
		},
		{
			name:   "po flag with year",
			filter: InvoiceFilter{Month: "all", Year: "2024", Flag: "po"},
			want:   []string{"INV-002"},
		},
		{
			name:   "unparsable month passes everything",
			filter: InvoiceFilter{Month: "march", Year: "all", Flag: "all"},
			want:   []string{"INV-001", "INV-002", "INV-003", "INV-004"},
		},
		{
			name:   "no match",
			filter: InvoiceFilter{Month: "12", Year: "2024", Flag: "all"},
			want:   []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := invoiceNos(FilterInvoices(filterFixture(), tt.filter))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v (order must be preserved)", got, tt.want)
				}
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	stats := Aggregate(filterFixture())
	if stats.TotalValue != 26500 || stats.Count != 4 {
		t.Fatalf("stats = %+v", stats)
	}
	if stats.AverageSale != 6625 {
		t.Fatalf("AverageSale = %v, want 6625", stats.AverageSale)
	}
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)
	if stats.TotalValue != 0 || stats.Count != 0 || stats.AverageSale != 0 {
		t.Fatalf("empty stats = %+v, want all zero", stats)
	}
}
