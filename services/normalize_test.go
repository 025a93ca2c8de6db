package services

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeInvoiceSynonyms(t *testing.T) {
	rec := map[string]any{
		"invoice_number": "INV-001",
		"invoice_date":   "2024-05-01",
		"customer": map[string]any{
			"name":    "Ravi Kumar",
			"phone":   "+919876543210",
			"address": "12 Anna Nagar",
		},
		"is_gst": true,
		"gst_details": map[string]any{
			"name":   "Ravi Traders",
			"number": "33AAAAA0000A1Z5",
		},
		"payment_status": "paid",
		"payment_mode":   "upi",
		"order_items": []any{
			map[string]any{"item_name": "RO Filter", "qty": 2, "unit_price": 1500},
			map[string]any{"title": "Booster Pump", "rate": 8000},
		},
	}

	inv := NormalizeInvoice(rec)

	if inv.InvoiceNo != "INV-001" {
		t.Errorf("InvoiceNo = %q", inv.InvoiceNo)
	}
	wantDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	if !inv.Date.Equal(wantDate) {
		t.Errorf("Date = %v, want %v", inv.Date, wantDate)
	}
	if inv.CustomerName != "Ravi Kumar" || inv.CustomerPhone != "+919876543210" {
		t.Errorf("customer = %q / %q", inv.CustomerName, inv.CustomerPhone)
	}
	if inv.CustomerAddress != "12 Anna Nagar" {
		t.Errorf("CustomerAddress = %q", inv.CustomerAddress)
	}
	if !inv.GST || inv.GSTName != "Ravi Traders" || inv.GSTNo != "33AAAAA0000A1Z5" {
		t.Errorf("gst block = %v %q %q", inv.GST, inv.GSTName, inv.GSTNo)
	}
	if inv.PaymentStatus != "paid" || inv.PaymentType != "upi" {
		t.Errorf("payment = %q / %q", inv.PaymentStatus, inv.PaymentType)
	}
	if len(inv.Products) != 2 {
		t.Fatalf("got %d lines", len(inv.Products))
	}
	if inv.Products[0].Name != "RO Filter" || inv.Products[0].Quantity != 2 || inv.Products[0].Price != 1500 {
		t.Errorf("line 0 = %+v", inv.Products[0])
	}
	if inv.Products[1].Name != "Booster Pump" || inv.Products[1].Quantity != 1 || inv.Products[1].Price != 8000 {
		t.Errorf("line 1 = %+v", inv.Products[1])
	}
	if inv.Products[0].Position != 0 || inv.Products[1].Position != 1 {
		t.Errorf("positions = %d, %d", inv.Products[0].Position, inv.Products[1].Position)
	}
	if inv.TotalAmount != 11000 {
		t.Errorf("TotalAmount = %d, want 11000", inv.TotalAmount)
	}
}

func TestNormalizeInvoiceDefaults(t *testing.T) {
	before := time.Now()
	inv := NormalizeInvoice(map[string]any{})

	if !strings.HasPrefix(inv.InvoiceNo, "inv-") || len(inv.InvoiceNo) != len("inv-")+8 {
		t.Errorf("generated InvoiceNo = %q", inv.InvoiceNo)
	}
	if inv.ID == uuid.Nil {
		t.Error("ID must be generated")
	}
	if inv.Date.Before(before) {
		t.Errorf("Date = %v, want current time", inv.Date)
	}
	if inv.CustomerName != "" || inv.GST || inv.PO || inv.Quotation {
		t.Errorf("non-zero defaults: %+v", inv)
	}
	if inv.PaymentStatus != "unpaid" {
		t.Errorf("PaymentStatus = %q, want unpaid", inv.PaymentStatus)
	}
	if inv.DeliveryDate != nil {
		t.Error("DeliveryDate must stay nil when absent")
	}
	if len(inv.Products) != 0 || inv.TotalAmount != 0 {
		t.Errorf("products/total = %v / %d", inv.Products, inv.TotalAmount)
	}
}

func TestNormalizeInvoicePreservesID(t *testing.T) {
	id := uuid.New()
	inv := NormalizeInvoice(map[string]any{"id": id.String()})
	if inv.ID != id {
		t.Fatalf("ID = %v, want %v", inv.ID, id)
	}

	inv = NormalizeInvoice(map[string]any{"id": "not-a-uuid"})
	if inv.ID == uuid.Nil {
		t.Fatal("unparsable id must still yield a fresh uuid")
	}
}

func TestResolveTotalPrecedence(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
		want int64
	}{
		{
			name: "line sum wins over upstream total",
			rec: map[string]any{
				"total": 99999,
				"items": []any{
					map[string]any{"name": "Filter", "quantity": 2, "price": 1500},
				},
			},
			want: 3000,
		},
		{
			name: "upstream total used when no lines",
			rec:  map[string]any{"total_amount": 4500},
			want: 4500,
		},
		{
			name: "upstream total used when lines sum to zero",
			rec: map[string]any{
				"total": 4500,
				"items": []any{map[string]any{"name": "Service visit"}},
			},
			want: 4500,
		},
		{
			name: "negative upstream total ignored",
			rec:  map[string]any{"total": -100},
			want: 0,
		},
		{
			name: "numeric string total",
			rec:  map[string]any{"total": "2500"},
			want: 2500,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeInvoice(tt.rec).TotalAmount; got != tt.want {
				t.Fatalf("TotalAmount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeLineFallbacks(t *testing.T) {
	rec := map[string]any{
		"products": []any{
			// Unit price backed out of a line total.
			map[string]any{"name": "Pipe", "qty": 5, "total_price": 1000},
			// Quantity below one resets to one.
			map[string]any{"name": "Filter", "quantity": 0, "price": 1500},
			// Non-object entries are skipped.
			"garbage",
			map[string]any{"name": "Pump", "price": 8000, "serial_no": "BP-77"},
		},
	}

	inv := NormalizeInvoice(rec)
	if len(inv.Products) != 3 {
		t.Fatalf("got %d lines", len(inv.Products))
	}
	if inv.Products[0].Price != 200 {
		t.Errorf("backed-out unit price = %d, want 200", inv.Products[0].Price)
	}
	if inv.Products[1].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", inv.Products[1].Quantity)
	}
	if inv.Products[2].Serial != "BP-77" || inv.Products[2].Position != 2 {
		t.Errorf("line 2 = %+v", inv.Products[2])
	}
}

// A canonical invoice marshalled to JSON and re-normalized must come
// back unchanged.
func TestNormalizeInvoiceIdempotent(t *testing.T) {
	first := NormalizeInvoice(map[string]any{
		"invoice_no":    "INV-042",
		"date":          "2024-03-15",
		"customer_name": "Lakshmi Stores",
		"phone":         "+914412345678",
		"gst":           true,
		"gstNo":         "33BBBBB1111B2Z6",
		"status":        "partial",
		"items": []any{
			map[string]any{"name": "Filter", "quantity": 2, "price": 1500},
			map[string]any{"name": "Pipe", "quantity": 5, "price": 200},
		},
	})

	blob, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	var rec map[string]any
	if err := json.Unmarshal(blob, &rec); err != nil {
		t.Fatal(err)
	}
	second := NormalizeInvoice(rec)

	if second.ID != first.ID {
		t.Errorf("ID changed: %v -> %v", first.ID, second.ID)
	}
	if second.InvoiceNo != first.InvoiceNo {
		t.Errorf("InvoiceNo changed: %q -> %q", first.InvoiceNo, second.InvoiceNo)
	}
	if !second.Date.Equal(first.Date) {
		t.Errorf("Date changed: %v -> %v", first.Date, second.Date)
	}
	if second.CustomerName != first.CustomerName || second.CustomerPhone != first.CustomerPhone {
		t.Error("customer snapshot changed")
	}
	if second.GST != first.GST || second.GSTNo != first.GSTNo {
		t.Error("gst block changed")
	}
	if second.PaymentStatus != first.PaymentStatus {
		t.Errorf("PaymentStatus changed: %q -> %q", first.PaymentStatus, second.PaymentStatus)
	}
	if second.TotalAmount != first.TotalAmount {
		t.Errorf("TotalAmount changed: %d -> %d", first.TotalAmount, second.TotalAmount)
	}
	if len(second.Products) != len(first.Products) {
		t.Fatalf("line count changed: %d -> %d", len(first.Products), len(second.Products))
	}
	for i := range first.Products {
		f, s := first.Products[i], second.Products[i]
		if s.Name != f.Name || s.Quantity != f.Quantity || s.Price != f.Price {
			t.Errorf("line %d changed: %+v -> %+v", i, f, s)
		}
	}
}
