package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aquacrm-backend/models"
)

// memoryInvoiceStore records upserts keyed by invoice number.
type memoryInvoiceStore struct {
	upserts []models.Invoice
	failFor string
}

func (m *memoryInvoiceStore) List() ([]models.Invoice, error) {
	return append([]models.Invoice(nil), m.upserts...), nil
}

func (m *memoryInvoiceStore) Upsert(inv models.Invoice) error {
	if m.failFor != "" && inv.InvoiceNo == m.failFor {
		return errors.New("storage rejected record")
	}
	for i, existing := range m.upserts {
		if existing.InvoiceNo == inv.InvoiceNo {
			m.upserts[i] = inv
			return nil
		}
	}
	m.upserts = append(m.upserts, inv)
	return nil
}

func upstreamServer(t *testing.T, records []map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(records)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestImportPartialBatch(t *testing.T) {
	records := []map[string]any{
		{
			"invoice_number": "INV-001",
			"customer_name":  "Ravi Kumar",
			"phone":          "+919876543210",
			"items": []any{
				map[string]any{"name": "Filter", "quantity": 2, "price": 1500},
			},
		},
		// No phone: validation failure.
		{
			"invoice_number": "INV-002",
			"customer_name":  "No Phone",
		},
		{
			"invoice_number": "INV-003",
			"customer_name":  "Lakshmi Stores",
			"phone":          "+914412345678",
			"total":          4500,
		},
		// No customer name: validation failure.
		{
			"invoice_number": "INV-004",
			"phone":          "+919000000000",
		},
		{
			"invoice_number": "INV-005",
			"customer_name":  "Anand Agencies",
			"phone":          "+918765432109",
			"total":          2000,
		},
	}
	srv := upstreamServer(t, records)
	store := &memoryInvoiceStore{}

	result, err := NewImporter(store).Import(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.SuccessCount != 3 || result.ErrorCount != 2 {
		t.Fatalf("counts = %d/%d, want 3/2", result.SuccessCount, result.ErrorCount)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("got %d error messages", len(result.Errors))
	}
	if len(store.upserts) != 3 {
		t.Fatalf("store holds %d invoices, want 3", len(store.upserts))
	}
	for _, inv := range store.upserts {
		if !inv.OnlineOrder {
			t.Errorf("%s: imported invoice must carry online provenance", inv.InvoiceNo)
		}
	}
	if store.upserts[0].TotalAmount != 3000 {
		t.Errorf("INV-001 total = %d, want 3000", store.upserts[0].TotalAmount)
	}
	if store.upserts[1].TotalAmount != 4500 {
		t.Errorf("INV-003 total = %d, want 4500", store.upserts[1].TotalAmount)
	}
}

func TestImportCountsStorageFailures(t *testing.T) {
	records := []map[string]any{
		{"invoice_number": "INV-001", "customer_name": "Ravi Kumar", "phone": "+919876543210", "total": 100},
		{"invoice_number": "INV-002", "customer_name": "Lakshmi Stores", "phone": "+914412345678", "total": 200},
	}
	srv := upstreamServer(t, records)
	store := &memoryInvoiceStore{failFor: "INV-002"}

	result, err := NewImporter(store).Import(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.SuccessCount != 1 || result.ErrorCount != 1 {
		t.Fatalf("counts = %d/%d, want 1/1", result.SuccessCount, result.ErrorCount)
	}
}

func TestImportFetchFailures(t *testing.T) {
	t.Run("upstream error status fails the whole operation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		store := &memoryInvoiceStore{}
		if _, err := NewImporter(store).Import(context.Background(), srv.URL); err == nil {
			t.Fatal("want error on non-200 upstream")
		}
		if len(store.upserts) != 0 {
			t.Fatal("failed fetch must not write anything")
		}
	})

	t.Run("malformed batch body fails the whole operation", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"an array"}`))
		}))
		defer srv.Close()

		if _, err := NewImporter(&memoryInvoiceStore{}).Import(context.Background(), srv.URL); err == nil {
			t.Fatal("want error on non-array body")
		}
	})

	t.Run("unreachable upstream", func(t *testing.T) {
		if _, err := NewImporter(&memoryInvoiceStore{}).Import(context.Background(), "http://127.0.0.1:1"); err == nil {
			t.Fatal("want error on connection failure")
		}
	})
}

func TestImportIsIdempotentPerInvoiceNo(t *testing.T) {
	id := "7b0f9f4e-8c7a-4a93-bb3e-2f9e1a6c5d41"
	records := []map[string]any{
		{"id": id, "invoice_number": "INV-001", "customer_name": "Ravi Kumar", "phone": "+919876543210", "total": 100},
	}
	srv := upstreamServer(t, records)
	store := &memoryInvoiceStore{}
	imp := NewImporter(store)

	for i := 0; i < 2; i++ {
		if _, err := imp.Import(context.Background(), srv.URL); err != nil {
			t.Fatalf("Import #%d: %v", i+1, err)
		}
	}
	if len(store.upserts) != 1 {
		t.Fatalf("store holds %d invoices after re-import, want 1", len(store.upserts))
	}
}
