package services

import (
	"encoding/json"
	"testing"
)

func loadedDraftStore(t *testing.T) (*DraftStore, *MemoryBackend) {
	t.Helper()
	backend := NewMemoryBackend()
	store := NewDraftStore(backend)
	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return store, backend
}

func TestDraftStoreRoundTrip(t *testing.T) {
	store, backend := loadedDraftStore(t)

	form := DefaultInvoiceForm()
	form.CustomerName = "Ravi Kumar"
	form.CustomerPhone = "+919876543210"
	if err := store.SetForm(form); err != nil {
		t.Fatalf("SetForm: %v", err)
	}
	for _, p := range fixtureLines() {
		store.Stage(p)
		if err := store.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}
	if got := store.Total(); got != 12000 {
		t.Fatalf("Total = %d, want 12000", got)
	}

	// A second store over the same backend resumes the exact state.
	resumed := NewDraftStore(backend)
	if err := resumed.Load(); err != nil {
		t.Fatalf("resume Load: %v", err)
	}
	state := resumed.State()
	if state.FormData.CustomerName != "Ravi Kumar" {
		t.Errorf("CustomerName = %q", state.FormData.CustomerName)
	}
	if len(state.FormData.Products) != 3 {
		t.Fatalf("resumed %d lines", len(state.FormData.Products))
	}
	if got := resumed.Total(); got != 12000 {
		t.Errorf("resumed Total = %d, want 12000", got)
	}
}

// Mutations before hydration must never reach durable storage: they
// would clobber the stored draft with an empty one.
func TestDraftStoreSuppressesSaveBeforeLoad(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Set(DraftKey, `{"formData":{"customerName":"Stored Customer","products":[]}}`)

	store := NewDraftStore(backend)
	if err := store.Stage(ProductForm{Name: "Filter", Price: 1500}); err != nil {
		t.Fatalf("Stage: %v", err)
	}

	stored, ok, _ := backend.Get(DraftKey)
	if !ok {
		t.Fatal("stored draft vanished")
	}
	var state DraftState
	if err := json.Unmarshal([]byte(stored), &state); err != nil {
		t.Fatal(err)
	}
	if state.FormData.CustomerName != "Stored Customer" {
		t.Fatalf("pre-hydration mutation overwrote the stored draft: %q", state.FormData.CustomerName)
	}

	if err := store.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := store.State().FormData.CustomerName; got != "Stored Customer" {
		t.Fatalf("hydrated CustomerName = %q", got)
	}
}

func TestDraftStoreHydration(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{name: "corrupt blob", blob: `{"formData":`},
		{name: "partial blob", blob: `{"formData":{"customerName":"Partial"}}`},
		{name: "editing index out of range", blob: `{"formData":{"products":[{"productName":"Filter","productQuantity":1,"productPrice":1500}]},"editingIndex":9}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryBackend()
			backend.Set(DraftKey, tt.blob)
			store := NewDraftStore(backend)
			if err := store.Load(); err != nil {
				t.Fatalf("Load: %v", err)
			}
			state := store.State()
			if state.FormData.Products == nil {
				t.Error("Products must hydrate to an empty slice, not nil")
			}
			if state.EditingIndex != noEdit && state.EditingIndex >= len(state.FormData.Products) {
				t.Errorf("EditingIndex = %d with %d lines", state.EditingIndex, len(state.FormData.Products))
			}
		})
	}

	t.Run("partial blob keeps defaults for missing fields", func(t *testing.T) {
		backend := NewMemoryBackend()
		backend.Set(DraftKey, `{"formData":{"customerName":"Partial"}}`)
		store := NewDraftStore(backend)
		if err := store.Load(); err != nil {
			t.Fatalf("Load: %v", err)
		}
		state := store.State()
		if state.FormData.CustomerName != "Partial" {
			t.Errorf("CustomerName = %q", state.FormData.CustomerName)
		}
		if state.FormData.PaymentStatus != "unpaid" {
			t.Errorf("PaymentStatus = %q, want default unpaid", state.FormData.PaymentStatus)
		}
	})
}

func TestDraftStoreClear(t *testing.T) {
	store, backend := loadedDraftStore(t)
	form := DefaultInvoiceForm()
	form.CustomerName = "Ravi Kumar"
	store.SetForm(form)
	store.Stage(ProductForm{Name: "Filter", Price: 1500})
	store.Commit()

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := backend.Get(DraftKey); ok {
		t.Error("Clear must remove the durable key")
	}
	state := store.State()
	if state.FormData.CustomerName != "" || len(state.FormData.Products) != 0 {
		t.Errorf("Clear left state behind: %+v", state.FormData)
	}
	if state.FormData.PaymentStatus != "unpaid" {
		t.Errorf("PaymentStatus = %q, want template default", state.FormData.PaymentStatus)
	}
	if state.EditingIndex != noEdit {
		t.Errorf("EditingIndex = %d", state.EditingIndex)
	}
}

func TestDraftStoreEditorBridge(t *testing.T) {
	store, _ := loadedDraftStore(t)
	for _, p := range fixtureLines() {
		store.Stage(p)
		if err := store.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
	}

	if err := store.Edit(1); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	state := store.State()
	if state.Staging.Name != "Pump" || state.EditingIndex != 1 {
		t.Fatalf("edit state = %+v / %d", state.Staging, state.EditingIndex)
	}

	store.Stage(ProductForm{Name: "Pump", Quantity: 1, Price: 8500})
	if err := store.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	state = store.State()
	if state.FormData.Products[1].Price != 8500 {
		t.Errorf("line 1 price = %d, want 8500", state.FormData.Products[1].Price)
	}
	if got := store.Total(); got != 12500 {
		t.Errorf("Total = %d, want 12500", got)
	}

	if err := store.Remove(0); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := len(store.State().FormData.Products); got != 2 {
		t.Errorf("%d lines after Remove", got)
	}

	if err := store.Commit(); err != ErrIncompleteLine {
		t.Errorf("empty-staging Commit err = %v, want ErrIncompleteLine", err)
	}
}
