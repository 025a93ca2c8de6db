// services/draft.go
package services

import (
	"encoding/json"
	"errors"
	"sync"

	"aquacrm-backend/models"

	"gorm.io/gorm"
)

// DraftKey is the fixed durable-storage key for the invoice draft.
const DraftKey = "aquacrm_invoice_draft"

// DraftBackend is the durable storage boundary: string key/value,
// one JSON blob per draft. In-memory for tests, database-backed in
// production.
type DraftBackend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryBackend keeps drafts in a map.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// DBBackend stores drafts as DraftRecord rows.
type DBBackend struct {
	db *gorm.DB
}

func NewDBBackend(db *gorm.DB) *DBBackend {
	return &DBBackend{db: db}
}

func (b *DBBackend) Get(key string) (string, bool, error) {
	var rec models.DraftRecord
	err := b.db.First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (b *DBBackend) Set(key, value string) error {
	return b.db.Save(&models.DraftRecord{Key: key, Value: value}).Error
}

func (b *DBBackend) Delete(key string) error {
	return b.db.Delete(&models.DraftRecord{}, "key = ?", key).Error
}

// DraftState is the persisted pair: the invoice form under edit and
// the staging slot, plus the index of the line being edited (-1 when
// none).
type DraftState struct {
	FormData     InvoiceForm `json:"formData"`
	Staging      ProductForm `json:"productFormStaging"`
	EditingIndex int         `json:"editingIndex"`
}

func defaultDraftState() DraftState {
	return DraftState{FormData: DefaultInvoiceForm(), EditingIndex: noEdit}
}

// DraftStore owns the in-progress invoice draft. Every mutation runs a
// full-state serialize-and-store, but only after Load has hydrated the
// store: a save issued before hydration would overwrite a good draft
// with an empty one, so it is suppressed.
type DraftStore struct {
	mu       sync.Mutex
	backend  DraftBackend
	key      string
	state    DraftState
	hydrated bool
}

func NewDraftStore(backend DraftBackend) *DraftStore {
	return &DraftStore{
		backend: backend,
		key:     DraftKey,
		state:   defaultDraftState(),
	}
}

// Load reads any stored blob and merges it field-by-field over the
// all-defaults template, so a partially-shaped stored draft never
// crashes hydration. Persistence is enabled only once Load succeeds.
func (s *DraftStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok, err := s.backend.Get(s.key)
	if err != nil {
		return err
	}
	state := defaultDraftState()
	if ok {
		if err := json.Unmarshal([]byte(stored), &state); err != nil {
			// A corrupt blob resumes from the empty template.
			state = defaultDraftState()
		}
	}
	if state.FormData.Products == nil {
		state.FormData.Products = []ProductForm{}
	}
	if state.EditingIndex < 0 || state.EditingIndex >= len(state.FormData.Products) {
		state.EditingIndex = noEdit
	}
	s.state = state
	s.hydrated = true
	return nil
}

// save persists the full state; suppressed until hydration completes.
// Callers must hold the lock.
func (s *DraftStore) save() error {
	if !s.hydrated {
		return nil
	}
	blob, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	return s.backend.Set(s.key, string(blob))
}

// State returns a copy of the current draft state.
func (s *DraftStore) State() DraftState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.FormData.Products = append([]ProductForm(nil), s.state.FormData.Products...)
	return out
}

// SetForm replaces the form data and persists.
func (s *DraftStore) SetForm(form InvoiceForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if form.Products == nil {
		form.Products = []ProductForm{}
	}
	s.state.FormData = form
	if s.state.EditingIndex >= len(form.Products) {
		s.state.EditingIndex = noEdit
		s.state.Staging = ProductForm{}
	}
	return s.save()
}

// Clear resets the in-memory state to defaults and removes the durable
// key. A failed removal leaves the draft intact so the caller can
// retry; memory and storage never diverge.
func (s *DraftStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(s.key); err != nil {
		return err
	}
	s.state = defaultDraftState()
	return nil
}

// editor ops: each bridges the state machine over the draft's line
// sequence, writes the result back, and persists.

func (s *DraftStore) editor() *LineItemEditor {
	return &LineItemEditor{
		Lines:        s.state.FormData.Products,
		Staging:      s.state.Staging,
		EditingIndex: s.state.EditingIndex,
	}
}

func (s *DraftStore) apply(e *LineItemEditor) error {
	s.state.FormData.Products = e.Lines
	s.state.Staging = e.Staging
	s.state.EditingIndex = e.EditingIndex
	return s.save()
}

func (s *DraftStore) Stage(p ProductForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.editor()
	e.Stage(p)
	return s.apply(e)
}

func (s *DraftStore) Select(name string, catalog []models.CatalogProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.editor()
	e.Select(name, catalog)
	return s.apply(e)
}

func (s *DraftStore) Commit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.editor()
	if err := e.Commit(); err != nil {
		return err
	}
	return s.apply(e)
}

func (s *DraftStore) Edit(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.editor()
	if err := e.Edit(i); err != nil {
		return err
	}
	return s.apply(e)
}

func (s *DraftStore) CancelEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.editor()
	e.CancelEdit()
	return s.apply(e)
}

func (s *DraftStore) Remove(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.editor()
	if err := e.Remove(i); err != nil {
		return err
	}
	return s.apply(e)
}

// Total recomputes the draft total from the committed lines.
func (s *DraftStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotal(s.state.FormData.Products)
}
