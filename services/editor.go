// services/editor.go
package services

import (
	"errors"
	"strings"

	"aquacrm-backend/models"
)

var (
	ErrIncompleteLine  = errors.New("product name and a price above zero are required")
	ErrLineOutOfRange  = errors.New("line index out of range")
	ErrNothingToCommit = errors.New("staging slot is empty")
)

// noEdit marks the editor as having no line selected for editing.
const noEdit = -1

// LineItemEditor is the state machine over a draft's product sequence
// and its single staging slot. It is independent of persistence; the
// DraftStore owns durability.
//
// States: idle (staging empty, EditingIndex == noEdit), composing
// (staging holds an uncommitted candidate), editing(i) (staging was
// pre-filled from line i).
type LineItemEditor struct {
	Lines        []ProductForm
	Staging      ProductForm
	EditingIndex int
}

func NewLineItemEditor() *LineItemEditor {
	return &LineItemEditor{Lines: []ProductForm{}, EditingIndex: noEdit}
}

// Stage replaces the staging slot with a candidate line.
func (e *LineItemEditor) Stage(p ProductForm) {
	if p.Quantity < 1 {
		p.Quantity = 1
	}
	e.Staging = p
}

// Select sets the staging name and autofills the price from the
// catalog by case-insensitive exact name match. No match leaves the
// price at zero and keeps the typed name.
func (e *LineItemEditor) Select(name string, catalog []models.CatalogProduct) {
	e.Staging.Name = name
	e.Staging.Price = 0
	if e.Staging.Quantity < 1 {
		e.Staging.Quantity = 1
	}
	for _, p := range catalog {
		if strings.EqualFold(p.Name, name) {
			e.Staging.Price = p.Price
			return
		}
	}
}

// Commit appends the staging line, or overwrites the line under edit,
// then returns to idle. The staging line must carry a non-empty name
// and a price above zero; otherwise the state is left untouched.
func (e *LineItemEditor) Commit() error {
	if strings.TrimSpace(e.Staging.Name) == "" || e.Staging.Price <= 0 {
		return ErrIncompleteLine
	}
	line := e.Staging
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if e.EditingIndex >= 0 {
		e.Lines[e.EditingIndex] = line
	} else {
		e.Lines = append(e.Lines, line)
	}
	e.Staging = ProductForm{}
	e.EditingIndex = noEdit
	return nil
}

// Edit loads line i into the staging slot and marks it selected.
func (e *LineItemEditor) Edit(i int) error {
	if i < 0 || i >= len(e.Lines) {
		return ErrLineOutOfRange
	}
	e.Staging = e.Lines[i]
	e.EditingIndex = i
	return nil
}

// CancelEdit discards the staging slot without touching the sequence.
func (e *LineItemEditor) CancelEdit() {
	e.Staging = ProductForm{}
	e.EditingIndex = noEdit
}

// Remove deletes line i. If i is the line under edit, the edit is
// cancelled first; removing an earlier line shifts the edit index.
func (e *LineItemEditor) Remove(i int) error {
	if i < 0 || i >= len(e.Lines) {
		return ErrLineOutOfRange
	}
	if i == e.EditingIndex {
		e.CancelEdit()
	} else if e.EditingIndex > i {
		e.EditingIndex--
	}
	e.Lines = append(e.Lines[:i], e.Lines[i+1:]...)
	return nil
}

// Total recomputes the running total from the current sequence on
// every call; it is never cached.
func (e *LineItemEditor) Total() int64 {
	return ComputeTotal(e.Lines)
}

// ComputeTotal sums price x quantity over a line sequence. The result
// does not depend on line order.
func ComputeTotal(lines []ProductForm) int64 {
	var total int64
	for _, l := range lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}
