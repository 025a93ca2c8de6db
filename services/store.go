// services/store.go
package services

import (
	"errors"

	"aquacrm-backend/models"

	"gorm.io/gorm"
)

// InvoiceStore is the service of record for canonical invoices. The
// importer and controllers only see this boundary.
type InvoiceStore interface {
	List() ([]models.Invoice, error)
	Upsert(inv models.Invoice) error
}

// GormInvoiceStore backs the store with the shared database.
type GormInvoiceStore struct {
	db *gorm.DB
}

func NewGormInvoiceStore(db *gorm.DB) *GormInvoiceStore {
	return &GormInvoiceStore{db: db}
}

func (s *GormInvoiceStore) List() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("date ASC").
		Find(&invoices).Error
	return invoices, err
}

// Upsert matches on invoice number: update when found, create
// otherwise. Line items are replaced wholesale inside one transaction.
func (s *GormInvoiceStore) Upsert(inv models.Invoice) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Invoice
		err := tx.Where("invoice_no = ?", inv.InvoiceNo).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&inv).Error
		case err != nil:
			return err
		}

		if err := tx.Where("invoice_id = ?", existing.ID).
			Delete(&models.Product{}).Error; err != nil {
			return err
		}
		for i := range inv.Products {
			inv.Products[i].InvoiceID = existing.ID
			inv.Products[i].Position = i
		}

		// Copy the incoming record over the stored row, keeping its
		// identity and creation timestamp.
		id, createdAt := existing.ID, existing.CreatedAt
		existing = inv
		existing.ID = id
		existing.CreatedAt = createdAt
		return tx.Save(&existing).Error
	})
}
