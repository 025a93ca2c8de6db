package models

import (
	"github.com/google/uuid"
)

// CatalogProduct is the sellable product master. The line-item editor
// autofills unit prices from it by exact name match.
type CatalogProduct struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name        string    `gorm:"not null;uniqueIndex" json:"name"`
	Description string    `json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Category    string    `gorm:"default:'General'" json:"category"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
}
