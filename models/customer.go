package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index" json:"createdByUserId"`

	Name        string `gorm:"not null" json:"name"`
	Phone       string `gorm:"not null;uniqueIndex" json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
	TotalOrders int    `gorm:"default:0" json:"totalOrders"`
	TotalSpent  int64  `gorm:"default:0" json:"totalSpent"`
	LastOrder   *time.Time `json:"lastOrder"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	gorm.Model
}
