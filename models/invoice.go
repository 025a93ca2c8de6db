package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is the canonical invoice record. Every downstream consumer
// (filters, exports, dashboard) reads this shape and nothing else.
type Invoice struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo string    `gorm:"uniqueIndex;not null" json:"invoiceNo"`
	Date      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date"`

	CustomerName    string `gorm:"not null" json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerAddress string `json:"customerAddress"`

	// Independent flags, not mutually exclusive.
	GST       bool `gorm:"default:false" json:"gst"`
	PO        bool `gorm:"default:false" json:"po"`
	Quotation bool `gorm:"default:false" json:"quotation"`

	// GST sub-record. Columns always exist; they are meaningful only
	// when the GST flag is set.
	GSTName    string `json:"gstName"`
	GSTNo      string `json:"gstNo"`
	GSTPhone   string `json:"gstPhone"`
	GSTEmail   string `json:"gstEmail"`
	GSTAddress string `json:"gstAddress"`

	Products []Product `gorm:"foreignKey:InvoiceID" json:"products"`

	DeliveredBy  string     `json:"deliveredBy"`
	DeliveryDate *time.Time `json:"deliveryDate"`

	PaymentStatus string `gorm:"type:varchar(20);default:'unpaid'" json:"paymentStatus"` // unpaid, partial, paid
	PaymentType   string `gorm:"type:varchar(30)" json:"paymentType"`                    // cash, card, upi, bank_transfer

	// Online provenance.
	Online      bool `gorm:"default:false" json:"online"`
	OnlineOrder bool `gorm:"default:false" json:"onlineOrder"`

	// Whole rupees, no paise.
	TotalAmount int64 `gorm:"not null" json:"totalAmount"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Product is one line item. It has no identity beyond its position in
// the invoice's line sequence.
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Position  int       `gorm:"not null" json:"-"`

	Name     string `gorm:"not null" json:"name"`
	Quantity int    `gorm:"default:1" json:"quantity"`
	Price    int64  `gorm:"not null" json:"price"`
	Serial   string `json:"serial,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
