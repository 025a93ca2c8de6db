// controllers/invoice.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"aquacrm-backend/config"
	"aquacrm-backend/models"
	"aquacrm-backend/services"
	"aquacrm-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductInput defines the structure for one invoice line item
type ProductInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=1"`
	Price    int64  `json:"price" binding:"min=0"`
	Serial   string `json:"serial"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	InvoiceNo       string         `json:"invoiceNo"`
	Date            *time.Time     `json:"date"`
	CustomerName    string         `json:"customerName" binding:"required"`
	CustomerPhone   string         `json:"customerPhone"`
	CustomerEmail   string         `json:"customerEmail"`
	CustomerAddress string         `json:"customerAddress"`
	GST             bool           `json:"gst"`
	PO              bool           `json:"po"`
	Quotation       bool           `json:"quotation"`
	GSTName         string         `json:"gstName"`
	GSTNo           string         `json:"gstNo"`
	GSTPhone        string         `json:"gstPhone"`
	GSTEmail        string         `json:"gstEmail"`
	GSTAddress      string         `json:"gstAddress"`
	Products        []ProductInput `json:"products" binding:"required,min=1"`
	DeliveredBy     string         `json:"deliveredBy"`
	DeliveryDate    *time.Time     `json:"deliveryDate"`
	PaymentStatus   string         `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid partial"`
	PaymentType     string         `json:"paymentType"`
	Online          bool           `json:"online"`
	OnlineOrder     bool           `json:"onlineOrder"`
}

// UpdateInvoiceInput defines the expected JSON structure for updating an invoice
type UpdateInvoiceInput struct {
	Date            *time.Time      `json:"date"`
	CustomerName    *string         `json:"customerName"`
	CustomerPhone   *string         `json:"customerPhone"`
	CustomerEmail   *string         `json:"customerEmail"`
	CustomerAddress *string         `json:"customerAddress"`
	GST             *bool           `json:"gst"`
	PO              *bool           `json:"po"`
	Quotation       *bool           `json:"quotation"`
	GSTName         *string         `json:"gstName"`
	GSTNo           *string         `json:"gstNo"`
	GSTPhone        *string         `json:"gstPhone"`
	GSTEmail        *string         `json:"gstEmail"`
	GSTAddress      *string         `json:"gstAddress"`
	Products        *[]ProductInput `json:"products"`
	DeliveredBy     *string         `json:"deliveredBy"`
	DeliveryDate    *time.Time      `json:"deliveryDate"`
	PaymentStatus   *string         `json:"paymentStatus" binding:"omitempty,oneof=paid unpaid partial"`
	PaymentType     *string         `json:"paymentType"`
}

func buildProducts(inputs []ProductInput) ([]models.Product, int64) {
	var total int64
	products := make([]models.Product, 0, len(inputs))
	for i, item := range inputs {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		products = append(products, models.Product{
			ID:       uuid.New(),
			Position: i,
			Name:     item.Name,
			Quantity: quantity,
			Price:    item.Price,
			Serial:   item.Serial,
		})
		total += item.Price * int64(quantity)
	}
	return products, total
}

// CreateInvoice creates a new invoice. The total is always the sum of
// price x quantity over the lines; internally-originated records never
// carry a diverging total.
func CreateInvoice(c *gin.Context) {
	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	products, total := buildProducts(input.Products)

	invoiceDate := time.Now()
	if input.Date != nil {
		invoiceDate = *input.Date
	}

	paymentStatus := input.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "unpaid"
	}

	invoice := models.Invoice{
		ID:              uuid.New(),
		InvoiceNo:       input.InvoiceNo,
		Date:            invoiceDate,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		CustomerAddress: input.CustomerAddress,
		GST:             input.GST,
		PO:              input.PO,
		Quotation:       input.Quotation,
		GSTName:         input.GSTName,
		GSTNo:           input.GSTNo,
		GSTPhone:        input.GSTPhone,
		GSTEmail:        input.GSTEmail,
		GSTAddress:      input.GSTAddress,
		Products:        products,
		DeliveredBy:     input.DeliveredBy,
		DeliveryDate:    input.DeliveryDate,
		PaymentStatus:   paymentStatus,
		PaymentType:     input.PaymentType,
		Online:          input.Online,
		OnlineOrder:     input.OnlineOrder,
		TotalAmount:     total,
	}

	if invoice.InvoiceNo == "" {
		invoice.InvoiceNo = "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	// Update customer stats when the customer is on file
	if invoice.CustomerPhone != "" {
		if err := tx.Model(&models.Customer{}).Where("phone = ?", invoice.CustomerPhone).
			Updates(map[string]interface{}{
				"total_orders": gorm.Expr("total_orders + ?", 1),
				"total_spent":  gorm.Expr("total_spent + ?", total),
				"last_order":   invoiceDate,
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
	}

	tx.Commit()

	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves the filtered invoice collection together with
// its rolled-up statistics. Filters: month (1..12|all), year, flag
// (all|gst|po).
func GetInvoices(c *gin.Context) {
	store := services.NewGormInvoiceStore(config.DB)
	invoices, err := store.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	filter := services.InvoiceFilter{
		Month: c.DefaultQuery("month", "all"),
		Year:  c.DefaultQuery("year", "all"),
		Flag:  c.DefaultQuery("flag", "all"),
	}
	filtered := services.FilterInvoices(invoices, filter)

	c.JSON(http.StatusOK, gin.H{
		"invoices": filtered,
		"stats":    services.Aggregate(filtered),
	})
}

// GetInvoice retrieves a specific invoice by ID
func GetInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var invoice models.Invoice
	if err := config.DB.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice updates an existing invoice
func UpdateInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	var input UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.Preload("Products").First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Date != nil {
		invoice.Date = *input.Date
	}
	if input.CustomerName != nil {
		invoice.CustomerName = *input.CustomerName
	}
	if input.CustomerPhone != nil {
		invoice.CustomerPhone = *input.CustomerPhone
	}
	if input.CustomerEmail != nil {
		invoice.CustomerEmail = *input.CustomerEmail
	}
	if input.CustomerAddress != nil {
		invoice.CustomerAddress = *input.CustomerAddress
	}
	if input.GST != nil {
		invoice.GST = *input.GST
	}
	if input.PO != nil {
		invoice.PO = *input.PO
	}
	if input.Quotation != nil {
		invoice.Quotation = *input.Quotation
	}
	if input.GSTName != nil {
		invoice.GSTName = *input.GSTName
	}
	if input.GSTNo != nil {
		invoice.GSTNo = *input.GSTNo
	}
	if input.GSTPhone != nil {
		invoice.GSTPhone = *input.GSTPhone
	}
	if input.GSTEmail != nil {
		invoice.GSTEmail = *input.GSTEmail
	}
	if input.GSTAddress != nil {
		invoice.GSTAddress = *input.GSTAddress
	}
	if input.DeliveredBy != nil {
		invoice.DeliveredBy = *input.DeliveredBy
	}
	if input.DeliveryDate != nil {
		invoice.DeliveryDate = input.DeliveryDate
	}
	if input.PaymentStatus != nil {
		invoice.PaymentStatus = *input.PaymentStatus
	}
	if input.PaymentType != nil {
		invoice.PaymentType = *input.PaymentType
	}

	// If lines are being replaced, the total is recomputed from them
	if input.Products != nil {
		if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.Product{}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear existing items")
			return
		}

		products, total := buildProducts(*input.Products)
		for i := range products {
			products[i].InvoiceID = invoice.ID
		}
		invoice.Products = products
		invoice.TotalAmount = total
	}

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice soft deletes an invoice and its lines
func DeleteInvoice(c *gin.Context) {
	invoiceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid invoice ID format")
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var invoice models.Invoice
	if err := tx.First(&invoice, "id = ?", invoiceUUID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.Product{}).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice items")
		return
	}

	if err := tx.Delete(&invoice).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}

	tx.Commit()

	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}

// UpsertInvoice accepts a loosely-shaped record, normalizes it into
// the canonical shape and creates or updates by invoice number.
func UpsertInvoice(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoice := services.NormalizeInvoice(payload)

	store := services.NewGormInvoiceStore(config.DB)
	if err := store.Upsert(invoice); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to upsert invoice")
		return
	}

	c.JSON(http.StatusOK, invoice)
}
