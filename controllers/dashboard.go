// controllers/dashboard.go
package controllers

import (
	"net/http"
	"sync"

	"aquacrm-backend/config"
	"aquacrm-backend/models"
	"aquacrm-backend/services"
	"aquacrm-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalCustomers int                    `json:"totalCustomers"`
	TotalProducts  int                    `json:"totalProducts"`
	Stats          services.InvoiceStats  `json:"stats"`
	RecentInvoices []models.Invoice       `json:"recentInvoices"`
	UnpaidCount    int                    `json:"unpaidCount"`
}

// GetDashboardOverview assembles the console landing view. Invoices,
// catalog products and customers are independent reads and are fetched
// concurrently; the view is loaded only once all three complete.
func GetDashboardOverview(c *gin.Context) {
	var (
		wg        sync.WaitGroup
		invoices  []models.Invoice
		products  int64
		customers int64
		errs      [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		store := services.NewGormInvoiceStore(config.DB)
		invoices, errs[0] = store.List()
	}()
	go func() {
		defer wg.Done()
		errs[1] = config.DB.Model(&models.CatalogProduct{}).Count(&products).Error
	}()
	go func() {
		defer wg.Done()
		errs[2] = config.DB.Model(&models.Customer{}).Count(&customers).Error
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load dashboard")
			return
		}
	}

	unpaid := 0
	for _, inv := range invoices {
		if inv.PaymentStatus != "paid" {
			unpaid++
		}
	}

	recent := invoices
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	c.JSON(http.StatusOK, DashboardOverview{
		TotalCustomers: int(customers),
		TotalProducts:  int(products),
		Stats:          services.Aggregate(invoices),
		RecentInvoices: recent,
		UnpaidCount:    unpaid,
	})
}
