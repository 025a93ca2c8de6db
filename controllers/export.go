// controllers/export.go
package controllers

import (
	"errors"
	"net/http"

	"aquacrm-backend/config"
	"aquacrm-backend/models"
	"aquacrm-backend/services"
	"aquacrm-backend/utils"

	"github.com/gin-gonic/gin"
)

// loadFiltered resolves the filtered collection the same way the list
// endpoint does; every export reads this subset and never the full
// unfiltered set.
func loadFiltered(c *gin.Context) ([]models.Invoice, bool) {
	store := services.NewGormInvoiceStore(config.DB)
	invoices, err := store.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return nil, false
	}

	filter := services.InvoiceFilter{
		Month: c.DefaultQuery("month", "all"),
		Year:  c.DefaultQuery("year", "all"),
		Flag:  c.DefaultQuery("flag", "all"),
	}
	return services.FilterInvoices(invoices, filter), true
}

func respondExportError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrNoInvoices) {
		utils.RespondWithError(c, http.StatusNotFound, "No invoices to export")
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Export failed")
}

// ExportInvoicesCSV streams the general 16-column CSV
func ExportInvoicesCSV(c *gin.Context) {
	invoices, ok := loadFiltered(c)
	if !ok {
		return
	}
	data, err := services.ExportCSV(invoices)
	if err != nil {
		respondExportError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invoices.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportSalesCSV streams the 9-column accounting hand-off
func ExportSalesCSV(c *gin.Context) {
	invoices, ok := loadFiltered(c)
	if !ok {
		return
	}
	data, err := services.ExportSalesCSV(invoices)
	if err != nil {
		respondExportError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="sales_invoices.csv"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportInvoicesPDF streams the print-ready document
func ExportInvoicesPDF(c *gin.Context) {
	invoices, ok := loadFiltered(c)
	if !ok {
		return
	}
	data, err := services.ExportPDF(invoices)
	if err != nil {
		respondExportError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invoices.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExportInvoicesXLSX streams the workbook variant
func ExportInvoicesXLSX(c *gin.Context) {
	invoices, ok := loadFiltered(c)
	if !ok {
		return
	}
	data, err := services.ExportXLSX(invoices)
	if err != nil {
		respondExportError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="invoices.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
