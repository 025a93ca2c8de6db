// controllers/import.go
package controllers

import (
	"net/http"
	"os"

	"aquacrm-backend/config"
	"aquacrm-backend/services"
	"aquacrm-backend/utils"

	"github.com/gin-gonic/gin"
)

// ImportInput optionally overrides the configured upstream endpoint
type ImportInput struct {
	URL string `json:"url"`
}

// ImportInvoices pulls the upstream batch, upserts each record
// independently and responds with the terminal summary plus the
// refreshed invoice collection.
func ImportInvoices(c *gin.Context) {
	var input ImportInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
	}

	url := input.URL
	if url == "" {
		url = os.Getenv("UPSTREAM_INVOICE_URL")
	}
	if url == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "No upstream endpoint configured")
		return
	}

	store := services.NewGormInvoiceStore(config.DB)
	importer := services.NewImporter(store)

	result, err := importer.Import(c.Request.Context(), url)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Import failed: "+err.Error())
		return
	}

	// Refresh the collection from the service of record
	invoices, err := store.List()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to refresh invoices")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":   result,
		"invoices": invoices,
	})
}
