// controllers/draft.go
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

// Drafts is the shared draft store, hydrated once at startup before
// any request can trigger a save.
var Drafts *services.DraftStore

// InitDrafts wires the draft store and runs the hydration pass.
func InitDrafts(store *services.DraftStore) error {
	if err := store.Load(); err != nil {
		return err
	}
	Drafts = store
	return nil
}

// DraftItemInput drives the line-item editor over the draft
type DraftItemInput struct {
	Action  string                `json:"action" binding:"required,oneof=stage select commit edit cancel remove"`
	Product *services.ProductForm `json:"product"`
	Name    string                `json:"name"`
	Index   *int                  `json:"index"`
}

func draftResponse() gin.H {
	state := Drafts.State()
	return gin.H{
		"draft": state,
		"total": services.ComputeTotal(state.FormData.Products),
	}
}

// GetDraft returns the current draft state and its recomputed total
func GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, draftResponse())
}

// SaveDraft replaces the draft's form data
func SaveDraft(c *gin.Context) {
	var form services.InvoiceForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := Drafts.SetForm(form); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save draft")
		return
	}

	c.JSON(http.StatusOK, draftResponse())
}

// ClearDraft resets the draft to the empty template and removes the
// stored copy
func ClearDraft(c *gin.Context) {
	if err := Drafts.Clear(); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to clear draft")
		return
	}

	c.JSON(http.StatusOK, draftResponse())
}

// DraftItemOp applies one line-item editor transition to the draft
func DraftItemOp(c *gin.Context) {
	var input DraftItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var err error
	switch input.Action {
	case "stage":
		if input.Product == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "product is required for stage")
			return
		}
		err = Drafts.Stage(*input.Product)
	case "select":
		if input.Name == "" {
			utils.RespondWithError(c, http.StatusBadRequest, "name is required for select")
			return
		}
		var catalog []models.CatalogProduct
		if dbErr := config.DB.Where("is_active = true").Find(&catalog).Error; dbErr != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load product catalog")
			return
		}
		err = Drafts.Select(input.Name, catalog)
	case "commit":
		err = Drafts.Commit()
	case "edit":
		if input.Index == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "index is required for edit")
			return
		}
		err = Drafts.Edit(*input.Index)
	case "cancel":
		err = Drafts.CancelEdit()
	case "remove":
		if input.Index == nil {
			utils.RespondWithError(c, http.StatusBadRequest, "index is required for remove")
			return
		}
		err = Drafts.Remove(*input.Index)
	}

	if err != nil {
		if errors.Is(err, services.ErrIncompleteLine) || errors.Is(err, services.ErrLineOutOfRange) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update draft")
		}
		return
	}

	c.JSON(http.StatusOK, draftResponse())
}
