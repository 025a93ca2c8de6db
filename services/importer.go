// services/importer.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"aquacrm-backend/config"
	"aquacrm-backend/models"
	"aquacrm-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ImportResult is the terminal summary of a bulk import. Counts are a
// user-facing summary, not a transactional guarantee; a partially
// imported batch is an accepted steady state.
type ImportResult struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors,omitempty"`
}

// Importer pulls a batch of loosely-shaped invoices from the upstream
// e-commerce endpoint and upserts each record independently.
type Importer struct {
	client *http.Client
	store  InvoiceStore
	log    *logrus.Logger
}

func NewImporter(store InvoiceStore) *Importer {
	return &Importer{
		// An unbounded network wait is an availability risk.
		client: &http.Client{Timeout: 15 * time.Second},
		store:  store,
		log:    config.GetLogger(),
	}
}

type recordResult struct {
	invoiceNo string
	err       error
}

// Import fetches the full batch, then folds every record into a
// per-record result. Only the batch fetch itself can fail the
// operation; a malformed record is counted and skipped, never aborts
// the loop.
func (imp *Importer) Import(ctx context.Context, url string) (ImportResult, error) {
	var result ImportResult

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result, fmt.Errorf("build batch request: %w", err)
	}
	resp, err := imp.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("fetch batch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("fetch batch: unexpected status %d", resp.StatusCode)
	}

	var records []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return result, fmt.Errorf("decode batch: %w", err)
	}

	results := make([]recordResult, 0, len(records))
	for _, rec := range records {
		results = append(results, imp.importOne(rec))
	}

	for _, r := range results {
		if r.err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", r.invoiceNo, r.err))
			config.LogError(imp.log, "importer", "Import", "record skipped", r.invoiceNo, r.err)
			continue
		}
		result.SuccessCount++
	}

	imp.log.WithFields(logrus.Fields{
		"module":  "importer",
		"success": result.SuccessCount,
		"errors":  result.ErrorCount,
	}).Info("bulk import finished")

	return result, nil
}

func (imp *Importer) importOne(rec map[string]any) recordResult {
	inv := NormalizeInvoice(rec)
	// Records pulled from the e-commerce endpoint carry online provenance.
	inv.OnlineOrder = true

	if err := validateImported(inv); err != nil {
		return recordResult{invoiceNo: inv.InvoiceNo, err: err}
	}
	if err := imp.store.Upsert(inv); err != nil {
		return recordResult{invoiceNo: inv.InvoiceNo, err: err}
	}
	return recordResult{invoiceNo: inv.InvoiceNo}
}

func validateImported(inv models.Invoice) error {
	if inv.CustomerName == "" {
		return fmt.Errorf("missing customer name")
	}
	if !utils.ValidatePhone(inv.CustomerPhone) {
		return fmt.Errorf("missing or invalid customer phone")
	}
	return nil
}

// StartScheduler runs the nightly sync against the configured upstream
// endpoint.
func (imp *Importer) StartScheduler() {
	url := os.Getenv("UPSTREAM_INVOICE_URL")
	if url == "" {
		imp.log.Info("UPSTREAM_INVOICE_URL not set, nightly import sync disabled")
		return
	}

	c := cron.New()
	c.AddFunc("0 2 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := imp.Import(ctx, url); err != nil {
			config.LogError(imp.log, "importer", "StartScheduler", "nightly sync failed", url, err)
		}
	})
	c.Start()
	imp.log.Info("Import scheduler started")
}
