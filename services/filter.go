// services/filter.go
package services

import (
	"strconv"

	"aquacrm-backend/models"
)

// InvoiceFilter selects the displayed subset. Month is 1..12 or "all",
// Year a calendar year or "all", Flag one of all|gst|po. Empty or
// unparsable values pass everything.
type InvoiceFilter struct {
	Month string
	Year  string
	Flag  string
}

// FilterInvoices derives the filtered subset as a conjunction of the
// three matches, preserving input order.
func FilterInvoices(list []models.Invoice, f InvoiceFilter) []models.Invoice {
	month, filterMonth := parseFilterInt(f.Month)
	year, filterYear := parseFilterInt(f.Year)

	out := make([]models.Invoice, 0, len(list))
	for _, inv := range list {
		if filterMonth && int(inv.Date.Month()) != month {
			continue
		}
		if filterYear && inv.Date.Year() != year {
			continue
		}
		switch f.Flag {
		case "gst":
			if !inv.GST {
				continue
			}
		case "po":
			if !inv.PO {
				continue
			}
		}
		out = append(out, inv)
	}
	return out
}

func parseFilterInt(s string) (int, bool) {
	if s == "" || s == "all" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// InvoiceStats are the rolled-up figures over a filtered subset.
type InvoiceStats struct {
	TotalValue  int64   `json:"totalValue"`
	Count       int     `json:"count"`
	AverageSale float64 `json:"averageSale"`
}

// Aggregate computes total value, count, and average sale. The average
// is zero for an empty subset.
func Aggregate(list []models.Invoice) InvoiceStats {
	stats := InvoiceStats{Count: len(list)}
	for _, inv := range list {
		stats.TotalValue += inv.TotalAmount
	}
	if stats.Count > 0 {
		stats.AverageSale = float64(stats.TotalValue) / float64(stats.Count)
	}
	return stats
}
