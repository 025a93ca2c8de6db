// services/normalize.go
package services

import (
	"math"
	"strconv"
	"strings"
	"time"

	"aquacrm-backend/models"
	"aquacrm-backend/utils"

	"github.com/google/uuid"
)

// Candidate key lists, first-match-wins. Dotted keys descend into a
// nested object. The canonical JSON names come first so that
// normalizing an already-canonical record is a no-op.
var (
	invoiceNoKeys    = []string{"invoiceNo", "invoice_number", "invoice_no", "number", "bill_no"}
	invoiceDateKeys  = []string{"date", "invoice_date", "createdAt", "created_at", "CreatedAt"}
	customerNameKeys = []string{"customerName", "customer_name", "customer.name", "name"}
	customerPhoneKeys = []string{"customerPhone", "customer_phone", "customer.phone", "phone", "mobile"}
	customerEmailKeys = []string{"customerEmail", "customer_email", "customer.email", "email"}
	customerAddressKeys = []string{"customerAddress", "customer_address", "customer.address", "address"}

	gstFlagKeys       = []string{"gst", "is_gst", "gstBill"}
	poFlagKeys        = []string{"po", "is_po", "purchaseOrder"}
	quotationFlagKeys = []string{"quotation", "is_quotation"}

	gstNameKeys    = []string{"gstName", "gst_name", "gst_details.name", "gstDetails.name"}
	gstNoKeys      = []string{"gstNo", "gst_no", "gst_number", "gst_details.number", "gstDetails.number"}
	gstPhoneKeys   = []string{"gstPhone", "gst_phone", "gst_details.phone", "gstDetails.phone"}
	gstEmailKeys   = []string{"gstEmail", "gst_email", "gst_details.email", "gstDetails.email"}
	gstAddressKeys = []string{"gstAddress", "gst_address", "gst_details.address", "gstDetails.address"}

	deliveredByKeys  = []string{"deliveredBy", "delivered_by", "transport.deliveredBy", "transport.name", "delivery.by"}
	deliveryDateKeys = []string{"deliveryDate", "delivery_date", "transport.date", "delivery.date"}

	paymentStatusKeys = []string{"paymentStatus", "payment_status", "status"}
	paymentTypeKeys   = []string{"paymentType", "payment_type", "payment_mode", "mode"}

	onlineKeys      = []string{"online", "is_online", "online_invoice"}
	onlineOrderKeys = []string{"onlineOrder", "online_order", "from_ecommerce"}

	totalKeys = []string{"totalAmount", "total_amount", "total"}

	productArrayKeys = []string{"products", "items", "invoice_items", "invoiceItems", "order_items", "orderItems"}

	lineNameKeys     = []string{"name", "productName", "product_name", "title", "item_name", "description"}
	lineQuantityKeys = []string{"quantity", "productQuantity", "qty", "count"}
	linePriceKeys    = []string{"price", "productPrice", "unit_price", "unitPrice", "rate", "selling_price", "sale_price", "mrp"}
	lineSerialKeys   = []string{"serial", "productSerialNo", "serial_no", "serialNo"}
)

// NormalizeInvoice maps an arbitrarily-shaped record from the CRM
// endpoint or ad-hoc upstream JSON into one canonical invoice. Every
// missing candidate resolves to a documented default; the function has
// no error channel.
func NormalizeInvoice(rec map[string]any) models.Invoice {
	inv := models.Invoice{
		ID:              resolveID(rec),
		InvoiceNo:       firstString(rec, invoiceNoKeys, ""),
		Date:            firstTime(rec, invoiceDateKeys, time.Now()),
		CustomerName:    firstString(rec, customerNameKeys, ""),
		CustomerPhone:   firstString(rec, customerPhoneKeys, ""),
		CustomerEmail:   firstString(rec, customerEmailKeys, ""),
		CustomerAddress: firstString(rec, customerAddressKeys, ""),
		GST:             firstBool(rec, gstFlagKeys),
		PO:              firstBool(rec, poFlagKeys),
		Quotation:       firstBool(rec, quotationFlagKeys),
		GSTName:         firstString(rec, gstNameKeys, ""),
		GSTNo:           firstString(rec, gstNoKeys, ""),
		GSTPhone:        firstString(rec, gstPhoneKeys, ""),
		GSTEmail:        firstString(rec, gstEmailKeys, ""),
		GSTAddress:      firstString(rec, gstAddressKeys, ""),
		DeliveredBy:     firstString(rec, deliveredByKeys, ""),
		DeliveryDate:    firstTimePtr(rec, deliveryDateKeys),
		PaymentStatus:   firstString(rec, paymentStatusKeys, "unpaid"),
		PaymentType:     firstString(rec, paymentTypeKeys, ""),
		Online:          firstBool(rec, onlineKeys),
		OnlineOrder:     firstBool(rec, onlineOrderKeys),
	}
	if inv.InvoiceNo == "" {
		// Display key only, never a persistence identity.
		inv.InvoiceNo = "inv-" + utils.GenerateRandomString(8)
	}
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = "unpaid"
	}

	inv.Products = normalizeLines(firstArray(rec, productArrayKeys))
	inv.TotalAmount = resolveTotal(rec, inv.Products)
	return inv
}

// resolveTotal applies the total precedence rule: the computed line
// sum wins whenever line items are present and the sum is positive;
// an upstream-supplied positive total is used only otherwise.
func resolveTotal(rec map[string]any, lines []models.Product) int64 {
	computed := lineSum(lines)
	if len(lines) > 0 && computed > 0 {
		return computed
	}
	if upstream, ok := firstNumber(rec, totalKeys); ok && upstream > 0 {
		return int64(upstream)
	}
	return computed
}

func lineSum(lines []models.Product) int64 {
	var total int64
	for _, l := range lines {
		total += l.Price * int64(l.Quantity)
	}
	return total
}

func normalizeLines(raw []any) []models.Product {
	lines := make([]models.Product, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, normalizeLine(m, len(lines)))
	}
	return lines
}

func normalizeLine(m map[string]any, position int) models.Product {
	line := models.Product{
		Position: position,
		Name:     firstString(m, lineNameKeys, ""),
		Quantity: 1,
		Serial:   firstString(m, lineSerialKeys, ""),
	}
	if q, ok := firstNumber(m, lineQuantityKeys); ok && q >= 1 {
		line.Quantity = int(q)
	}
	line.Price = resolveLinePrice(m, line.Quantity)
	return line
}

// resolveLinePrice takes the first candidate normalizing to a number
// above zero; failing that it backs the unit price out of a line total
// when one exists.
func resolveLinePrice(m map[string]any, quantity int) int64 {
	for _, key := range linePriceKeys {
		if v, ok := numberAt(m, key); ok && v > 0 {
			return int64(v)
		}
	}
	if quantity >= 1 {
		for _, key := range []string{"total", "total_price"} {
			if v, ok := numberAt(m, key); ok && v > 0 {
				return int64(v) / int64(quantity)
			}
		}
	}
	return 0
}

func resolveID(rec map[string]any) uuid.UUID {
	if s, ok := stringAt(rec, "id"); ok {
		if id, err := uuid.Parse(s); err == nil {
			return id
		}
	}
	return uuid.New()
}

// lookup resolves a candidate key; a dot descends one nested object.
func lookup(rec map[string]any, key string) (any, bool) {
	if head, tail, found := strings.Cut(key, "."); found {
		nested, ok := rec[head].(map[string]any)
		if !ok {
			return nil, false
		}
		return lookup(nested, tail)
	}
	v, ok := rec[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func stringAt(rec map[string]any, key string) (string, bool) {
	v, ok := lookup(rec, key)
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return "", false
		}
		return trimmed, true
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return "", false
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	}
	return "", false
}

func firstString(rec map[string]any, keys []string, def string) string {
	for _, key := range keys {
		if s, ok := stringAt(rec, key); ok {
			return s
		}
	}
	return def
}

func numberAt(rec map[string]any, key string) (float64, bool) {
	v, ok := lookup(rec, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

func firstNumber(rec map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		if n, ok := numberAt(rec, key); ok {
			return n, true
		}
	}
	return 0, false
}

func firstBool(rec map[string]any, keys []string) bool {
	for _, key := range keys {
		v, ok := lookup(rec, key)
		if !ok {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b
		case string:
			return strings.EqualFold(b, "true") || b == "1" || strings.EqualFold(b, "yes")
		case float64:
			return b != 0
		}
	}
	return false
}

func firstArray(rec map[string]any, keys []string) []any {
	for _, key := range keys {
		if arr, ok := lookup(rec, key); ok {
			if a, isArr := arr.([]any); isArr {
				return a
			}
		}
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
}

func timeAt(rec map[string]any, key string) (time.Time, bool) {
	s, ok := stringAt(rec, key)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func firstTime(rec map[string]any, keys []string, def time.Time) time.Time {
	for _, key := range keys {
		if t, ok := timeAt(rec, key); ok {
			return t
		}
	}
	return def
}

func firstTimePtr(rec map[string]any, keys []string) *time.Time {
	for _, key := range keys {
		if t, ok := timeAt(rec, key); ok {
			return &t
		}
	}
	return nil
}
