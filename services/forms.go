// services/forms.go
package services

// ProductForm is the staging slot: the single product line being
// composed or edited, distinct from the committed line sequence.
type ProductForm struct {
	Name     string `json:"productName"`
	Quantity int    `json:"productQuantity"`
	Price    int64  `json:"productPrice"`
	Serial   string `json:"productSerialNo,omitempty"`
}

// InvoiceForm mirrors the canonical invoice minus identifier and
// timestamps, plus the product sequence under active edit. Dates stay
// as typed strings until submit.
type InvoiceForm struct {
	InvoiceNo       string        `json:"invoiceNo"`
	Date            string        `json:"date"`
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	CustomerEmail   string        `json:"customerEmail"`
	CustomerAddress string        `json:"customerAddress"`
	GST             bool          `json:"gst"`
	PO              bool          `json:"po"`
	Quotation       bool          `json:"quotation"`
	GSTName         string        `json:"gstName"`
	GSTNo           string        `json:"gstNo"`
	GSTPhone        string        `json:"gstPhone"`
	GSTEmail        string        `json:"gstEmail"`
	GSTAddress      string        `json:"gstAddress"`
	Products        []ProductForm `json:"products"`
	DeliveredBy     string        `json:"deliveredBy"`
	DeliveryDate    string        `json:"deliveryDate"`
	PaymentStatus   string        `json:"paymentStatus"`
	PaymentType     string        `json:"paymentType"`
	Online          bool          `json:"online"`
	OnlineOrder     bool          `json:"onlineOrder"`
}

// DefaultInvoiceForm returns the empty template a fresh draft starts
// from and a cleared draft resets to.
func DefaultInvoiceForm() InvoiceForm {
	return InvoiceForm{
		Products:      []ProductForm{},
		PaymentStatus: "unpaid",
	}
}
