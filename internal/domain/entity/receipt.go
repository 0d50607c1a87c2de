package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the business header printed at the top of a receipt.
type ReceiptHeader struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address,omitempty"`
	Phone        string `json:"phone,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}

// Receipt is a value object representing a printable receipt. It is NOT a
// database entity; it is composed from a finalized transaction and the
// business settings snapshot at render time.
type Receipt struct {
	Header    ReceiptHeader `json:"header"`
	InvoiceNo string        `json:"invoice_no"`
	Date      string        `json:"date"`
	BilledTo  string        `json:"billed_to"`
	Cashier   string        `json:"cashier,omitempty"`

	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	TaxLabel string          `json:"tax_label"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Paid     decimal.Decimal `json:"paid"`
	Balance  decimal.Decimal `json:"balance"`

	Currency string `json:"currency"`
	Footer   string `json:"footer,omitempty"`
}
