package entity

import "github.com/shopspring/decimal"

// Receipt status labels.
const (
	ReceiptStatusPaid        = "PAID"
	ReceiptStatusWithBalance = "WITH BALANCE"
)

// ReceiptHeader holds the shop details printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Tagline  string `json:"tagline,omitempty"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Footer   string `json:"footer,omitempty"`
}

// ReceiptItem represents a single numbered line on a receipt.
type ReceiptItem struct {
	No          int             `json:"no"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Receipt is a value object representing a printable e-receipt.
// It is composed from a saved transaction at render time and never stored.
type Receipt struct {
	Header      ReceiptHeader   `json:"header"`
	ReceiptNo   string          `json:"receipt_no"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Customer    string          `json:"customer"`
	Contact     string          `json:"contact,omitempty"`
	Description string          `json:"description"`
	Items       []ReceiptItem   `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
	Status      string          `json:"status"`
}

// IsPaid reports whether the receipt shows the job as settled.
func (r *Receipt) IsPaid() bool {
	return r.Status == ReceiptStatusPaid
}
