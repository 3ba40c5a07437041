package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/salay-pos/internal/domain/draft"
	"github.com/sangkips/salay-pos/pkg/money"
)

// DateLayout is the format of TransactionDate and of the history date filter.
const DateLayout = "2006-01-02"

// Transaction is a saved job: customer, description, itemized lines and
// the money state at the time it was recorded.
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CustomerName    string          `gorm:"size:255;not null;index" json:"customer_name"`
	Contact         string          `gorm:"size:255" json:"contact"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(15,5);not null;default:0" json:"total_amount"`
	AmountPaid      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount_paid"`
	Balance         decimal.Decimal `gorm:"type:numeric(16,5);not null;default:0" json:"balance"`
	CreatedAt       time.Time       `gorm:"not null;index" json:"created_at"`
	TransactionDate string          `gorm:"size:10;not null;index" json:"transaction_date"`

	Items []LineItem `gorm:"foreignKey:TransactionID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// IsPaid reports whether nothing is owed.
func (t *Transaction) IsPaid() bool {
	return money.IsSettled(t.Balance)
}

// Lines converts the stored items back into draft lines.
func (t *Transaction) Lines() []draft.Line {
	lines := make([]draft.Line, len(t.Items))
	for i, it := range t.Items {
		lines[i] = draft.Line{
			Description: it.ItemDescription,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
	}
	return lines
}

// Totals recomputes the money state from the stored items.
func (t *Transaction) Totals() draft.Totals {
	return draft.ComputeTotals(t.Lines(), t.AmountPaid)
}

// LineItem is one stored row of a transaction.
type LineItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	TransactionID   uint            `gorm:"not null;index" json:"-"`
	ItemDescription string          `gorm:"size:255;not null" json:"item_description"`
	Quantity        decimal.Decimal `gorm:"type:numeric(12,3);not null" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	LineTotal       decimal.Decimal `gorm:"type:numeric(15,5);not null" json:"line_total"`
}

// TableName returns the table name for the LineItem model
func (LineItem) TableName() string {
	return "transaction_items"
}

// DayListing is the history view of one business day.
type DayListing struct {
	Date         string          `json:"date"`
	DailyTotal   decimal.Decimal `json:"daily_total"`
	DailyPaid    decimal.Decimal `json:"daily_paid"`
	Transactions []Transaction   `json:"transactions"`
}
