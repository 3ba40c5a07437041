package request

import (
	"github.com/sangkips/salay-pos/internal/application/service"
	"github.com/sangkips/salay-pos/internal/domain/draft"
	"github.com/sangkips/salay-pos/pkg/money"
)

// CreateTransactionRequest is the body of POST /api/transactions. Numbers
// may arrive as JSON numbers or strings; missing ones count as zero.
type CreateTransactionRequest struct {
	CustomerName string                   `json:"customer_name"`
	Contact      string                   `json:"contact"`
	Description  string                   `json:"description"`
	Items        []TransactionItemRequest `json:"items"`
	AmountPaid   money.Input              `json:"amount_paid"`
}

// TransactionItemRequest is one submitted line item.
type TransactionItemRequest struct {
	ItemDescription string      `json:"item_description"`
	Quantity        money.Input `json:"quantity"`
	UnitPrice       money.Input `json:"unit_price"`
}

// ToInput converts the request into the service input.
func (r *CreateTransactionRequest) ToInput() *service.CreateTransactionInput {
	items := make([]draft.LineItem, len(r.Items))
	for i, it := range r.Items {
		items[i] = draft.LineItem{
			Description: it.ItemDescription,
			Quantity:    string(it.Quantity),
			UnitPrice:   string(it.UnitPrice),
		}
	}
	return &service.CreateTransactionInput{
		CustomerName: r.CustomerName,
		Contact:      r.Contact,
		Description:  r.Description,
		Items:        items,
		AmountPaid:   string(r.AmountPaid),
	}
}

// EmailReceiptRequest optionally overrides the recipient of an e-receipt.
type EmailReceiptRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}
