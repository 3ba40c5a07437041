package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sangkips/salay-pos/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	// Create stores a transaction together with its items
	Create(ctx context.Context, txn *entity.Transaction) error
	// GetWithItems returns nil, nil when no transaction has the id
	GetWithItems(ctx context.Context, id uint) (*entity.Transaction, error)
	// List returns transactions newest first
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, error)
	// DailySummary sums totals and payments for one transaction date
	DailySummary(ctx context.Context, date string) (*DailySummary, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Date   string // YYYY-MM-DD; empty means every day
	Search string // case-insensitive match on customer name
	Limit  int
}

// DailySummary is the money collected and billed on one day
type DailySummary struct {
	Date  string
	Count int64
	Total decimal.Decimal
	Paid  decimal.Decimal
}
