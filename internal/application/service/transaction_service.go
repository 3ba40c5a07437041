package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/domain/draft"
	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/domain/repository"
	"github.com/sangkips/salay-pos/pkg/apperror"
	"github.com/sangkips/salay-pos/pkg/money"
)

// Messages returned to the entry form when a create is rejected.
const (
	MsgCustomerRequired    = "Customer name is required."
	MsgDescriptionRequired = "Overall job description is required."
	MsgItemsRequired       = "At least one line item is required."
	MsgItemsInvalid        = "All line items are empty or invalid."
	MsgQuantityPlaces      = "Quantity allows at most 3 decimal places."
	MsgQuantityTooLarge    = "Quantity is too large."
	MsgPricePlaces         = "Unit price allows at most 2 decimal places."
	MsgAmountPaidPlaces    = "Amount paid allows at most 2 decimal places."
	MsgTotalTooLarge       = "Transaction total is too large."
	MsgSaveFailed          = "Failed to save transaction."
	MsgLoadFailed          = "Failed to load transactions."
	MsgTransactionNotFound = "Transaction not found."
)

// TransactionService records jobs and lists them by business day.
type TransactionService struct {
	repo         repository.TransactionRepository
	loc          *time.Location
	historyLimit int
	now          func() time.Time
	log          *zap.Logger
}

// NewTransactionService creates a new transaction service. Business days are
// counted in loc.
func NewTransactionService(
	repo repository.TransactionRepository,
	loc *time.Location,
	historyLimit int,
	log *zap.Logger,
) *TransactionService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TransactionService{
		repo:         repo,
		loc:          loc,
		historyLimit: historyLimit,
		now:          time.Now,
		log:          log,
	}
}

// WithClock replaces the wall clock, for tests.
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

// CreateTransactionInput is a submitted job as typed into the form.
type CreateTransactionInput struct {
	CustomerName string
	Contact      string
	Description  string
	Items        []draft.LineItem
	AmountPaid   string
}

// CreateTransaction validates and stores a job with its included lines.
// Totals and balance are always recomputed here; client figures are ignored.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, fieldError("customer_name", MsgCustomerRequired)
	}
	desc := strings.TrimSpace(input.Description)
	if desc == "" {
		return nil, fieldError("description", MsgDescriptionRequired)
	}
	if len(input.Items) == 0 {
		return nil, fieldError("items", MsgItemsRequired)
	}

	lines := make([]draft.Line, len(input.Items))
	for i, it := range input.Items {
		lines[i] = it.Parse()
	}
	included := draft.IncludedLines(lines)
	if len(included) == 0 {
		return nil, fieldError("items", MsgItemsInvalid)
	}

	for _, l := range included {
		if err := checkStorable(l); err != nil {
			return nil, err
		}
	}

	paid := money.Parse(input.AmountPaid)
	if !money.HasPlaces(paid, money.AmountPlaces) {
		return nil, fieldError("amount_paid", MsgAmountPaidPlaces)
	}

	totals := draft.ComputeTotals(included, paid)
	if totals.TotalAmount.GreaterThan(money.MaxAmount) {
		return nil, fieldError("items", MsgTotalTooLarge)
	}
	now := s.now()

	txn := &entity.Transaction{
		CustomerName:    name,
		Contact:         strings.TrimSpace(input.Contact),
		Description:     desc,
		TotalAmount:     totals.TotalAmount,
		AmountPaid:      totals.AmountPaid,
		Balance:         totals.Balance,
		CreatedAt:       now.UTC(),
		TransactionDate: now.In(s.loc).Format(entity.DateLayout),
		Items:           make([]entity.LineItem, 0, len(included)),
	}
	for _, l := range included {
		txn.Items = append(txn.Items, entity.LineItem{
			ItemDescription: l.Description,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			LineTotal:       draft.ComputeLineTotal(l),
		})
	}

	if err := s.repo.Create(ctx, txn); err != nil {
		s.log.Error("save transaction failed",
			zap.String("customer_name", name),
			zap.Error(err),
		)
		return nil, apperror.NewInternalError(MsgSaveFailed, err)
	}

	s.log.Info("transaction saved",
		zap.Uint("id", txn.ID),
		zap.String("total", txn.TotalAmount.String()),
		zap.String("balance", txn.Balance.String()),
		zap.Int("items", len(txn.Items)),
	)
	return txn, nil
}

// ListTransactions returns the newest transactions, filtered to date when it
// is a valid YYYY-MM-DD, along with the totals of that day. Without a valid
// date the listing spans every day and the totals are today's.
func (s *TransactionService) ListTransactions(ctx context.Context, date, search string) (*entity.DayListing, error) {
	filterDate := ""
	if _, err := time.Parse(entity.DateLayout, strings.TrimSpace(date)); err == nil {
		filterDate = strings.TrimSpace(date)
	}
	summaryDate := filterDate
	if summaryDate == "" {
		summaryDate = s.Today()
	}

	txns, err := s.repo.List(ctx, &repository.TransactionFilterParams{
		Date:   filterDate,
		Search: strings.TrimSpace(search),
		Limit:  s.historyLimit,
	})
	if err != nil {
		return nil, apperror.NewInternalError(MsgLoadFailed, err)
	}

	summary, err := s.repo.DailySummary(ctx, summaryDate)
	if err != nil {
		return nil, apperror.NewInternalError(MsgLoadFailed, err)
	}

	if txns == nil {
		txns = []entity.Transaction{}
	}
	return &entity.DayListing{
		Date:         summaryDate,
		DailyTotal:   summary.Total,
		DailyPaid:    summary.Paid,
		Transactions: txns,
	}, nil
}

// GetTransaction returns one transaction with its items.
func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*entity.Transaction, error) {
	txn, err := s.repo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.NewInternalError(MsgLoadFailed, err)
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError(MsgTransactionNotFound)
	}
	return txn, nil
}

// Today is the current business date.
func (s *TransactionService) Today() string {
	return s.now().In(s.loc).Format(entity.DateLayout)
}

// Location is the shop time zone.
func (s *TransactionService) Location() *time.Location {
	return s.loc
}

// checkStorable rejects a line the store would have to round or could not
// hold, rather than saving different figures than the clerk typed.
func checkStorable(l draft.Line) error {
	switch {
	case l.Quantity.GreaterThan(money.MaxQuantity):
		return fieldError("items", MsgQuantityTooLarge)
	case !money.HasPlaces(l.Quantity, money.QuantityPlaces):
		return fieldError("items", MsgQuantityPlaces)
	case !money.HasPlaces(l.UnitPrice, money.AmountPlaces):
		return fieldError("items", MsgPricePlaces)
	}
	return nil
}

func fieldError(field, message string) *apperror.AppError {
	return apperror.NewValidationError(message, []apperror.FieldError{
		{Field: field, Message: message},
	})
}
