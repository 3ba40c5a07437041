package session

import (
	"time"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/receipt"
	"github.com/sangkips/salay-pos/pkg/money"
)

// History texts.
const (
	HistoryEmpty      = "No transactions yet for this day."
	HistoryLoadFailed = "Could not load history."
	PaidInFull        = "Paid in full"
	ChipPaid          = "Paid"
	ChipWithBalance   = "With balance"
)

const historyTimeLayout = "03:04 PM"

// HistoryView is the rendered listing of one day.
type HistoryView struct {
	Date       string
	DailyTotal string
	DailyPaid  string
	Rows       []HistoryRow
	// Message replaces the rows when there are none or loading failed.
	Message string
	Failed  bool
}

// HistoryRow is one saved transaction in the listing.
type HistoryRow struct {
	ID        uint
	ReceiptNo string
	Customer  string
	Time      string
	Total     string
	Balance   string // "Paid in full" or "Balance ₱x"
	Chip      string
	Paid      bool
}

// ProjectHistory turns a day listing into display rows.
func ProjectHistory(listing *entity.DayListing, loc *time.Location) HistoryView {
	if loc == nil {
		loc = time.Local
	}
	view := HistoryView{
		Date:       listing.Date,
		DailyTotal: money.Peso(listing.DailyTotal),
		DailyPaid:  money.Peso(listing.DailyPaid),
	}
	if len(listing.Transactions) == 0 {
		view.Message = HistoryEmpty
		return view
	}

	view.Rows = make([]HistoryRow, 0, len(listing.Transactions))
	for i := range listing.Transactions {
		view.Rows = append(view.Rows, projectRow(&listing.Transactions[i], loc))
	}
	return view
}

func projectRow(t *entity.Transaction, loc *time.Location) HistoryRow {
	row := HistoryRow{
		ID:        t.ID,
		ReceiptNo: receipt.Number(t.ID),
		Customer:  t.CustomerName,
		Time:      t.CreatedAt.In(loc).Format(historyTimeLayout),
		Total:     money.Peso(t.TotalAmount),
		Paid:      t.IsPaid(),
	}
	if row.Paid {
		row.Balance = PaidInFull
		row.Chip = ChipPaid
	} else {
		row.Balance = "Balance " + money.Peso(t.Balance)
		row.Chip = ChipWithBalance
	}
	return row
}

// FailedHistory is the view shown when the listing could not be fetched.
func FailedHistory(date string) HistoryView {
	return HistoryView{Date: date, Message: HistoryLoadFailed, Failed: true}
}
