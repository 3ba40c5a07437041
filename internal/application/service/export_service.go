package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/domain/repository"
	"github.com/sangkips/salay-pos/internal/receipt"
	"github.com/sangkips/salay-pos/pkg/apperror"
)

const (
	exportLimit = 10000

	SheetTransactions = "Transactions"
	SheetItems        = "Items"
)

// ExportService writes a day's transactions to an XLSX workbook.
type ExportService struct {
	repo repository.TransactionRepository
	loc  *time.Location
	now  func() time.Time
	log  *zap.Logger
}

// NewExportService creates a new export service.
func NewExportService(repo repository.TransactionRepository, loc *time.Location, log *zap.Logger) *ExportService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExportService{repo: repo, loc: loc, now: time.Now, log: log}
}

// WithClock replaces the wall clock, for tests.
func (s *ExportService) WithClock(now func() time.Time) *ExportService {
	s.now = now
	return s
}

// DailyWorkbook builds the workbook for date (YYYY-MM-DD, today when blank
// or invalid) and returns it with a download file name.
func (s *ExportService) DailyWorkbook(ctx context.Context, date string) ([]byte, string, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		date = s.now().In(s.loc).Format(entity.DateLayout)
	}

	txns, err := s.repo.List(ctx, &repository.TransactionFilterParams{Date: date, Limit: exportLimit})
	if err != nil {
		return nil, "", apperror.NewInternalError(MsgLoadFailed, err)
	}
	summary, err := s.repo.DailySummary(ctx, date)
	if err != nil {
		return nil, "", apperror.NewInternalError(MsgLoadFailed, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return nil, "", apperror.NewInternalError("Failed to export transactions.", err)
	}
	if _, err := f.NewSheet(SheetItems); err != nil {
		return nil, "", apperror.NewInternalError("Failed to export transactions.", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", apperror.NewInternalError("Failed to export transactions.", err)
	}

	// Transactions sheet, oldest first so it reads like a day log.
	setRow(f, SheetTransactions, 1, "Receipt #", "Time", "Customer", "Contact", "Job", "Total", "Paid", "Balance", "Status")
	row := 2
	for i := len(txns) - 1; i >= 0; i-- {
		t := txns[i]
		status := entity.ReceiptStatusWithBalance
		if t.IsPaid() {
			status = entity.ReceiptStatusPaid
		}
		setRow(f, SheetTransactions, row,
			receipt.Number(t.ID),
			t.CreatedAt.In(s.loc).Format("15:04"),
			t.CustomerName,
			t.Contact,
			t.Description,
			t.TotalAmount.InexactFloat64(),
			t.AmountPaid.InexactFloat64(),
			t.Balance.InexactFloat64(),
			status,
		)
		row++
	}
	setRow(f, SheetTransactions, row+1, "Daily total", "", "", "", fmt.Sprintf("%d transactions", summary.Count),
		summary.Total.InexactFloat64(), summary.Paid.InexactFloat64(), summary.Total.Sub(summary.Paid).InexactFloat64(), "")
	_ = f.SetRowStyle(SheetTransactions, 1, 1, bold)
	_ = f.SetRowStyle(SheetTransactions, row+1, row+1, bold)
	_ = f.SetColWidth(SheetTransactions, "C", "C", 24)
	_ = f.SetColWidth(SheetTransactions, "E", "E", 36)

	// Items sheet
	setRow(f, SheetItems, 1, "Receipt #", "Item", "Qty", "Unit price", "Line total")
	row = 2
	for i := len(txns) - 1; i >= 0; i-- {
		t := txns[i]
		for _, it := range t.Items {
			setRow(f, SheetItems, row,
				receipt.Number(t.ID),
				it.ItemDescription,
				it.Quantity.InexactFloat64(),
				it.UnitPrice.InexactFloat64(),
				it.LineTotal.InexactFloat64(),
			)
			row++
		}
	}
	_ = f.SetRowStyle(SheetItems, 1, 1, bold)
	_ = f.SetColWidth(SheetItems, "B", "B", 36)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", apperror.NewInternalError("Failed to export transactions.", err)
	}

	s.log.Info("daily workbook exported", zap.String("date", date), zap.Int("transactions", len(txns)))
	return buf.Bytes(), fmt.Sprintf("salay-glass-%s.xlsx", date), nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return
	}
	_ = f.SetSheetRow(sheet, cell, &values)
}
