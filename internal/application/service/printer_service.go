package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/receipt"
	"github.com/sangkips/salay-pos/pkg/printer"
)

// DefaultPaperWidth fits 58mm paper.
const DefaultPaperWidth = 32

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	receipts    *ReceiptService
	printerType string
	width       int
	log         *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receipts *ReceiptService,
	printerType string,
	width int,
	log *zap.Logger,
) *PrinterService {
	if width <= 0 {
		width = DefaultPaperWidth
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		printerType: printerType,
		width:       width,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	header := receipt.DefaultHeader()
	header.ShopName = "PRINTER TEST"

	r := &entity.Receipt{
		Header:      header,
		ReceiptNo:   "TEST",
		Date:        "Test Date",
		Customer:    "Walk-in",
		Description: "Printer alignment check",
		Status:      entity.ReceiptStatusPaid,
	}

	if err := s.printer.Print(ctx, FormatReceipt(r, s.width)); err != nil {
		return r, fmt.Errorf("test print failed: %w", err)
	}
	return r, nil
}

// PrintTransactionReceipt prints the receipt of a saved transaction. The
// receipt is returned even when printing fails so the caller can still show it.
func (s *PrinterService) PrintTransactionReceipt(ctx context.Context, id uint) (*entity.Receipt, error) {
	r, err := s.receipts.BuildReceipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(ctx, FormatReceipt(r, s.width)); err != nil {
		s.log.Warn("printer error",
			zap.Uint("id", id),
			zap.String("printer", s.printerType),
			zap.Error(err),
		)
		return r, fmt.Errorf("failed to print receipt: %w", err)
	}

	s.log.Info("receipt printed", zap.Uint("id", id))
	return r, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	return receipt.RenderESCPOS(r, width)
}
