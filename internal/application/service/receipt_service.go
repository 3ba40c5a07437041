package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/domain/repository"
	"github.com/sangkips/salay-pos/internal/receipt"
	"github.com/sangkips/salay-pos/pkg/apperror"
	"github.com/sangkips/salay-pos/pkg/email"
)

// Mailer sends an HTML message. *email.EmailService satisfies it.
type Mailer interface {
	Configured() bool
	SendHTML(to, subject, htmlBody string) error
}

// ReceiptService composes e-receipts from saved transactions.
type ReceiptService struct {
	repo   repository.TransactionRepository
	header entity.ReceiptHeader
	loc    *time.Location
	mailer Mailer
	log    *zap.Logger
}

// NewReceiptService creates a new receipt service. mailer may be nil when
// e-mail is not set up.
func NewReceiptService(
	repo repository.TransactionRepository,
	header entity.ReceiptHeader,
	loc *time.Location,
	mailer Mailer,
	log *zap.Logger,
) *ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptService{repo: repo, header: header, loc: loc, mailer: mailer, log: log}
}

// BuildReceipt loads a transaction and composes its receipt.
func (s *ReceiptService) BuildReceipt(ctx context.Context, id uint) (*entity.Receipt, error) {
	txn, err := s.repo.GetWithItems(ctx, id)
	if err != nil {
		return nil, apperror.NewInternalError(MsgLoadFailed, err)
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError(MsgTransactionNotFound)
	}
	return receipt.FromRecord(txn, s.header, s.loc), nil
}

// RenderHTML returns the printable e-receipt page of a transaction.
func (s *ReceiptService) RenderHTML(ctx context.Context, id uint) ([]byte, error) {
	r, err := s.BuildReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	page, err := receipt.RenderHTML(r)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to render receipt.", err)
	}
	return page, nil
}

// EmailReceipt sends the e-receipt to the given address, or to the contact
// saved with the transaction when to is empty. It returns the address used.
func (s *ReceiptService) EmailReceipt(ctx context.Context, id uint, to string) (string, error) {
	if s.mailer == nil || !s.mailer.Configured() {
		return "", apperror.NewServiceUnavailableError("E-mail is not configured.", email.ErrNotConfigured)
	}

	r, err := s.BuildReceipt(ctx, id)
	if err != nil {
		return "", err
	}

	to = strings.TrimSpace(to)
	if to == "" && email.IsAddress(r.Contact) {
		to = strings.TrimSpace(r.Contact)
	}
	if !email.IsAddress(to) {
		return "", apperror.NewBadRequestError("No e-mail address for this transaction.")
	}

	page, err := receipt.RenderHTML(r)
	if err != nil {
		return "", apperror.NewInternalError("Failed to render receipt.", err)
	}

	subject := fmt.Sprintf("%s e-receipt #%s", r.Header.ShopName, r.ReceiptNo)
	if err := s.mailer.SendHTML(to, subject, string(page)); err != nil {
		s.log.Warn("receipt e-mail failed",
			zap.Uint("id", id),
			zap.String("to", to),
			zap.Error(err),
		)
		if errors.Is(err, email.ErrNotConfigured) {
			return "", apperror.NewServiceUnavailableError("E-mail is not configured.", err)
		}
		return "", apperror.NewInternalError("Failed to send receipt.", err)
	}

	s.log.Info("receipt e-mailed", zap.Uint("id", id), zap.String("to", to))
	return to, nil
}
