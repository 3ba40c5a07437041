package repository

import (
	"context"
	"errors"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/salay-pos/internal/domain/repository"
	"gorm.io/gorm"
)

// DefaultListLimit caps a history listing when the caller gives no limit.
const DefaultListLimit = 50

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := txn.Items
		txn.Items = nil
		if err := tx.Create(txn).Error; err != nil {
			txn.Items = items
			return err
		}
		for i := range items {
			items[i].TransactionID = txn.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				txn.Items = items
				return err
			}
		}
		txn.Items = items
		return nil
	})
}

func (r *transactionRepository) GetWithItems(ctx context.Context, id uint) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var txns []entity.Transaction
	err := r.db.WithContext(ctx).
		Model(&entity.Transaction{}).
		Scopes(DateScope(params.Date), CustomerSearchScope(params.Search), NewestFirst).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *transactionRepository) DailySummary(ctx context.Context, date string) (*domainRepo.DailySummary, error) {
	var rows []entity.Transaction
	err := r.db.WithContext(ctx).
		Model(&entity.Transaction{}).
		Select("total_amount", "amount_paid").
		Scopes(DateScope(date)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &domainRepo.DailySummary{Date: date, Count: int64(len(rows))}
	for _, t := range rows {
		summary.Total = summary.Total.Add(t.TotalAmount)
		summary.Paid = summary.Paid.Add(t.AmountPaid)
	}
	return summary, nil
}
