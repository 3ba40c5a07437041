package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/salay-pos/internal/domain/repository"
	"github.com/sangkips/salay-pos/internal/infrastructure/repository"
	"github.com/sangkips/salay-pos/internal/testutil"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTxn(name, date string, created time.Time, total, paid string) *entity.Transaction {
	return &entity.Transaction{
		CustomerName:    name,
		Description:     "Job for " + name,
		TotalAmount:     dec(total),
		AmountPaid:      dec(paid),
		Balance:         dec(total).Sub(dec(paid)),
		CreatedAt:       created,
		TransactionDate: date,
		Items: []entity.LineItem{
			{ItemDescription: "Panel", Quantity: dec("1"), UnitPrice: dec(total), LineTotal: dec(total)},
		},
	}
}

func TestTransactionRepositoryCreateAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTransactionRepository(testutil.NewDB(t))

	txn := &entity.Transaction{
		CustomerName:    "Ana Cruz",
		Contact:         "ana@example.com",
		Description:     "Sliding windows",
		TotalAmount:     dec("3800"),
		AmountPaid:      dec("3000"),
		Balance:         dec("800"),
		CreatedAt:       time.Now().UTC(),
		TransactionDate: "2026-10-18",
		Items: []entity.LineItem{
			{ItemDescription: "Window A", Quantity: dec("2"), UnitPrice: dec("1500"), LineTotal: dec("3000")},
			{ItemDescription: "Window B", Quantity: dec("1"), UnitPrice: dec("800"), LineTotal: dec("800")},
		},
	}
	require.NoError(t, repo.Create(ctx, txn))
	require.NotZero(t, txn.ID)
	require.Len(t, txn.Items, 2)
	assert.Equal(t, txn.ID, txn.Items[0].TransactionID)

	got, err := repo.GetWithItems(ctx, txn.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Ana Cruz", got.CustomerName)
	assert.True(t, dec("3800").Equal(got.TotalAmount))
	assert.True(t, dec("800").Equal(got.Balance))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Window A", got.Items[0].ItemDescription)
	assert.True(t, dec("3000").Equal(got.Items[0].LineTotal))

	totals := got.Totals()
	assert.True(t, got.TotalAmount.Equal(totals.TotalAmount))
	assert.True(t, got.Balance.Equal(totals.Balance))
}

func TestTransactionRepositoryGetMissing(t *testing.T) {
	t.Parallel()

	repo := repository.NewTransactionRepository(testutil.NewDB(t))

	got, err := repo.GetWithItems(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTransactionRepositoryList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTransactionRepository(testutil.NewDB(t))

	base := time.Date(2026, 10, 18, 1, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, newTxn("Ana Cruz", "2026-10-18", base, "3800", "3000")))
	require.NoError(t, repo.Create(ctx, newTxn("Ben Reyes", "2026-10-18", base.Add(time.Hour), "5000", "5000")))
	require.NoError(t, repo.Create(ctx, newTxn("Carla Santos", "2026-10-17", base.Add(-24*time.Hour), "1200", "0")))

	t.Run("day filter newest first", func(t *testing.T) {
		txns, err := repo.List(ctx, &domainRepo.TransactionFilterParams{Date: "2026-10-18"})
		require.NoError(t, err)
		require.Len(t, txns, 2)
		assert.Equal(t, "Ben Reyes", txns[0].CustomerName)
		assert.Equal(t, "Ana Cruz", txns[1].CustomerName)
		assert.Len(t, txns[0].Items, 1)
	})

	t.Run("no date lists everything", func(t *testing.T) {
		txns, err := repo.List(ctx, &domainRepo.TransactionFilterParams{})
		require.NoError(t, err)
		assert.Len(t, txns, 3)
	})

	t.Run("limit", func(t *testing.T) {
		txns, err := repo.List(ctx, &domainRepo.TransactionFilterParams{Limit: 1})
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "Ben Reyes", txns[0].CustomerName)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		txns, err := repo.List(ctx, &domainRepo.TransactionFilterParams{Search: "cRuZ"})
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "Ana Cruz", txns[0].CustomerName)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		txns, err := repo.List(ctx, &domainRepo.TransactionFilterParams{Search: "%"})
		require.NoError(t, err)
		assert.Empty(t, txns)
	})
}

func TestTransactionRepositoryDailySummary(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTransactionRepository(testutil.NewDB(t))

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newTxn("Ana", "2026-10-18", now, "3800", "3000")))
	require.NoError(t, repo.Create(ctx, newTxn("Ben", "2026-10-18", now, "5000", "5000")))
	require.NoError(t, repo.Create(ctx, newTxn("Carla", "2026-10-17", now, "1200", "0")))

	sum, err := repo.DailySummary(ctx, "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.Count)
	assert.True(t, dec("8800").Equal(sum.Total), sum.Total.String())
	assert.True(t, dec("8000").Equal(sum.Paid), sum.Paid.String())

	empty, err := repo.DailySummary(ctx, "2020-01-01")
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.True(t, empty.Total.IsZero())
}
