package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salay-pos/internal/client/store"
	"github.com/sangkips/salay-pos/internal/domain/draft"
	"github.com/sangkips/salay-pos/internal/domain/entity"
)

type fakeStore struct {
	mu        sync.Mutex
	creates   []draft.Payload
	createErr error
	listErr   error
	listCalls int
	release   chan struct{} // when set, Create waits for it
	started   chan struct{}
	saved     []entity.Transaction
}

func (f *fakeStore) Create(ctx context.Context, p draft.Payload) (*entity.Transaction, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, p)
	if f.createErr != nil {
		return nil, f.createErr
	}

	totals := draft.ComputeTotals(linesOf(p), p.AmountPaid)
	txn := entity.Transaction{
		ID:           uint(len(f.saved) + 1),
		CustomerName: p.CustomerName,
		Description:  p.Description,
		TotalAmount:  totals.TotalAmount,
		AmountPaid:   totals.AmountPaid,
		Balance:      totals.Balance,
		CreatedAt:    time.Date(2026, 10, 18, 6, 30, 0, 0, time.UTC),
	}
	f.saved = append([]entity.Transaction{txn}, f.saved...)
	return &txn, nil
}

func (f *fakeStore) List(ctx context.Context, date string) (*entity.DayListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &entity.DayListing{Date: "2026-10-18", Transactions: append([]entity.Transaction(nil), f.saved...)}, nil
}

func (f *fakeStore) Get(ctx context.Context, id uint) (*entity.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.saved {
		if f.saved[i].ID == id {
			return &f.saved[i], nil
		}
	}
	return nil, &store.TransportError{Status: 404, Message: "Transaction not found."}
}

func (f *fakeStore) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates)
}

func linesOf(p draft.Payload) []draft.Line {
	lines := make([]draft.Line, len(p.Items))
	for i, it := range p.Items {
		lines[i] = draft.Line{Description: it.ItemDescription, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
	}
	return lines
}

func fillWindows(s *Session) {
	s.SetCustomerName("Ana Cruz")
	s.SetDescription("Sliding windows")
	h := s.Handles()[0]
	_ = s.UpdateLineItem(h, draft.FieldDescription, "Window A")
	_ = s.UpdateLineItem(h, draft.FieldQuantity, "2")
	_ = s.UpdateLineItem(h, draft.FieldUnitPrice, "1500")
	s.AddLineItem(draft.LineItem{Description: "Window B", Quantity: "1", UnitPrice: "800"})
	s.SetAmountPaid("3000")
}

func TestEditingRecomputesTotals(t *testing.T) {
	t.Parallel()

	s := New(&fakeStore{}, time.UTC, nil)
	fillWindows(s)

	totals := s.Totals()
	assert.True(t, decimal.NewFromInt(3800).Equal(totals.TotalAmount))
	assert.True(t, decimal.NewFromInt(800).Equal(totals.Balance))
	assert.False(t, totals.IsPaid())

	require.NoError(t, s.RemoveLineItem(s.Handles()[1]))
	assert.True(t, decimal.NewFromInt(3000).Equal(s.Totals().TotalAmount))
	assert.ErrorIs(t, s.RemoveLineItem(draft.Handle(999)), draft.ErrUnknownLineItem)
}

func TestSubmitValidationMakesNoStoreCall(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{}
	s := New(fs, time.UTC, nil)
	s.SetDescription("Repair")

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, draft.ErrMissingCustomerName)
	assert.Equal(t, 0, fs.createCount())

	view := s.Snapshot()
	assert.Equal(t, "Customer name is required.", view.FormError)
	assert.Equal(t, Status{}, view.Status)
}

func TestSubmitSuccess(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{}
	s := New(fs, time.UTC, nil)
	fillWindows(s)

	txn, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, txn.ID)

	view := s.Snapshot()
	assert.Equal(t, Status{Text: StatusSaved, Kind: StatusSuccess}, view.Status)
	assert.Empty(t, view.FormError)
	assert.Equal(t, txn, view.LastReceipt)
	assert.Equal(t, 1, view.Draft.Len(), "draft reset to one blank row")
	assert.Empty(t, view.Draft.CustomerName)
	assert.Equal(t, "0", view.Draft.AmountPaid)

	require.Len(t, view.History.Rows, 1, "history refreshed")
	assert.Equal(t, "0001", view.History.Rows[0].ReceiptNo)

	require.Len(t, fs.creates, 1)
	assert.Len(t, fs.creates[0].Items, 2)
}

func TestSubmitTransportFailureKeepsDraft(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{createErr: &store.TransportError{Status: 500, Message: "Failed to save transaction."}}
	s := New(fs, time.UTC, nil)
	fillWindows(s)
	before := s.Snapshot().Draft

	_, err := s.Submit(context.Background())
	require.Error(t, err)

	view := s.Snapshot()
	assert.Equal(t, Status{Text: StatusSaveFailed, Kind: StatusError}, view.Status)
	assert.Equal(t, "Failed to save transaction.", view.FormError)
	assert.Equal(t, before.Items(), view.Draft.Items())
	assert.Equal(t, "3000", view.Draft.AmountPaid)
	assert.Nil(t, view.LastReceipt)
	assert.False(t, view.Submitting)

	fs.mu.Lock()
	fs.createErr = errors.New("connection reset")
	fs.mu.Unlock()
	_, err = s.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, msgUnknownFailure, s.Snapshot().FormError)
}

func TestSubmitRejectsConcurrentSubmit(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{release: make(chan struct{}), started: make(chan struct{}, 1)}
	s := New(fs, time.UTC, nil)
	fillWindows(s)

	done := make(chan error, 1)
	go func() {
		_, err := s.Submit(context.Background())
		done <- err
	}()
	<-fs.started

	assert.True(t, s.Snapshot().Submitting)
	assert.Equal(t, StatusSaving, s.Snapshot().Status.Text)

	_, err := s.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(fs.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, fs.createCount())
}

func TestSaveSurvivesFailedHistoryRefresh(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{listErr: errors.New("timeout")}
	s := New(fs, time.UTC, nil)
	fillWindows(s)

	txn, err := s.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, txn)

	view := s.Snapshot()
	assert.Equal(t, StatusSaved, view.Status.Text)
	assert.True(t, view.History.Failed)
	assert.Equal(t, HistoryLoadFailed, view.History.Message)
}

func TestClear(t *testing.T) {
	t.Parallel()

	s := New(&fakeStore{}, time.UTC, nil)
	s.SetDescription("Repair")
	_, _ = s.Submit(context.Background())
	require.NotEmpty(t, s.Snapshot().FormError)

	s.Clear()
	view := s.Snapshot()
	assert.Empty(t, view.FormError)
	assert.Empty(t, view.Draft.Description)
	assert.Equal(t, Status{}, view.Status)
}

func TestFetch(t *testing.T) {
	t.Parallel()

	s := New(&fakeStore{}, time.UTC, nil)
	fillWindows(s)
	txn, err := s.Submit(context.Background())
	require.NoError(t, err)

	got, err := s.Fetch(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Cruz", got.CustomerName)

	_, err = s.Fetch(context.Background(), 99)
	assert.True(t, store.IsTransportError(err))
}
