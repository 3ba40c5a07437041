// Package session drives one transaction entry form: it owns the draft,
// submits it to the store and keeps the day's history for display.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sangkips/salay-pos/internal/client/store"
	"github.com/sangkips/salay-pos/internal/domain/draft"
	"github.com/sangkips/salay-pos/internal/domain/entity"
)

// Status texts shown next to the save button.
const (
	StatusSaving      = "Saving transaction…"
	StatusSaved       = "Transaction saved. E-receipt ready."
	StatusSaveFailed  = "Could not save. Please try again."
	msgUnknownFailure = "Something went wrong while saving."
)

// ErrSubmitInProgress is returned by Submit while another submit is pending.
var ErrSubmitInProgress = errors.New("session: a save is already in progress")

// StatusKind colours the status line.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the line of feedback next to the save button.
type Status struct {
	Text string
	Kind StatusKind
}

// Store is the part of the store client a session needs.
type Store interface {
	Create(ctx context.Context, payload draft.Payload) (*entity.Transaction, error)
	List(ctx context.Context, date string) (*entity.DayListing, error)
	Get(ctx context.Context, id uint) (*entity.Transaction, error)
}

// Session is safe for concurrent use; the draft inside is only touched with
// the lock held.
type Session struct {
	mu          sync.Mutex
	store       Store
	loc         *time.Location
	log         *zap.Logger
	draft       *draft.Draft
	formError   string
	status      Status
	submitting  bool
	lastReceipt *entity.Transaction
	historyDate string
	history     HistoryView
}

// New starts a session with a fresh draft. Times in the history are shown
// in loc.
func New(s Store, loc *time.Location, log *zap.Logger) *Session {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		store: s,
		loc:   loc,
		log:   log,
		draft: draft.ResetDraft(),
	}
}

// View is a point-in-time copy of everything a front end renders.
type View struct {
	Draft       *draft.Draft
	Totals      draft.Totals
	FormError   string
	Status      Status
	Submitting  bool
	LastReceipt *entity.Transaction
	History     HistoryView
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Draft:       s.draft.Clone(),
		Totals:      s.draft.Totals(),
		FormError:   s.formError,
		Status:      s.status,
		Submitting:  s.submitting,
		LastReceipt: s.lastReceipt,
		History:     s.history,
	}
}

// Totals recomputes the draft totals.
func (s *Session) Totals() draft.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Totals()
}

func (s *Session) edit(f func(d *draft.Draft) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return f(s.draft)
}

// SetCustomerName sets the customer field.
func (s *Session) SetCustomerName(v string) {
	_ = s.edit(func(d *draft.Draft) error { d.CustomerName = v; return nil })
}

// SetContact sets the contact field.
func (s *Session) SetContact(v string) {
	_ = s.edit(func(d *draft.Draft) error { d.Contact = v; return nil })
}

// SetDescription sets the overall job description.
func (s *Session) SetDescription(v string) {
	_ = s.edit(func(d *draft.Draft) error { d.Description = v; return nil })
}

// SetAmountPaid sets the amount paid as typed.
func (s *Session) SetAmountPaid(v string) {
	_ = s.edit(func(d *draft.Draft) error { d.AmountPaid = v; return nil })
}

// AddLineItem appends a row and returns its handle.
func (s *Session) AddLineItem(initial ...draft.LineItem) draft.Handle {
	var h draft.Handle
	_ = s.edit(func(d *draft.Draft) error { h = d.AddLineItem(initial...); return nil })
	return h
}

// UpdateLineItem changes one field of a row.
func (s *Session) UpdateLineItem(h draft.Handle, field draft.Field, value string) error {
	return s.edit(func(d *draft.Draft) error { return d.UpdateLineItem(h, field, value) })
}

// RemoveLineItem deletes a row.
func (s *Session) RemoveLineItem(h draft.Handle) error {
	return s.edit(func(d *draft.Draft) error { return d.RemoveLineItem(h) })
}

// Handles lists the row handles in display order.
func (s *Session) Handles() []draft.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Handles()
}

// Submit validates the draft and saves it. Validation failures set the form
// error and make no store call. On success the draft is reset and the
// history refreshed; on failure the draft is left as it was.
func (s *Session) Submit(ctx context.Context) (*entity.Transaction, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	s.formError = ""

	payload, err := draft.ValidateForSubmit(s.draft)
	if err != nil {
		var ve *draft.ValidationError
		if errors.As(err, &ve) {
			s.formError = ve.Message
		} else {
			s.formError = err.Error()
		}
		s.mu.Unlock()
		return nil, err
	}

	s.submitting = true
	s.status = Status{Text: StatusSaving, Kind: StatusInfo}
	s.mu.Unlock()

	txn, err := s.store.Create(ctx, payload)

	s.mu.Lock()
	s.submitting = false
	if err != nil {
		s.status = Status{Text: StatusSaveFailed, Kind: StatusError}
		s.formError = failureText(err)
		s.mu.Unlock()
		s.log.Warn("save failed", zap.Error(err))
		return nil, err
	}

	s.status = Status{Text: StatusSaved, Kind: StatusSuccess}
	s.lastReceipt = txn
	s.draft = draft.ResetDraft()
	date := s.historyDate
	s.mu.Unlock()

	s.log.Info("transaction saved", zap.Uint("id", txn.ID))

	// A failed refresh leaves the save in place.
	if _, err := s.LoadHistory(ctx, date); err != nil {
		s.log.Warn("history refresh after save failed", zap.Error(err))
	}
	return txn, nil
}

func failureText(err error) string {
	var te *store.TransportError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err.Error()
	}
	return msgUnknownFailure
}

// Clear resets the draft, form error and status.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft.ResetDraft()
	s.formError = ""
	s.status = Status{}
}

// LastReceipt is the record of the latest successful save, if any.
func (s *Session) LastReceipt() *entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReceipt
}

// LoadHistory fetches and projects the listing of date (YYYY-MM-DD, blank
// for today). The date is remembered for refreshes after a save.
func (s *Session) LoadHistory(ctx context.Context, date string) (HistoryView, error) {
	s.mu.Lock()
	s.historyDate = date
	s.mu.Unlock()

	listing, err := s.store.List(ctx, date)

	var view HistoryView
	if err != nil {
		view = FailedHistory(date)
	} else {
		view = ProjectHistory(listing, s.loc)
	}

	s.mu.Lock()
	s.history = view
	s.mu.Unlock()
	return view, err
}

// History returns the last loaded history view.
func (s *Session) History() HistoryView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// Fetch loads one saved transaction, e.g. to reopen its receipt.
func (s *Session) Fetch(ctx context.Context, id uint) (*entity.Transaction, error) {
	return s.store.Get(ctx, id)
}
