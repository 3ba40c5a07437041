// Package draft builds a transaction before it is saved: the editable line
// items, the derived totals and the payload sent to the transaction store.
//
// A Draft has a single owner and is not safe for concurrent use.
package draft

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sangkips/salay-pos/pkg/money"
)

// Field names a line item field that UpdateLineItem can set.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldUnitPrice   Field = "unit_price"
)

// ParseField maps user-facing field names and their short forms to a Field.
func ParseField(s string) (Field, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "description", "desc", "item_description":
		return FieldDescription, true
	case "quantity", "qty":
		return FieldQuantity, true
	case "unit_price", "unitprice", "price":
		return FieldUnitPrice, true
	}
	return "", false
}

// LineItem is one editable row, holding the text exactly as typed.
type LineItem struct {
	Description string
	Quantity    string
	UnitPrice   string
}

// Handle addresses a line item for the life of its draft. Handles are never
// reused, so removing a row does not shift the others.
type Handle int

type row struct {
	handle Handle
	item   LineItem
}

// Draft is an in-progress transaction.
type Draft struct {
	CustomerName string
	Contact      string
	Description  string
	AmountPaid   string

	rows []row
	next Handle
}

// New returns an empty draft with one blank line item.
func New() *Draft {
	d := &Draft{AmountPaid: "0"}
	d.AddLineItem()
	return d
}

// ResetDraft returns a fresh draft: one blank line, nothing paid.
func ResetDraft() *Draft {
	return New()
}

// AddLineItem appends a line, blank or pre-filled, and returns its handle.
func (d *Draft) AddLineItem(initial ...LineItem) Handle {
	var item LineItem
	if len(initial) > 0 {
		item = initial[0]
	}
	d.next++
	d.rows = append(d.rows, row{handle: d.next, item: item})
	return d.next
}

// UpdateLineItem sets one field of a line. Any text is accepted; numeric
// fields that do not parse compute as zero.
func (d *Draft) UpdateLineItem(h Handle, field Field, value string) error {
	i := d.index(h)
	if i < 0 {
		return ErrUnknownLineItem
	}
	switch field {
	case FieldDescription:
		d.rows[i].item.Description = value
	case FieldQuantity:
		d.rows[i].item.Quantity = value
	case FieldUnitPrice:
		d.rows[i].item.UnitPrice = value
	default:
		return ErrUnknownField
	}
	return nil
}

// RemoveLineItem drops a line.
func (d *Draft) RemoveLineItem(h Handle) error {
	i := d.index(h)
	if i < 0 {
		return ErrUnknownLineItem
	}
	d.rows = append(d.rows[:i], d.rows[i+1:]...)
	return nil
}

// Item returns the line behind a handle.
func (d *Draft) Item(h Handle) (LineItem, bool) {
	i := d.index(h)
	if i < 0 {
		return LineItem{}, false
	}
	return d.rows[i].item, true
}

// Handles lists line handles in display order.
func (d *Draft) Handles() []Handle {
	out := make([]Handle, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.handle
	}
	return out
}

// Items returns a copy of the lines in display order.
func (d *Draft) Items() []LineItem {
	out := make([]LineItem, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.item
	}
	return out
}

// Len is the number of lines, valid or not.
func (d *Draft) Len() int {
	return len(d.rows)
}

// Lines parses every line.
func (d *Draft) Lines() []Line {
	out := make([]Line, len(d.rows))
	for i, r := range d.rows {
		out[i] = r.item.Parse()
	}
	return out
}

// Totals recomputes the total and balance from scratch.
func (d *Draft) Totals() Totals {
	return ComputeTotals(d.Lines(), money.Parse(d.AmountPaid))
}

// Clone returns a deep copy, handles included.
func (d *Draft) Clone() *Draft {
	c := *d
	c.rows = append([]row(nil), d.rows...)
	return &c
}

func (d *Draft) index(h Handle) int {
	for i, r := range d.rows {
		if r.handle == h {
			return i
		}
	}
	return -1
}

// Payload is the normalized body sent to the transaction store.
type Payload struct {
	CustomerName string          `json:"customer_name"`
	Contact      string          `json:"contact"`
	Description  string          `json:"description"`
	Items        []PayloadItem   `json:"items"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
}

// PayloadItem is a valid line item as submitted.
type PayloadItem struct {
	ItemDescription string          `json:"item_description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
}

// ValidateForSubmit checks the draft and builds its payload. Checks run in
// order: customer name, job description, then at least one valid line.
// Invalid lines are dropped from the payload without error.
func ValidateForSubmit(d *Draft) (Payload, error) {
	name := strings.TrimSpace(d.CustomerName)
	if name == "" {
		return Payload{}, ErrMissingCustomerName
	}
	desc := strings.TrimSpace(d.Description)
	if desc == "" {
		return Payload{}, ErrMissingDescription
	}

	lines := IncludedLines(d.Lines())
	if len(lines) == 0 {
		return Payload{}, ErrNoValidLineItems
	}

	items := make([]PayloadItem, len(lines))
	for i, l := range lines {
		items[i] = PayloadItem{
			ItemDescription: l.Description,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
		}
	}

	return Payload{
		CustomerName: name,
		Contact:      strings.TrimSpace(d.Contact),
		Description:  desc,
		Items:        items,
		AmountPaid:   money.Parse(d.AmountPaid),
	}, nil
}
