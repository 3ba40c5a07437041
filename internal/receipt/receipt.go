// Package receipt turns a saved transaction into an e-receipt and renders it
// as a printable HTML page, plain text or ESC/POS bytes.
package receipt

import (
	"fmt"
	"time"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/pkg/money"
)

const (
	dateLayout = "Jan 2, 2006"
	timeLayout = "03:04 PM"

	// EmptyItemsText replaces the item table of a job saved without lines.
	EmptyItemsText = "No breakdown captured for this job."
	// DefaultFooter closes every receipt unless the shop overrides it.
	DefaultFooter = "Thank you for trusting Salay Glass."
)

// DefaultHeader is the shop header used when none is configured.
func DefaultHeader() entity.ReceiptHeader {
	return entity.ReceiptHeader{
		ShopName: "Salay Glass",
		Tagline:  "Glass & aluminum fabrication and installation",
		Footer:   DefaultFooter,
	}
}

// Number formats a transaction id as a receipt number, zero-padded to four
// digits: 7 -> "0007".
func Number(id uint) string {
	return fmt.Sprintf("%04d", id)
}

// FromRecord composes the receipt of a saved transaction. Date and time are shown
// in loc; a nil loc means UTC.
func FromRecord(t *entity.Transaction, header entity.ReceiptHeader, loc *time.Location) *entity.Receipt {
	if loc == nil {
		loc = time.UTC
	}
	if header.Footer == "" {
		header.Footer = DefaultFooter
	}
	created := t.CreatedAt.In(loc)

	r := &entity.Receipt{
		Header:      header,
		ReceiptNo:   Number(t.ID),
		Date:        created.Format(dateLayout),
		Time:        created.Format(timeLayout),
		Customer:    t.CustomerName,
		Contact:     t.Contact,
		Description: t.Description,
		Items:       make([]entity.ReceiptItem, 0, len(t.Items)),
		Total:       t.TotalAmount,
		Paid:        t.AmountPaid,
		Balance:     t.Balance,
		Status:      entity.ReceiptStatusWithBalance,
	}
	if money.IsSettled(t.Balance) {
		r.Status = entity.ReceiptStatusPaid
	}

	for i, it := range t.Items {
		r.Items = append(r.Items, entity.ReceiptItem{
			No:          i + 1,
			Description: it.ItemDescription,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.LineTotal,
		})
	}
	return r
}
