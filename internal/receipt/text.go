package receipt

import (
	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/pkg/money"
	"github.com/sangkips/salay-pos/pkg/printer"
)

// RenderText lays the receipt out as plain text of the given width, for
// terminals and e-mail fallbacks.
func RenderText(r *entity.Receipt, width int) string {
	doc := printer.NewPlainDocument(width)
	layout(doc, r)
	return doc.String()
}

// RenderESCPOS converts the receipt into a thermal printer job.
func RenderESCPOS(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)
	layout(doc, r)
	doc.FeedLines(3).
		PartialCut()
	return doc.Bytes()
}

// layout writes the receipt lines. Amounts carry no peso sign because most
// thermal code pages lack it; the header says the currency instead.
func layout(doc *printer.Document, r *entity.Receipt) {
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.ShopName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Tagline != "" {
		doc.Wrap(r.Header.Tagline)
	}
	if r.Header.Address != "" {
		doc.Wrap(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	doc.Text("E-Receipt")

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt #", r.ReceiptNo).
		KeyValue("Date:", r.Date+" "+r.Time).
		KeyValue("Customer:", r.Customer)
	if r.Contact != "" {
		doc.KeyValue("Contact:", r.Contact)
	}
	doc.Text("Job / project:").
		Wrap(r.Description).
		Separator('-')

	if len(r.Items) == 0 {
		doc.Wrap(EmptyItemsText)
	}
	for _, item := range r.Items {
		doc.ItemLine(item.No, item.Description, money.Grouped(item.Total))
		doc.TextF("   %s x %s", item.Quantity.String(), money.Grouped(item.UnitPrice))
	}

	doc.Separator('-')

	doc.SetBold(true).
		KeyValue("TOTAL (PHP):", money.Grouped(r.Total)).
		SetBold(false).
		KeyValue("Amount paid:", money.Grouped(r.Paid)).
		KeyValue("Balance:", money.Grouped(r.Balance)).
		KeyValue("Status:", r.Status)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		Wrap(r.Header.Footer).
		SetAlign(printer.AlignLeft)
}
