package receipt

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/pkg/printer"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTransaction() *entity.Transaction {
	return &entity.Transaction{
		ID:              7,
		CustomerName:    "Ana <Cruz>",
		Contact:         "0917 000 0000",
		Description:     "Sliding windows for the kitchen",
		TotalAmount:     dec("3800"),
		AmountPaid:      dec("3000"),
		Balance:         dec("800"),
		CreatedAt:       time.Date(2026, 10, 18, 6, 30, 0, 0, time.UTC),
		TransactionDate: "2026-10-18",
		Items: []entity.LineItem{
			{ItemDescription: "Window A", Quantity: dec("2"), UnitPrice: dec("1500"), LineTotal: dec("3000")},
			{ItemDescription: "Window B", Quantity: dec("1"), UnitPrice: dec("800"), LineTotal: dec("800")},
		},
	}
}

func manila(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		t.Skip("time zone database unavailable")
	}
	return loc
}

func TestFromRecord(t *testing.T) {
	t.Parallel()

	r := FromRecord(sampleTransaction(), DefaultHeader(), manila(t))

	assert.Equal(t, "0007", r.ReceiptNo)
	assert.Equal(t, "Oct 18, 2026", r.Date)
	assert.Equal(t, "02:30 PM", r.Time)
	assert.Equal(t, entity.ReceiptStatusWithBalance, r.Status)
	assert.False(t, r.IsPaid())
	require.Len(t, r.Items, 2)
	assert.Equal(t, 1, r.Items[0].No)
	assert.Equal(t, 2, r.Items[1].No)
	assert.Equal(t, DefaultFooter, r.Header.Footer)
}

func TestFromRecordPaid(t *testing.T) {
	t.Parallel()

	txn := sampleTransaction()
	txn.AmountPaid = dec("3800")
	txn.Balance = decimal.Zero

	r := FromRecord(txn, entity.ReceiptHeader{ShopName: "Salay Glass"}, nil)
	assert.Equal(t, entity.ReceiptStatusPaid, r.Status)
	assert.Equal(t, DefaultFooter, r.Header.Footer)
}

func TestNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0001", Number(1))
	assert.Equal(t, "0042", Number(42))
	assert.Equal(t, "12345", Number(12345))
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	page, err := RenderHTML(FromRecord(sampleTransaction(), DefaultHeader(), time.UTC))
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "Receipt #</strong> 0007")
	assert.Contains(t, html, "WITH BALANCE")
	assert.Contains(t, html, "₱3,800.00")
	assert.Contains(t, html, "₱1,500.00")
	assert.Contains(t, html, "Thank you for trusting Salay Glass.")
	assert.Contains(t, html, "Ana &lt;Cruz&gt;", "customer text is escaped")
	assert.NotContains(t, html, EmptyItemsText)
}

func TestRenderHTMLWithoutItems(t *testing.T) {
	t.Parallel()

	txn := sampleTransaction()
	txn.Items = nil

	page, err := RenderHTML(FromRecord(txn, DefaultHeader(), time.UTC))
	require.NoError(t, err)
	assert.Contains(t, string(page), EmptyItemsText)
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	text := RenderText(FromRecord(sampleTransaction(), DefaultHeader(), time.UTC), 40)

	assert.Contains(t, text, "Salay Glass")
	assert.Contains(t, text, "0007")
	assert.Contains(t, text, "1. Window A")
	assert.Contains(t, text, "3,800.00")
	assert.Contains(t, text, "WITH BALANCE")
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 40, line)
	}
}

func TestRenderESCPOS(t *testing.T) {
	t.Parallel()

	job := RenderESCPOS(FromRecord(sampleTransaction(), DefaultHeader(), time.UTC), 32)

	assert.True(t, bytes.HasPrefix(job, []byte{printer.ESC, '@'}))
	assert.True(t, bytes.HasSuffix(job, []byte{printer.GS, 'V', 0x01}))
	assert.True(t, bytes.Contains(job, []byte("Window B")))
}
