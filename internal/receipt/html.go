package receipt

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/pkg/money"
)

var htmlTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"peso": money.Peso,
	"qty":  func(d decimal.Decimal) string { return d.String() },
}).Parse(receiptHTML))

// RenderHTML renders a standalone page that prints as the e-receipt.
func RenderHTML(r *entity.Receipt) ([]byte, error) {
	data := struct {
		*entity.Receipt
		EmptyItemsText string
	}{
		Receipt:        r,
		EmptyItemsText: EmptyItemsText,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

const receiptHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Header.ShopName}} E-Receipt #{{.ReceiptNo}}</title>
    <style>
        body { font-family: system-ui, -apple-system, "Segoe UI", sans-serif; padding: 18px; color: #111827; max-width: 720px; margin: 0 auto; }
        h2 { text-transform: uppercase; letter-spacing: 0.12em; font-size: 1rem; margin-bottom: 2px; }
        .muted { font-size: 0.78rem; color: #6b7280; }
        .meta { display: flex; justify-content: space-between; font-size: 0.8rem; margin-top: 12px; }
        .job { font-size: 0.8rem; margin: 8px 0 4px; }
        table.items { width: 100%; border-collapse: collapse; margin-top: 10px; font-size: 0.8rem; }
        table.items th, table.items td { padding: 5px 4px; }
        table.items th { border-bottom: 1px solid #9ca3af; font-size: 0.72rem; text-transform: uppercase; letter-spacing: 0.08em; color: #6b7280; text-align: left; }
        table.items td { border-bottom: 1px dashed #d1d5db; }
        .right { text-align: right !important; }
        .empty { text-align: center; color: #9ca3af; }
        .totals { margin-top: 8px; display: flex; justify-content: flex-end; font-size: 0.8rem; }
        .totals td { padding: 2px 8px; }
        .paid { color: #15803d; }
        .owing { color: #b91c1c; }
        .footer { margin-top: 14px; font-size: 0.76rem; color: #6b7280; display: flex; justify-content: space-between; align-items: center; }
        @media print { body { padding: 0; } }
    </style>
</head>
<body>
    <h2>{{.Header.ShopName}}</h2>
    <div class="muted">{{if .Header.Tagline}}{{.Header.Tagline}} &mdash; {{end}}E-Receipt</div>
    {{if .Header.Address}}<div class="muted">{{.Header.Address}}</div>{{end}}
    {{if .Header.Phone}}<div class="muted">{{.Header.Phone}}</div>{{end}}

    <div class="meta">
        <div>
            <div><strong>Customer:</strong> {{.Customer}}</div>
            {{if .Contact}}<div><strong>Contact:</strong> {{.Contact}}</div>{{end}}
        </div>
        <div class="right">
            <div><strong>Receipt #</strong> {{.ReceiptNo}}</div>
            <div>{{.Date}} &nbsp; {{.Time}}</div>
        </div>
    </div>

    <div class="job">
        <strong>Job / project:</strong><br>
        <span>{{.Description}}</span>
    </div>

    <table class="items">
        <thead>
            <tr>
                <th style="width:32px;">#</th>
                <th>Description</th>
                <th class="right" style="width:60px;">Qty</th>
                <th class="right" style="width:90px;">Unit</th>
                <th class="right" style="width:100px;">Total</th>
            </tr>
        </thead>
        <tbody>
        {{- range .Items}}
            <tr>
                <td>{{.No}}</td>
                <td>{{.Description}}</td>
                <td class="right">{{qty .Quantity}}</td>
                <td class="right">{{peso .UnitPrice}}</td>
                <td class="right">{{peso .Total}}</td>
            </tr>
        {{- else}}
            <tr>
                <td colspan="5" class="empty">{{$.EmptyItemsText}}</td>
            </tr>
        {{- end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td class="muted">Total amount</td><td class="right">{{peso .Total}}</td></tr>
            <tr><td class="muted">Amount paid</td><td class="right">{{peso .Paid}}</td></tr>
            <tr><td class="muted">Balance</td><td class="right {{if .IsPaid}}paid{{else}}owing{{end}}">{{peso .Balance}}</td></tr>
        </table>
    </div>

    <div class="footer">
        <span>Status: <strong class="{{if .IsPaid}}paid{{else}}owing{{end}}">{{.Status}}</strong></span>
        <span>{{.Header.Footer}}</span>
    </div>
</body>
</html>
`
