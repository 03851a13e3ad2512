// Package document renders invoice summaries into shareable documents.
package document

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"hingmart/internal/core/types"
	"hingmart/internal/domain/invoice"
)

// Renderer turns an invoice summary into a document body.
type Renderer interface {
	Render(ctx context.Context, s *invoice.Summary) ([]byte, string, error)
}

// HTMLRenderer renders a printable delivery challan. The output is a
// self-contained HTML page a client can print or convert to PDF.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("challan").Funcs(template.FuncMap{
		"money": types.FormatAmount,
		"inc":   func(i int) int { return i + 1 },
	}).Parse(challanTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse challan template: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

// Render produces the HTML body and its content type.
func (r *HTMLRenderer) Render(ctx context.Context, s *invoice.Summary) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, s); err != nil {
		return nil, "", fmt.Errorf("render challan: %w", err)
	}
	return buf.Bytes(), "text/html; charset=utf-8", nil
}

const challanTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Delivery Challan {{.InvoiceNumber}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; margin: 24px; }
h1 { font-size: 16px; text-align: center; margin-bottom: 4px; }
.header { display: flex; justify-content: space-between; margin-bottom: 12px; }
table { width: 100%; border-collapse: collapse; margin-bottom: 12px; }
th, td { border: 1px solid #444; padding: 4px 6px; text-align: left; }
th { background: #eee; }
.num { text-align: right; }
.totals td { font-weight: bold; }
.words { margin-top: 8px; font-style: italic; }
</style>
</head>
<body>
<h1>Delivery Challan</h1>
{{with .Company}}
<div class="header">
  <div>
    <strong>{{.CompanyName}}</strong><br>
    {{.Address.Line}}<br>
    {{if .MobileNo}}Mobile: {{.MobileNo}}<br>{{end}}
    {{if .GstNo}}GSTIN: {{.GstNo}}{{end}}
  </div>
  <div>
    Challan No: {{$.InvoiceNumber}}<br>
    Date: {{$.InvoiceDate}}
  </div>
</div>
{{end}}
<div>
  <strong>Bill To:</strong> {{.CustomerName}}<br>
  {{if .Phone}}Phone: {{.Phone}}<br>{{end}}
  {{if .Address}}{{.Address}}{{end}}
</div>
<table>
<tr><th>#</th><th>Item</th><th>HSN</th><th class="num">Qty</th><th>Unit</th><th class="num">Rate</th><th class="num">Taxable</th><th class="num">Tax %</th><th class="num">Amount</th></tr>
{{range $i, $l := .Lines}}
<tr>
  <td>{{inc $i}}</td>
  <td>{{$l.Name}}</td>
  <td>{{$l.HSN}}</td>
  <td class="num">{{$l.Quantity}}</td>
  <td>{{$l.Unit}}</td>
  <td class="num">{{money $l.Rate}}</td>
  <td class="num">{{money $l.Base}}</td>
  <td class="num">{{$l.TaxPercent}}</td>
  <td class="num">{{money $l.Total}}</td>
</tr>
{{end}}
</table>
<table>
<tr><th>HSN</th><th class="num">Taxable Value</th><th class="num">Rate</th><th class="num">Tax Amount</th></tr>
{{range .TaxGroups}}
<tr><td>{{.HSN}}</td><td class="num">{{money .TaxableValue}}</td><td class="num">{{.Rate}}</td><td class="num">{{money .TaxAmount}}</td></tr>
{{end}}
</table>
<table>
<tr><td>Subtotal</td><td class="num">{{money .Subtotal}}</td></tr>
<tr><td>Discount</td><td class="num">{{money .Discount}}</td></tr>
<tr><td>Total Tax</td><td class="num">{{money .TotalTax}}</td></tr>
<tr class="totals"><td>Grand Total</td><td class="num">{{money .GrandTotal}}</td></tr>
</table>
<div class="words">{{.AmountInWords}}</div>
</body>
</html>`
