// Package invoice derives printable delivery-challan summaries from orders.
// All amounts are recomputed from item quantities and rates so the document
// stays consistent even when a stored order predates a pricing change.
package invoice

import (
	"fmt"
	"sort"
	"time"

	"hingmart/internal/core/types"
	"hingmart/internal/domain/company"
	"hingmart/internal/domain/orders"
)

// Line is a single invoice row.
type Line struct {
	Name       string  `json:"name"`
	HSN        string  `json:"hsn,omitempty"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit,omitempty"`
	Rate       float64 `json:"rate"`
	Base       float64 `json:"base"`
	TaxPercent float64 `json:"tax"`
	TaxAmount  float64 `json:"taxAmount"`
	Total      float64 `json:"total"`
}

// TaxGroup aggregates taxable value per HSN code. When items under the same
// code carry different rates the last one seen wins, matching how the rows
// are keyed on the printed document.
type TaxGroup struct {
	HSN          string  `json:"hsn"`
	Rate         float64 `json:"rate"`
	TaxableValue float64 `json:"taxableValue"`
	TaxAmount    float64 `json:"taxAmount"`
}

// Summary is the complete document model handed to renderers.
type Summary struct {
	InvoiceNumber string           `json:"invoiceNumber"`
	InvoiceDate   string           `json:"invoiceDate"`
	Company       *company.Company `json:"company,omitempty"`
	CustomerName  string           `json:"customerName"`
	Phone         string           `json:"phone,omitempty"`
	Address       string           `json:"address,omitempty"`
	Lines         []Line           `json:"lines"`
	TaxGroups     []TaxGroup       `json:"taxSummary"`
	TotalQuantity float64          `json:"totalQuantity"`
	Subtotal      float64          `json:"subtotal"`
	Discount      float64          `json:"discount"`
	TotalTax      float64          `json:"totalTax"`
	GrandTotal    float64          `json:"grandTotal"`
	AmountInWords string           `json:"amountInWords"`
}

// BuildSummary computes the challan for an order. The invoice number is
// supplied by the caller; an empty number falls back to the order id.
func BuildSummary(o *orders.Order, c *company.Company, number string, now time.Time) *Summary {
	if number == "" {
		number = o.ID
	}
	s := &Summary{
		InvoiceNumber: number,
		InvoiceDate:   now.Format("02/01/2006"),
		Company:       c.Clone(),
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		Address:       o.Address,
		Lines:         make([]Line, 0, len(o.Items)),
		Discount:      types.Round2(o.Discount),
	}

	groups := map[string]*TaxGroup{}
	for _, item := range o.Items {
		base, total := orders.ItemTotals(item.EffectiveQuantity(), item.Rate, item.TaxPercent)
		taxAmount := total - base
		line := Line{
			Name:       item.Name,
			HSN:        item.HSN,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			Rate:       types.Round2(item.Rate),
			Base:       types.Round2(base),
			TaxPercent: item.TaxPercent,
			TaxAmount:  types.Round2(taxAmount),
			Total:      types.Round2(total),
		}
		s.Lines = append(s.Lines, line)
		s.TotalQuantity += item.EffectiveQuantity()
		s.Subtotal += base
		s.TotalTax += taxAmount

		key := item.HSN
		if key == "" {
			key = "-"
		}
		g, ok := groups[key]
		if !ok {
			g = &TaxGroup{HSN: key}
			groups[key] = g
		}
		g.Rate = item.TaxPercent
		g.TaxableValue += base
		g.TaxAmount += taxAmount
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g := groups[k]
		g.TaxableValue = types.Round2(g.TaxableValue)
		g.TaxAmount = types.Round2(g.TaxAmount)
		s.TaxGroups = append(s.TaxGroups, *g)
	}

	grand := s.Subtotal - s.Discount + s.TotalTax
	if grand < 0 {
		grand = 0
	}
	s.Subtotal = types.Round2(s.Subtotal)
	s.TotalTax = types.Round2(s.TotalTax)
	s.GrandTotal = types.Round2(grand)
	s.AmountInWords = fmt.Sprintf("%s Rupees Only", AmountInWords(s.GrandTotal))
	return s
}
