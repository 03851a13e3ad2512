package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hingmart/internal/domain/company"
	"hingmart/internal/domain/orders"
)

var summaryDate = time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)

func TestBuildSummary_LineMath(t *testing.T) {
	o := &orders.Order{
		ID:           "ord-1",
		CustomerName: "Asha Traders",
		Phone:        "9876543210",
		Address:      "12 Market Road",
		Items: []orders.OrderItem{
			{Name: "Hing 10g", HSN: "0910", Quantity: 2, Rate: 105, TaxPercent: 5},
			{Name: "Hing 50g", HSN: "0910", Quantity: 1, Rate: 450, TaxPercent: 5},
		},
	}

	s := BuildSummary(o, company.Default(), "INV-2026-00001", summaryDate)

	assert.Equal(t, "INV-2026-00001", s.InvoiceNumber)
	assert.Equal(t, "15/03/2026", s.InvoiceDate)
	assert.Equal(t, "Asha Traders", s.CustomerName)

	require.Len(t, s.Lines, 2)
	assert.InDelta(t, 210, s.Lines[0].Base, 1e-9)
	assert.InDelta(t, 10.5, s.Lines[0].TaxAmount, 1e-9)
	assert.InDelta(t, 220.5, s.Lines[0].Total, 1e-9)

	assert.InDelta(t, 3, s.TotalQuantity, 1e-9)
	assert.InDelta(t, 660, s.Subtotal, 1e-9)
	assert.InDelta(t, 33, s.TotalTax, 1e-9)
	assert.InDelta(t, 693, s.GrandTotal, 1e-9)
	assert.Equal(t, "Six Hundred Ninety Three Rupees Only", s.AmountInWords)
}

func TestBuildSummary_TaxGroups(t *testing.T) {
	o := &orders.Order{
		ID:           "ord-2",
		CustomerName: "Asha Traders",
		Items: []orders.OrderItem{
			{Name: "Hing 10g", HSN: "0910", Quantity: 1, Rate: 100, TaxPercent: 5},
			{Name: "Hing 50g", HSN: "0910", Quantity: 1, Rate: 200, TaxPercent: 12},
			{Name: "Jar", Quantity: 1, Rate: 50, TaxPercent: 18},
		},
	}

	s := BuildSummary(o, company.Default(), "", summaryDate)

	require.Len(t, s.TaxGroups, 2)

	// Sorted by HSN key; empty codes group under "-".
	assert.Equal(t, "-", s.TaxGroups[0].HSN)
	assert.InDelta(t, 50, s.TaxGroups[0].TaxableValue, 1e-9)
	assert.InDelta(t, 9, s.TaxGroups[0].TaxAmount, 1e-9)

	assert.Equal(t, "0910", s.TaxGroups[1].HSN)
	assert.Equal(t, 12.0, s.TaxGroups[1].Rate, "last rate seen wins")
	assert.InDelta(t, 300, s.TaxGroups[1].TaxableValue, 1e-9)
	assert.InDelta(t, 29, s.TaxGroups[1].TaxAmount, 1e-9)
}

func TestBuildSummary_NumberFallsBackToOrderID(t *testing.T) {
	o := &orders.Order{ID: "ord-3", CustomerName: "Asha Traders"}
	s := BuildSummary(o, company.Default(), "", summaryDate)
	assert.Equal(t, "ord-3", s.InvoiceNumber)
}

func TestBuildSummary_DiscountClampsGrandTotal(t *testing.T) {
	o := &orders.Order{
		ID:           "ord-4",
		CustomerName: "Asha Traders",
		Discount:     500,
		Items: []orders.OrderItem{
			{Name: "Hing 10g", Quantity: 1, Rate: 100},
		},
	}

	s := BuildSummary(o, company.Default(), "", summaryDate)

	assert.Zero(t, s.GrandTotal)
	assert.Equal(t, "Zero Rupees Only", s.AmountInWords)
}

func TestBuildSummary_LegacyUnitQuantity(t *testing.T) {
	o := &orders.Order{
		ID:           "ord-5",
		CustomerName: "Asha Traders",
		Items: []orders.OrderItem{
			{Name: "Hing 10g", Unit: "3", Rate: 100},
		},
	}

	s := BuildSummary(o, company.Default(), "", summaryDate)

	require.Len(t, s.Lines, 1)
	assert.InDelta(t, 300, s.Lines[0].Base, 1e-9)
	assert.InDelta(t, 3, s.TotalQuantity, 1e-9)
}
