package orders

// Monetary computation is pure and deterministic: the same items, discount
// and tax settings always produce the same result. Amounts stay float64
// internally; rounding is a display concern.

// ItemTotals computes a line's derived amounts.
// baseTotal = quantity × rate; total = baseTotal × (1 + taxPercent/100).
// Negative inputs are clamped to zero before multiplying.
func ItemTotals(quantity, rate, taxPercent float64) (baseTotal, total float64) {
	quantity = clampZero(quantity)
	rate = clampZero(rate)
	taxPercent = clampZero(taxPercent)

	baseTotal = quantity * rate
	total = baseTotal + baseTotal*taxPercent/100
	return baseTotal, total
}

// Subtotal sums the per-item totals (post-tax in the per-item-tax revision).
func Subtotal(items []OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Total
	}
	return sum
}

// OrderTotal computes the final payable amount:
// max(0, subtotal + subtotal×orderTaxPercent/100 − discount).
// A discount larger than the subtotal clamps the result to zero.
func OrderTotal(items []OrderItem, discount, orderTaxPercent float64) float64 {
	subtotal := Subtotal(items)
	total := subtotal + subtotal*clampZero(orderTaxPercent)/100 - clampZero(discount)
	if total < 0 {
		return 0
	}
	return total
}

// TotalQuantity sums the item quantities (used by invoice summaries).
func TotalQuantity(items []OrderItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.EffectiveQuantity()
	}
	return sum
}
