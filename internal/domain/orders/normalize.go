package orders

import (
	"strconv"
	"strings"

	"hingmart/internal/core/id"
)

// The app has shipped several storage revisions: order-level tax vs
// per-item tax, quantity-based vs unit-based line amounts, and records
// where derived totals were stored but never revalidated. Normalize folds
// whatever shape was loaded into the current model, recomputing every
// derived field from its inputs. Stored totals are never trusted.

// Normalize rewrites a loaded order in place into the current revision.
func Normalize(o *Order) {
	if o == nil {
		return
	}
	o.Taxes = clampZero(o.Taxes)
	o.Discount = clampZero(o.Discount)

	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = id.NewString()
		}
		it.Quantity = clampZero(it.Quantity)
		it.Rate = clampZero(it.Rate)
		it.TaxPercent = clampZero(it.TaxPercent)
		it.Recompute()
	}

	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	if o.Timeline == nil {
		o.Timeline = []TimelineEntry{}
	}
	o.TotalAmount = OrderTotal(o.Items, o.Discount, o.Taxes)
}

// NormalizeAll normalizes a loaded collection in place and returns it.
func NormalizeAll(list []*Order) []*Order {
	for _, o := range list {
		Normalize(o)
	}
	return list
}

// parseUnitCount interprets the legacy free-text unit qualifier as a piece
// count. Only plain positive numbers count; anything else ("pcs", "box")
// is a label, not a multiplier.
func parseUnitCount(unit string) (float64, bool) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(unit, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
