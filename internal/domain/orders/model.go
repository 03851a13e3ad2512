// Package orders provides the order aggregate: line items, monetary
// computation, the fulfillment status machine, and the timeline audit trail.
package orders

import (
	"strings"
	"time"

	"hingmart/internal/core/apperror"
	"hingmart/internal/core/id"
	"hingmart/internal/core/types"
)

// TimeFormat is the wire format for createdAt and timeline timestamps.
// Timestamps are persisted as ISO-8601 strings and round-trip verbatim.
const TimeFormat = time.RFC3339

// StatusKey identifies one of the four fulfillment flags.
type StatusKey string

const (
	StatusReceived  StatusKey = "received"
	StatusCouriered StatusKey = "couriered"
	StatusDelivered StatusKey = "delivered"
	StatusPaid      StatusKey = "paid"
)

// statusChain is the prerequisite order for setting a flag: each key may be
// set only when the preceding key is already set.
var statusChain = []StatusKey{StatusReceived, StatusCouriered, StatusDelivered, StatusPaid}

// ValidStatusKey reports whether key names one of the four flags.
func ValidStatusKey(key StatusKey) bool {
	for _, k := range statusChain {
		if k == key {
			return true
		}
	}
	return false
}

// OrderStatus holds the four independent fulfillment flags.
type OrderStatus struct {
	Received  bool `json:"received"`
	Couriered bool `json:"couriered"`
	Delivered bool `json:"delivered"`
	Paid      bool `json:"paid"`
}

// NewOrderStatus returns the status of a freshly created order.
func NewOrderStatus() OrderStatus {
	return OrderStatus{Received: true}
}

// Get returns the flag named by key.
func (s OrderStatus) Get(key StatusKey) bool {
	switch key {
	case StatusReceived:
		return s.Received
	case StatusCouriered:
		return s.Couriered
	case StatusDelivered:
		return s.Delivered
	case StatusPaid:
		return s.Paid
	}
	return false
}

func (s *OrderStatus) set(key StatusKey, value bool) {
	switch key {
	case StatusReceived:
		s.Received = value
	case StatusCouriered:
		s.Couriered = value
	case StatusDelivered:
		s.Delivered = value
	case StatusPaid:
		s.Paid = value
	}
}

// TimelineEntry records one status toggle. Entries are appended on every
// successful toggle and never mutated or removed.
type TimelineEntry struct {
	Status    StatusKey `json:"status"`
	Timestamp string    `json:"timestamp"`
}

// OrderItem is one purchasable line. BaseTotal and Total are derived and
// recomputed on every mutation of quantity, unit, rate or tax; they are
// never independently settable.
type OrderItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit,omitempty"`
	Rate       float64 `json:"rate"`
	TaxPercent float64 `json:"tax"`
	HSN        string  `json:"hsn,omitempty"`
	BaseTotal  float64 `json:"baseTotal"`
	Total      float64 `json:"total"`
}

// Recompute refreshes the derived BaseTotal and Total from the item's
// quantity, rate and tax. Legacy unit-based items (zero quantity, numeric
// unit) derive the base from the unit count instead.
func (it *OrderItem) Recompute() {
	it.BaseTotal, it.Total = ItemTotals(it.EffectiveQuantity(), it.Rate, it.TaxPercent)
}

// EffectiveQuantity is the quantity used for amount math.
func (it *OrderItem) EffectiveQuantity() float64 {
	if it.Quantity != 0 {
		return it.Quantity
	}
	if u, ok := parseUnitCount(it.Unit); ok {
		return u
	}
	return it.Quantity
}

// Order is the aggregate root: a customer purchase with items, computed
// totals, fulfillment status, and the append-only timeline.
type Order struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customerName"`
	Phone        string          `json:"phone,omitempty"`
	Address      string          `json:"address,omitempty"`
	Items        []OrderItem     `json:"items"`
	Taxes        float64         `json:"taxes"`
	Discount     float64         `json:"discount"`
	TotalAmount  float64         `json:"totalAmount"`
	Notes        string          `json:"notes,omitempty"`
	Status       OrderStatus     `json:"status"`
	Timeline     []TimelineEntry `json:"timeline"`
	CreatedAt    string          `json:"createdAt"`
}

// NewOrder builds a validated Order from a draft. It assigns a fresh id and
// createdAt, recomputes all derived amounts, and drops items whose computed
// total is not positive.
func NewOrder(draft Draft, now time.Time) (*Order, error) {
	name := strings.TrimSpace(draft.CustomerName)
	if name == "" {
		return nil, apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	o := &Order{
		ID:           id.NewString(),
		CustomerName: name,
		Phone:        strings.TrimSpace(draft.Phone),
		Address:      strings.TrimSpace(draft.Address),
		Items:        prepareItems(draft.Items),
		Taxes:        clampZero(draft.Taxes),
		Discount:     clampZero(draft.Discount),
		Notes:        draft.Notes,
		Status:       NewOrderStatus(),
		Timeline:     []TimelineEntry{},
		CreatedAt:    now.UTC().Format(TimeFormat),
	}
	if draft.Status != nil {
		o.Status = *draft.Status
	}
	if draft.Timeline != nil {
		o.Timeline = append([]TimelineEntry{}, draft.Timeline...)
	}
	o.TotalAmount = OrderTotal(o.Items, o.Discount, o.Taxes)
	return o, nil
}

// ApplyDraft merges a draft into an existing order, preserving id and
// createdAt and recomputing the derived total. Fields absent from the
// draft's status/timeline keep the existing values.
func ApplyDraft(existing *Order, draft Draft) (*Order, error) {
	name := strings.TrimSpace(draft.CustomerName)
	if name == "" {
		return nil, apperror.NewValidation("customer name is required").
			WithDetail("field", "customerName")
	}

	merged := &Order{
		ID:           existing.ID,
		CustomerName: name,
		Phone:        strings.TrimSpace(draft.Phone),
		Address:      strings.TrimSpace(draft.Address),
		Items:        prepareItems(draft.Items),
		Taxes:        clampZero(draft.Taxes),
		Discount:     clampZero(draft.Discount),
		Notes:        draft.Notes,
		Status:       existing.Status,
		Timeline:     append([]TimelineEntry{}, existing.Timeline...),
		CreatedAt:    existing.CreatedAt,
	}
	if draft.Status != nil {
		merged.Status = *draft.Status
	}
	if draft.Timeline != nil {
		merged.Timeline = append([]TimelineEntry{}, draft.Timeline...)
	}
	merged.TotalAmount = OrderTotal(merged.Items, merged.Discount, merged.Taxes)
	return merged, nil
}

// Clone returns a deep copy of the order. Stores hand out clones so callers
// can never mutate shared state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	dup := *o
	dup.Items = append([]OrderItem{}, o.Items...)
	dup.Timeline = append([]TimelineEntry{}, o.Timeline...)
	return &dup
}

// prepareItems recomputes every item's derived totals, assigns missing item
// ids, and keeps only items with a positive computed total. Items with an
// empty name are dropped as well.
func prepareItems(items []OrderItem) []OrderItem {
	out := make([]OrderItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		it.Name = strings.TrimSpace(it.Name)
		it.Quantity = clampZero(it.Quantity)
		it.Rate = clampZero(it.Rate)
		it.TaxPercent = clampZero(it.TaxPercent)
		it.Recompute()
		if it.Total <= 0 {
			continue
		}
		if it.ID == "" {
			it.ID = id.NewString()
		}
		out = append(out, it)
	}
	return out
}

func clampZero(v float64) float64 {
	return types.Clamp(v)
}
