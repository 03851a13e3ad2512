package orders

import (
	"context"
)

// Filter selects a read-only projection of the order list. Filters are
// pure predicates over the collection, never stored state.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterDelivered Filter = "delivered"
	FilterUnpaid    Filter = "unpaid"
)

// ParseFilter maps a query value onto a filter, defaulting to all.
func ParseFilter(s string) Filter {
	switch Filter(s) {
	case FilterPending, FilterDelivered, FilterUnpaid:
		return Filter(s)
	default:
		return FilterAll
	}
}

// Match reports whether the order belongs to the filtered view.
func (f Filter) Match(o *Order) bool {
	switch f {
	case FilterPending:
		return !o.Status.Delivered
	case FilterDelivered:
		return o.Status.Delivered
	case FilterUnpaid:
		return !o.Status.Paid
	default:
		return true
	}
}

// Apply returns the orders matching the filter, preserving input order.
func (f Filter) Apply(list []*Order) []*Order {
	if f == FilterAll || f == "" {
		return list
	}
	out := make([]*Order, 0, len(list))
	for _, o := range list {
		if f.Match(o) {
			out = append(out, o)
		}
	}
	return out
}

// Repository is the persistence contract for the order collection. Each
// operation is atomic with respect to the collection: a reader never
// observes a partially applied mutation. List returns newest first.
//
// Implementations: the embedded memory store, the postgres store, and the
// remote HTTP client. Failures surface as apperror values
// (NOT_FOUND / STORAGE_ERROR / NETWORK_ERROR) and are never retried here.
type Repository interface {
	List(ctx context.Context) ([]*Order, error)
	GetByID(ctx context.Context, orderID string) (*Order, error)
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	Delete(ctx context.Context, orderID string) error

	// ReplaceAll swaps the whole collection in one atomic step. Used when
	// re-synchronizing from a remote source.
	ReplaceAll(ctx context.Context, list []*Order) error
}
