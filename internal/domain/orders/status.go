package orders

import (
	"time"

	"hingmart/internal/core/apperror"
)

// The fulfillment pipeline is received → couriered → delivered → paid.
// A flag may be set only when its predecessor is already set; clearing a
// flag is always allowed. Every successful toggle appends exactly one
// timeline entry, so the same key may appear multiple times.

// CanSet reports whether key may be flipped from false to true given the
// current status.
func (s OrderStatus) CanSet(key StatusKey) bool {
	for i, k := range statusChain {
		if k != key {
			continue
		}
		if i == 0 {
			return true
		}
		return s.Get(statusChain[i-1])
	}
	return false
}

// ToggleStatus flips the named flag. Setting a flag whose prerequisite is
// not satisfied fails with an INVALID_TRANSITION error and leaves the order
// untouched: no flag change, no timeline entry.
func (o *Order) ToggleStatus(key StatusKey, now time.Time) error {
	if !ValidStatusKey(key) {
		return apperror.NewValidation("unknown status key").
			WithDetail("status", string(key))
	}

	current := o.Status.Get(key)
	if !current && !o.Status.CanSet(key) {
		return apperror.NewTransition("mark previous status first").
			WithDetail("status", string(key))
	}

	o.Status.set(key, !current)
	o.Timeline = append(o.Timeline, TimelineEntry{
		Status:    key,
		Timestamp: now.UTC().Format(TimeFormat),
	})
	return nil
}
