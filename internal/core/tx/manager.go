// Package tx provides transaction management abstractions.
// Domain services depend on this interface, not on a concrete database;
// the postgres implementation lives in infrastructure/storage/postgres,
// and the embedded memory store satisfies the same atomicity contract
// with a single mutex-guarded critical section.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
type Manager interface {
	// RunInTransaction executes fn within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Noop is a Manager for stores that are atomic on their own (the embedded
// memory store locks per operation). It simply invokes fn.
type Noop struct{}

// RunInTransaction invokes fn directly.
func (Noop) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
