package company

import "context"

// Repository stores the single company record.
type Repository interface {
	// Get returns the current record, or a NOT_FOUND error when no record
	// has been saved yet.
	Get(ctx context.Context) (*Company, error)
	// Save creates or replaces the record.
	Save(ctx context.Context, c *Company) error
}
