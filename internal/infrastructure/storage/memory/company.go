package memory

import (
	"context"
	"sync"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/company"
)

// CompanyStore is an in-memory company.Repository holding the singleton
// profile record.
type CompanyStore struct {
	mu      sync.RWMutex
	current *company.Company
}

func NewCompanyStore() *CompanyStore {
	return &CompanyStore{}
}

func (s *CompanyStore) Get(ctx context.Context) (*company.Company, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, apperror.NewNotFound("company", "company")
	}
	return s.current.Clone(), nil
}

func (s *CompanyStore) Save(ctx context.Context, c *company.Company) error {
	s.mu.Lock()
	s.current = c.Clone()
	s.mu.Unlock()
	return nil
}
