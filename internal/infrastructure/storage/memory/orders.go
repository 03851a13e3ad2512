// Package memory provides in-process storage backends. They power the
// standalone (offline) mode and the test suites; the postgres package is
// the durable twin with the same repository contracts.
package memory

import (
	"context"
	"sync"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/orders"
)

// OrderStore is an in-memory orders.Repository. Orders are kept newest
// first; all reads return deep copies.
type OrderStore struct {
	mu     sync.RWMutex
	orders []*orders.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{}
}

func (s *OrderStore) List(ctx context.Context) ([]*orders.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*orders.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (s *OrderStore) GetByID(ctx context.Context, orderID string) (*orders.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(orderID); i >= 0 {
		return s.orders[i].Clone(), nil
	}
	return nil, apperror.NewNotFound("order", orderID)
}

func (s *OrderStore) Create(ctx context.Context, o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(o.ID) >= 0 {
		return apperror.NewConflict("order already exists").WithDetail("id", o.ID)
	}
	s.orders = append([]*orders.Order{o.Clone()}, s.orders...)
	return nil
}

func (s *OrderStore) Update(ctx context.Context, o *orders.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(o.ID)
	if i < 0 {
		return apperror.NewNotFound("order", o.ID)
	}
	s.orders[i] = o.Clone()
	return nil
}

func (s *OrderStore) Delete(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(orderID)
	if i < 0 {
		return apperror.NewNotFound("order", orderID)
	}
	s.orders = append(s.orders[:i], s.orders[i+1:]...)
	return nil
}

// ReplaceAll swaps the entire order set in one step. Readers never observe
// a partially replaced list.
func (s *OrderStore) ReplaceAll(ctx context.Context, list []*orders.Order) error {
	next := make([]*orders.Order, 0, len(list))
	for _, o := range list {
		next = append(next, o.Clone())
	}

	s.mu.Lock()
	s.orders = next
	s.mu.Unlock()
	return nil
}

// indexOf must be called with the lock held.
func (s *OrderStore) indexOf(orderID string) int {
	for i, o := range s.orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}
