package orders

import (
	"context"
	"fmt"
	"time"

	"hingmart/internal/core/tx"
	"hingmart/pkg/logger"
)

// AuditLogger records order mutations for the audit trail. Implementations
// live in infrastructure; a nil logger disables auditing.
type AuditLogger interface {
	LogOrderChange(ctx context.Context, action, orderID string, changes any) error
}

// AuditAction values recorded for order mutations.
const (
	AuditCreate = "create"
	AuditUpdate = "update"
	AuditDelete = "delete"
	AuditToggle = "status_toggle"
)

// Service provides business operations over the order collection.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     AuditLogger
	now       func() time.Time
}

// NewService creates a new order service. txManager may be tx.Noop{} for
// stores that are atomic per operation; audit may be nil.
func NewService(repo Repository, txManager tx.Manager, audit AuditLogger) *Service {
	if txManager == nil {
		txManager = tx.Noop{}
	}
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     audit,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create validates a draft and stores the resulting order. New orders go
// to the front of the list.
func (s *Service) Create(ctx context.Context, draft Draft) (*Order, error) {
	o, err := NewOrder(draft, s.now())
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, AuditCreate, o.ID, o)
	logger.Info(ctx, "order created",
		"order_id", o.ID,
		"customer", o.CustomerName,
		"total", o.TotalAmount)
	return o, nil
}

// Get retrieves a single order.
func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// List returns the filtered projection of the collection, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Order, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(list), nil
}

// Update merges a draft into the stored order, preserving id and createdAt
// and recomputing the total.
func (s *Service) Update(ctx context.Context, orderID string, draft Draft) (*Order, error) {
	existing, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	merged, err := ApplyDraft(existing, draft)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, merged)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, AuditUpdate, merged.ID, merged)
	logger.Info(ctx, "order updated", "order_id", merged.ID)
	return merged, nil
}

// Delete removes an order irreversibly.
func (s *Service) Delete(ctx context.Context, orderID string) error {
	if _, err := s.repo.GetByID(ctx, orderID); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, AuditDelete, orderID, nil)
	logger.Info(ctx, "order deleted", "order_id", orderID)
	return nil
}

// ToggleStatus flips one fulfillment flag under the guarded-transition
// policy and appends the timeline entry. A rejected transition leaves the
// stored order exactly as it was.
func (s *Service) ToggleStatus(ctx context.Context, orderID string, key StatusKey) (*Order, error) {
	existing, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := existing.ToggleStatus(key, s.now()); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, existing)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, AuditToggle, existing.ID, existing.Status)
	logger.Info(ctx, "order status toggled",
		"order_id", existing.ID,
		"status", string(key),
		"value", existing.Status.Get(key))
	return existing, nil
}

// ReplaceAll swaps the whole collection atomically, normalizing whatever
// revision the incoming records were stored in. Used by remote sync.
func (s *Service) ReplaceAll(ctx context.Context, list []*Order) error {
	NormalizeAll(list)
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceAll(ctx, list)
	})
}

// Stats is the dashboard aggregate over the order collection.
type Stats struct {
	TotalOrders   int      `json:"totalOrders"`
	TotalEarnings float64  `json:"totalEarnings"`
	TodayEarnings float64  `json:"todayEarnings"`
	UnpaidCount   int      `json:"unpaidCount"`
	RecentOrders  []*Order `json:"recentOrders"`
}

const recentOrdersLimit = 6

// Stats computes the dashboard aggregates in one pass over the list.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	todayKey := s.now().UTC().Format(TimeFormat)[:10]
	stats := &Stats{TotalOrders: len(list)}
	for _, o := range list {
		stats.TotalEarnings += o.TotalAmount
		if len(o.CreatedAt) >= 10 && o.CreatedAt[:10] == todayKey {
			stats.TodayEarnings += o.TotalAmount
		}
		if !o.Status.Paid {
			stats.UnpaidCount++
		}
	}
	if len(list) > recentOrdersLimit {
		stats.RecentOrders = list[:recentOrdersLimit]
	} else {
		stats.RecentOrders = list
	}
	return stats, nil
}

func (s *Service) recordAudit(ctx context.Context, action, orderID string, changes any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogOrderChange(ctx, action, orderID, changes); err != nil {
		logger.Warn(ctx, "audit log failed",
			"action", action,
			"order_id", orderID,
			"error", fmt.Sprintf("%v", err))
	}
}
