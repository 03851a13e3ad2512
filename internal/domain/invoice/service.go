package invoice

import (
	"context"
	"time"

	"hingmart/internal/domain/company"
	"hingmart/internal/domain/orders"
	"hingmart/pkg/logger"
	"hingmart/pkg/numerator"
)

// Service builds invoice summaries for orders. Numbers come from the
// numerator with a yearly INV sequence.
type Service struct {
	orders    *orders.Service
	company   *company.Service
	numbering *numerator.Service
	now       func() time.Time
}

func NewService(ordersSvc *orders.Service, companySvc *company.Service, numbering *numerator.Service) *Service {
	return &Service{
		orders:    ordersSvc,
		company:   companySvc,
		numbering: numbering,
		now:       time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ForOrder builds the invoice summary for an order. When no numerator is
// configured the order id doubles as the invoice number.
func (s *Service) ForOrder(ctx context.Context, orderID string) (*Summary, error) {
	o, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	c, err := s.company.Get(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var number string
	if s.numbering != nil {
		number, err = s.numbering.Next(ctx, numerator.DefaultConfig("INV"), now)
		if err != nil {
			// A numbering failure should not block the document.
			logger.Warn(ctx, "invoice numbering failed, falling back to order id",
				"order_id", orderID, "error", err)
			number = ""
		}
	}

	return BuildSummary(o, c, number, now), nil
}
