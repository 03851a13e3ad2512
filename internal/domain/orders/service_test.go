package orders_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/orders"
	"hingmart/internal/infrastructure/storage/memory"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestService() (*orders.Service, *memory.OrderStore) {
	store := memory.NewOrderStore()
	return orders.NewService(store, nil, nil), store
}

func TestService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, orders.Draft{
		CustomerName: "Asha Traders",
		Items:        []orders.OrderItem{{Name: "Hing 10g", Quantity: 2, Rate: 100, TaxPercent: 5}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.InDelta(t, 210, got.TotalAmount, 1e-9)
}

func TestService_GetMissing(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Get(context.Background(), "no-such-order")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_ListNewestFirstWithFilter(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	first, err := svc.Create(ctx, orders.Draft{CustomerName: "First"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, orders.Draft{CustomerName: "Second"})
	require.NoError(t, err)

	list, err := svc.List(ctx, orders.FilterAll)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	for _, key := range []orders.StatusKey{orders.StatusCouriered, orders.StatusDelivered, orders.StatusPaid} {
		_, err = svc.ToggleStatus(ctx, first.ID, key)
		require.NoError(t, err)
	}

	unpaid, err := svc.List(ctx, orders.FilterUnpaid)
	require.NoError(t, err)
	require.Len(t, unpaid, 1)
	assert.Equal(t, second.ID, unpaid[0].ID)

	delivered, err := svc.List(ctx, orders.FilterDelivered)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, first.ID, delivered[0].ID)
}

func TestService_UpdatePreservesIdentity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, orders.Draft{
		CustomerName: "Asha Traders",
		Items:        []orders.OrderItem{{Name: "Hing 10g", Quantity: 2, Rate: 100}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, orders.Draft{
		CustomerName: "Asha Traders",
		Items:        []orders.OrderItem{{Name: "Hing 50g", Quantity: 1, Rate: 450}},
		Discount:     50,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.InDelta(t, 400, updated.TotalAmount, 1e-9)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 400, stored.TotalAmount, 1e-9)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, orders.Draft{CustomerName: "Asha Traders"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, apperror.IsNotFound(err))

	err = svc.Delete(ctx, created.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_ToggleStatusRejectionLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.Create(ctx, orders.Draft{CustomerName: "Asha Traders"})
	require.NoError(t, err)

	_, err = svc.ToggleStatus(ctx, created.ID, orders.StatusPaid)
	require.Error(t, err)
	assert.True(t, apperror.IsTransition(err))

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.Status.Paid)
	assert.Empty(t, stored.Timeline)
}

func TestService_ToggleStatusPersistsTimeline(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewOrderStore()
	svc := orders.NewService(store, nil, nil).WithClock(fixedClock(now))

	created, err := svc.Create(ctx, orders.Draft{CustomerName: "Asha Traders"})
	require.NoError(t, err)

	toggled, err := svc.ToggleStatus(ctx, created.ID, orders.StatusCouriered)
	require.NoError(t, err)
	assert.True(t, toggled.Status.Couriered)

	stored, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Timeline, 1)
	assert.Equal(t, orders.StatusCouriered, stored.Timeline[0].Status)
	assert.Equal(t, now.Format(orders.TimeFormat), stored.Timeline[0].Timestamp)
}

func TestService_ReplaceAllNormalizes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.Create(ctx, orders.Draft{CustomerName: "Old"})
	require.NoError(t, err)

	// A record from an older revision: unit-based quantity, stale total.
	incoming := []*orders.Order{{
		ID:           "legacy-1",
		CustomerName: "Legacy Traders",
		Items: []orders.OrderItem{
			{ID: "i1", Name: "Hing 10g", Unit: "3", Rate: 100, Total: 1},
		},
		CreatedAt: "2025-12-31T09:00:00Z",
	}}

	require.NoError(t, svc.ReplaceAll(ctx, incoming))

	list, err := svc.List(ctx, orders.FilterAll)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "legacy-1", list[0].ID)
	assert.InDelta(t, 300, list[0].Items[0].Total, 1e-9)
	assert.InDelta(t, 300, list[0].TotalAmount, 1e-9)
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	store := memory.NewOrderStore()
	svc := orders.NewService(store, nil, nil).WithClock(fixedClock(now))

	yesterday := &orders.Order{
		ID:           "yesterday",
		CustomerName: "Old Customer",
		Items:        []orders.OrderItem{{ID: "i1", Name: "Hing 50g", Quantity: 1, Rate: 500}},
		Status:       orders.OrderStatus{Received: true, Couriered: true, Delivered: true, Paid: true},
		CreatedAt:    "2026-03-01T18:00:00Z",
	}
	require.NoError(t, svc.ReplaceAll(ctx, []*orders.Order{yesterday}))

	var lastID string
	for i := 0; i < 7; i++ {
		o, err := svc.Create(ctx, orders.Draft{
			CustomerName: fmt.Sprintf("Customer %d", i),
			Items:        []orders.OrderItem{{Name: "Hing 10g", Quantity: 1, Rate: 100}},
		})
		require.NoError(t, err)
		lastID = o.ID
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, stats.TotalOrders)
	assert.InDelta(t, 1200, stats.TotalEarnings, 1e-9)
	assert.InDelta(t, 700, stats.TodayEarnings, 1e-9)
	assert.Equal(t, 7, stats.UnpaidCount)
	require.Len(t, stats.RecentOrders, 6)
	assert.Equal(t, lastID, stats.RecentOrders[0].ID)
}
