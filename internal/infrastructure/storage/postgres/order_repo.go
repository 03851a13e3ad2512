package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/orders"
)

var orderColumns = []string{
	"id", "customer_name", "phone", "address", "items",
	"taxes", "discount", "total_amount", "status", "timeline",
	"notes", "created_at",
}

// orderRow is the flat table shape. Items, status and timeline are JSONB
// documents so the schema survives item-shape changes without migrations.
type orderRow struct {
	ID           string  `db:"id"`
	CustomerName string  `db:"customer_name"`
	Phone        string  `db:"phone"`
	Address      string  `db:"address"`
	Items        []byte  `db:"items"`
	Taxes        float64 `db:"taxes"`
	Discount     float64 `db:"discount"`
	TotalAmount  float64 `db:"total_amount"`
	Status       []byte  `db:"status"`
	Timeline     []byte  `db:"timeline"`
	Notes        string  `db:"notes"`
	CreatedAt    string  `db:"created_at"`
}

// OrderRepo is the PostgreSQL orders.Repository.
type OrderRepo struct {
	txm *TxManager
}

var _ orders.Repository = (*OrderRepo)(nil)

func NewOrderRepo(txm *TxManager) *OrderRepo {
	return &OrderRepo{txm: txm}
}

func (r *OrderRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *OrderRepo) List(ctx context.Context) ([]*orders.Order, error) {
	sql, args, err := r.builder().
		Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []orderRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("list orders: %w", err))
	}

	out := make([]*orders.Order, 0, len(rows))
	for i := range rows {
		o, err := rows[i].toOrder()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepo) GetByID(ctx context.Context, orderID string) (*orders.Order, error) {
	sql, args, err := r.builder().
		Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row orderRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("order", orderID)
		}
		return nil, apperror.NewStorage(fmt.Errorf("get order: %w", err))
	}
	return row.toOrder()
}

func (r *OrderRepo) Create(ctx context.Context, o *orders.Order) error {
	row, err := toOrderRow(o)
	if err != nil {
		return err
	}

	sql, args, err := r.builder().
		Insert("orders").
		SetMap(row.setMap(true)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return apperror.NewStorage(fmt.Errorf("create order: %w", err))
	}
	return nil
}

func (r *OrderRepo) Update(ctx context.Context, o *orders.Order) error {
	row, err := toOrderRow(o)
	if err != nil {
		return err
	}

	sql, args, err := r.builder().
		Update("orders").
		SetMap(row.setMap(false)).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("update order: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("order", o.ID)
	}
	return nil
}

func (r *OrderRepo) Delete(ctx context.Context, orderID string) error {
	sql, args, err := r.builder().
		Delete("orders").
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("delete order: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("order", orderID)
	}
	return nil
}

// ReplaceAll swaps the entire order set inside one transaction.
func (r *OrderRepo) ReplaceAll(ctx context.Context, list []*orders.Order) error {
	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := r.txm.GetQuerier(ctx)
		if _, err := querier.Exec(ctx, "DELETE FROM orders"); err != nil {
			return apperror.NewStorage(fmt.Errorf("clear orders: %w", err))
		}
		for _, o := range list {
			if err := r.Create(ctx, o); err != nil {
				return err
			}
		}
		return nil
	})
}

func toOrderRow(o *orders.Order) (*orderRow, error) {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}
	status, err := json.Marshal(o.Status)
	if err != nil {
		return nil, fmt.Errorf("marshal status: %w", err)
	}
	timeline, err := json.Marshal(o.Timeline)
	if err != nil {
		return nil, fmt.Errorf("marshal timeline: %w", err)
	}
	return &orderRow{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Phone:        o.Phone,
		Address:      o.Address,
		Items:        items,
		Taxes:        o.Taxes,
		Discount:     o.Discount,
		TotalAmount:  o.TotalAmount,
		Status:       status,
		Timeline:     timeline,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
	}, nil
}

func (row *orderRow) setMap(includeID bool) map[string]any {
	m := map[string]any{
		"customer_name": row.CustomerName,
		"phone":         row.Phone,
		"address":       row.Address,
		"items":         row.Items,
		"taxes":         row.Taxes,
		"discount":      row.Discount,
		"total_amount":  row.TotalAmount,
		"status":        row.Status,
		"timeline":      row.Timeline,
		"notes":         row.Notes,
		"created_at":    row.CreatedAt,
	}
	if includeID {
		m["id"] = row.ID
	}
	return m
}

func (row *orderRow) toOrder() (*orders.Order, error) {
	o := &orders.Order{
		ID:           row.ID,
		CustomerName: row.CustomerName,
		Phone:        row.Phone,
		Address:      row.Address,
		Taxes:        row.Taxes,
		Discount:     row.Discount,
		TotalAmount:  row.TotalAmount,
		Notes:        row.Notes,
		CreatedAt:    row.CreatedAt,
	}
	if len(row.Items) > 0 {
		if err := json.Unmarshal(row.Items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	if len(row.Status) > 0 {
		if err := json.Unmarshal(row.Status, &o.Status); err != nil {
			return nil, fmt.Errorf("unmarshal status: %w", err)
		}
	}
	if len(row.Timeline) > 0 {
		if err := json.Unmarshal(row.Timeline, &o.Timeline); err != nil {
			return nil, fmt.Errorf("unmarshal timeline: %w", err)
		}
	}
	if o.Items == nil {
		o.Items = []orders.OrderItem{}
	}
	if o.Timeline == nil {
		o.Timeline = []orders.TimelineEntry{}
	}
	return o, nil
}
