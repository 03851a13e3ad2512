package dto

import (
	"hingmart/internal/domain/orders"
)

// OrderItemRequest is one line of an order payload.
type OrderItemRequest struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Rate       float64 `json:"rate"`
	TaxPercent float64 `json:"tax"`
	HSN        string  `json:"hsn"`
}

// OrderRequest creates or replaces an order.
type OrderRequest struct {
	CustomerName string              `json:"customerName" binding:"required"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Notes        string              `json:"notes"`
	Items        []OrderItemRequest  `json:"items"`
	Taxes        float64             `json:"taxes"`
	Discount     float64             `json:"discount"`
	Status       *orders.OrderStatus `json:"status,omitempty"`
}

// ToDraft converts the request to a domain draft.
func (r *OrderRequest) ToDraft() orders.Draft {
	items := make([]orders.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, orders.OrderItem{
			ID:         it.ID,
			Name:       it.Name,
			Quantity:   it.Quantity,
			Unit:       it.Unit,
			Rate:       it.Rate,
			TaxPercent: it.TaxPercent,
			HSN:        it.HSN,
		})
	}
	return orders.Draft{
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		Address:      r.Address,
		Notes:        r.Notes,
		Items:        items,
		Taxes:        r.Taxes,
		Discount:     r.Discount,
		Status:       r.Status,
	}
}

// ParseTextRequest carries a pasted order message.
type ParseTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListOrdersQuery holds list filter parameters.
type ListOrdersQuery struct {
	Filter string `form:"filter"`
}
