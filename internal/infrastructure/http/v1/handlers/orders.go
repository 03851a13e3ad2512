package handlers

import (
	"github.com/gin-gonic/gin"

	"hingmart/internal/domain/orders"
	"hingmart/internal/domain/textorder"
	"hingmart/internal/infrastructure/http/v1/dto"
)

// OrdersHandler handles order lifecycle endpoints.
type OrdersHandler struct {
	*BaseHandler
	service *orders.Service
}

func NewOrdersHandler(base *BaseHandler, service *orders.Service) *OrdersHandler {
	return &OrdersHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /orders?filter=pending
func (h *OrdersHandler) List(c *gin.Context) {
	filter := orders.ParseFilter(c.Query("filter"))

	list, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, list)
}

// Get handles GET /orders/:id
func (h *OrdersHandler) Get(c *gin.Context) {
	o, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, o)
}

// Create handles POST /orders
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.OrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.Create(c.Request.Context(), req.ToDraft())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(201, o)
}

// Update handles PUT /orders/:id
func (h *OrdersHandler) Update(c *gin.Context) {
	var req dto.OrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	o, err := h.service.Update(c.Request.Context(), c.Param("id"), req.ToDraft())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, o)
}

// Delete handles DELETE /orders/:id
func (h *OrdersHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// ReplaceAll handles PUT /orders (bulk replace, used by device sync).
func (h *OrdersHandler) ReplaceAll(c *gin.Context) {
	var list []*orders.Order
	if !h.BindJSON(c, &list) {
		return
	}

	if err := h.service.ReplaceAll(c.Request.Context(), list); err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, "orders replaced")
}

// ToggleStatus handles PATCH /orders/:id/status/:key
func (h *OrdersHandler) ToggleStatus(c *gin.Context) {
	o, err := h.service.ToggleStatus(c.Request.Context(),
		c.Param("id"), orders.StatusKey(c.Param("key")))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, o)
}

// Parse handles POST /orders/parse. The pasted message is converted into
// an order draft; nothing is persisted.
func (h *OrdersHandler) Parse(c *gin.Context) {
	var req dto.ParseTextRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.OK(c, textorder.Parse(req.Text))
}

// Stats handles GET /orders/stats
func (h *OrdersHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}
