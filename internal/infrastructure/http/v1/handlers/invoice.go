package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hingmart/internal/domain/invoice"
	"hingmart/internal/infrastructure/document"
)

// InvoiceHandler produces invoice summaries and printable documents.
type InvoiceHandler struct {
	*BaseHandler
	service  *invoice.Service
	renderer document.Renderer
}

func NewInvoiceHandler(base *BaseHandler, service *invoice.Service, renderer document.Renderer) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
		renderer:    renderer,
	}
}

// Summary handles GET /orders/:id/invoice
func (h *InvoiceHandler) Summary(c *gin.Context) {
	summary, err := h.service.ForOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}

// Document handles GET /orders/:id/invoice/document
func (h *InvoiceHandler) Document(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.service.ForOrder(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	body, contentType, err := h.renderer.Render(ctx, summary)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, body)
}
