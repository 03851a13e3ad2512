package handlers

import (
	"github.com/gin-gonic/gin"

	"hingmart/internal/domain/company"
)

// CompanyHandler handles the seller profile endpoints.
type CompanyHandler struct {
	*BaseHandler
	service *company.Service
}

func NewCompanyHandler(base *BaseHandler, service *company.Service) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Get handles GET /company
func (h *CompanyHandler) Get(c *gin.Context) {
	profile, err := h.service.Get(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, profile)
}

// Update handles PUT /company
func (h *CompanyHandler) Update(c *gin.Context) {
	var req company.Company
	if !h.BindJSON(c, &req) {
		return
	}

	profile, err := h.service.Update(c.Request.Context(), &req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, profile)
}
