package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/pharma/backend/internal/application/sales"
)

// POSHandler handles point-of-sale API endpoints
type POSHandler struct {
	BaseHandler
	saleService *salesapp.SaleService
}

// NewPOSHandler creates a new POSHandler
func NewPOSHandler(saleService *salesapp.SaleService) *POSHandler {
	return &POSHandler{saleService: saleService}
}

// RegisterRoutes registers POS routes
func (h *POSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pos := rg.Group("/pos")
	{
		pos.POST("/quotes", h.Quote)
		pos.POST("/sales", h.RecordSale)
		pos.GET("/sales", h.ListSales)
		pos.GET("/sales/:id", h.GetSale)
	}
}

// Quote prices a cart without recording anything
func (h *POSHandler) Quote(c *gin.Context) {
	var req salesapp.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pricing, err := h.saleService.QuoteCart(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, salesapp.ToPricingResponse(pricing))
}

// RecordSale finalizes a cart into a sale
func (h *POSHandler) RecordSale(c *gin.Context) {
	var req salesapp.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), getTenantID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, salesapp.ToSaleResponse(sale))
}

// GetSale returns a recorded sale by ID
func (h *POSHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), getTenantID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, salesapp.ToSaleResponse(sale))
}

// ListSales returns a page of recorded sales
func (h *POSHandler) ListSales(c *gin.Context) {
	var query salesapp.ListSalesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.saleService.ListSales(c.Request.Context(), getTenantID(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := make([]salesapp.SaleResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, salesapp.ToSaleResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, responses, page.Total, page.Page, page.PageSize)
}
