package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/pharma/backend/internal/application/inventory"
	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/shared/strategy"
)

// ReceiptRequest represents a request to register a received lot
type ReceiptRequest struct {
	ProductID  uuid.UUID  `json:"product_id" binding:"required"`
	LotNumber  string     `json:"lot_number" binding:"required"`
	Quantity   float64    `json:"quantity" binding:"required,gt=0"`
	UnitCost   float64    `json:"unit_cost" binding:"gte=0"`
	ReceivedAt *time.Time `json:"received_at"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Reference  string     `json:"reference"`
}

// UpdateStockSettingsRequest represents a stock settings update
type UpdateStockSettingsRequest struct {
	ValuationMethod     string `json:"valuation_method" binding:"required"`
	CostPrecision       int32  `json:"cost_precision"`
	ReorderLeadTimeDays int    `json:"reorder_lead_time_days"`
	SafetyStockPct      int    `json:"safety_stock_pct"`
	ReorderPointDays    int    `json:"reorder_point_days"`
	MinStockDays        int    `json:"min_stock_days" binding:"required,gt=0"`
	MaxStockDays        int    `json:"max_stock_days" binding:"required,gt=0"`
}

// InventoryHandler handles inventory valuation and replenishment endpoints
type InventoryHandler struct {
	BaseHandler
	valuationService *inventoryapp.StockValuationService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(valuationService *inventoryapp.StockValuationService) *InventoryHandler {
	return &InventoryHandler{valuationService: valuationService}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.POST("/receipts", h.RegisterReceipt)
		inv.GET("/products/:id/valuation", h.GetValuation)
		inv.GET("/products/:id/reorder-point", h.GetReorderPoint)
		inv.GET("/products/:id/order-suggestion", h.GetOrderSuggestion)
		inv.GET("/settings", h.GetSettings)
		inv.PUT("/settings", h.UpdateSettings)
	}
}

// RegisterReceipt records a received lot and its inbound movement
func (h *InventoryHandler) RegisterReceipt(c *gin.Context) {
	var req ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receivedAt := time.Time{}
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	lot, err := h.valuationService.RegisterReceipt(c.Request.Context(), inventoryapp.RegisterReceiptCommand{
		TenantID:   getTenantID(c),
		ProductID:  req.ProductID,
		LotNumber:  req.LotNumber,
		Quantity:   req.Quantity,
		UnitCost:   req.UnitCost,
		ReceivedAt: receivedAt,
		ExpiryDate: req.ExpiryDate,
		Reference:  req.Reference,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, inventoryapp.ToLotResponse(lot))
}

// GetValuation returns the valuation of a product's open lots.
// The optional method query parameter overrides the tenant's costing method.
func (h *InventoryHandler) GetValuation(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.valuationService.CalculateValuation(c.Request.Context(), getTenantID(c), productID, c.Query("method"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inventoryapp.ToValuationResponse(result))
}

// GetReorderPoint returns the derived reorder threshold for a product
func (h *InventoryHandler) GetReorderPoint(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	point, err := h.valuationService.CalculateReorderPoint(c.Request.Context(), getTenantID(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inventoryapp.ReorderPointResponse{ProductID: productID, ReorderPoint: point})
}

// GetOrderSuggestion returns the suggested order quantity for a product
func (h *InventoryHandler) GetOrderSuggestion(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	qty, err := h.valuationService.CalculateOptimalOrderQuantity(c.Request.Context(), getTenantID(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inventoryapp.OrderSuggestionResponse{ProductID: productID, OptimalOrderQty: qty})
}

// GetSettings returns the tenant's stock settings
func (h *InventoryHandler) GetSettings(c *gin.Context) {
	settings, err := h.valuationService.GetSettings(c.Request.Context(), getTenantID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inventoryapp.ToStockSettingsResponse(settings))
}

// UpdateSettings validates and saves the tenant's stock settings
func (h *InventoryHandler) UpdateSettings(c *gin.Context) {
	var req UpdateStockSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenantID := getTenantID(c)
	settings := inventory.DefaultStockSettings(tenantID)
	settings.ValuationMethod = strategy.ValuationMethod(req.ValuationMethod)
	settings.CostPrecision = req.CostPrecision
	settings.ReorderLeadTimeDays = req.ReorderLeadTimeDays
	settings.SafetyStockPct = req.SafetyStockPct
	settings.ReorderPointDays = req.ReorderPointDays
	settings.MinStockDays = req.MinStockDays
	settings.MaxStockDays = req.MaxStockDays

	if err := h.valuationService.UpdateSettings(c.Request.Context(), settings); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inventoryapp.ToStockSettingsResponse(settings))
}
