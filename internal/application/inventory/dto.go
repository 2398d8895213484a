package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

// RegisterReceiptCommand carries the inputs for recording a received lot
type RegisterReceiptCommand struct {
	TenantID   uuid.UUID
	ProductID  uuid.UUID
	LotNumber  string
	Quantity   float64
	UnitCost   float64
	ReceivedAt time.Time
	ExpiryDate *time.Time
	Reference  string
}

// LotValuationResponse represents one lot line of a valuation response
type LotValuationResponse struct {
	LotID      string          `json:"lot_id"`
	LotNumber  string          `json:"lot_number"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	Value      decimal.Decimal `json:"value"`
	ReceivedAt time.Time       `json:"received_at"`
}

// ValuationResponse represents a product valuation in API responses
type ValuationResponse struct {
	ProductID     string                 `json:"product_id"`
	Method        string                 `json:"method"`
	AverageCost   decimal.Decimal        `json:"average_cost"`
	TotalQuantity decimal.Decimal        `json:"total_quantity"`
	TotalValue    decimal.Decimal        `json:"total_value"`
	Lots          []LotValuationResponse `json:"lots"`
}

// ToValuationResponse converts a strategy result to the API response shape
func ToValuationResponse(result strategy.ValuationResult) ValuationResponse {
	lots := make([]LotValuationResponse, 0, len(result.Lots))
	for _, lot := range result.Lots {
		lots = append(lots, LotValuationResponse{
			LotID:      lot.LotID,
			LotNumber:  lot.LotNumber,
			Quantity:   lot.Quantity,
			UnitCost:   lot.UnitCost,
			Value:      lot.Value,
			ReceivedAt: lot.ReceivedAt,
		})
	}
	return ValuationResponse{
		ProductID:     result.ProductID,
		Method:        result.Method.String(),
		AverageCost:   result.AverageCost,
		TotalQuantity: result.TotalQuantity,
		TotalValue:    result.TotalValue,
		Lots:          lots,
	}
}

// ReorderPointResponse represents the reorder point for a product
type ReorderPointResponse struct {
	ProductID    uuid.UUID `json:"product_id"`
	ReorderPoint int64     `json:"reorder_point"`
}

// OrderSuggestionResponse represents the suggested order quantity for a product
type OrderSuggestionResponse struct {
	ProductID       uuid.UUID `json:"product_id"`
	OptimalOrderQty int64     `json:"optimal_order_qty"`
}

// StockSettingsResponse represents stock settings in API responses
type StockSettingsResponse struct {
	ValuationMethod     string `json:"valuation_method"`
	CostPrecision       int32  `json:"cost_precision"`
	ReorderLeadTimeDays int    `json:"reorder_lead_time_days"`
	SafetyStockPct      int    `json:"safety_stock_pct"`
	ReorderPointDays    int    `json:"reorder_point_days"`
	MinStockDays        int    `json:"min_stock_days"`
	MaxStockDays        int    `json:"max_stock_days"`
}

// ToStockSettingsResponse converts settings to the API response shape
func ToStockSettingsResponse(settings *inventory.StockSettings) StockSettingsResponse {
	return StockSettingsResponse{
		ValuationMethod:     settings.ValuationMethod.String(),
		CostPrecision:       settings.CostPrecision,
		ReorderLeadTimeDays: settings.ReorderLeadTimeDays,
		SafetyStockPct:      settings.SafetyStockPct,
		ReorderPointDays:    settings.ReorderPointDays,
		MinStockDays:        settings.MinStockDays,
		MaxStockDays:        settings.MaxStockDays,
	}
}

// LotResponse represents a stock lot in API responses
type LotResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	LotNumber         string          `json:"lot_number"`
	InitialQuantity   decimal.Decimal `json:"initial_quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	ReceivedAt        time.Time       `json:"received_at"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
}

// ToLotResponse converts a lot to the API response shape
func ToLotResponse(lot *inventory.StockLot) LotResponse {
	return LotResponse{
		ID:                lot.ID,
		ProductID:         lot.ProductID,
		LotNumber:         lot.LotNumber,
		InitialQuantity:   lot.InitialQuantity,
		RemainingQuantity: lot.RemainingQuantity,
		UnitCost:          lot.UnitCost,
		ReceivedAt:        lot.ReceivedAt,
		ExpiryDate:        lot.ExpiryDate,
	}
}
