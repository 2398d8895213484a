package inventory

import (
	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/pharma/backend/internal/domain/shared/strategy"
)

// StockSettings holds the per-tenant inventory policy: costing method,
// rounding precision and the replenishment planning parameters.
type StockSettings struct {
	shared.TenantEntity
	ValuationMethod     strategy.ValuationMethod `gorm:"type:varchar(30);not null;default:'weighted_average'"`
	CostPrecision       int32                    `gorm:"not null;default:2"`
	ReorderLeadTimeDays int                      `gorm:"not null;default:7"`
	SafetyStockPct      int                      `gorm:"not null;default:20"`
	ReorderPointDays    int                      `gorm:"not null;default:10"`
	MinStockDays        int                      `gorm:"not null;default:7"`
	MaxStockDays        int                      `gorm:"not null;default:30"`
}

// TableName returns the table name for GORM
func (StockSettings) TableName() string {
	return "stock_settings"
}

// DefaultStockSettings returns the settings applied to tenants that have
// never saved their own.
func DefaultStockSettings(tenantID uuid.UUID) *StockSettings {
	return &StockSettings{
		TenantEntity:        shared.NewTenantEntity(tenantID),
		ValuationMethod:     strategy.ValuationMethodWeightedAverage,
		CostPrecision:       2,
		ReorderLeadTimeDays: 7,
		SafetyStockPct:      20,
		ReorderPointDays:    10,
		MinStockDays:        7,
		MaxStockDays:        30,
	}
}

// Validate checks the settings for consistency
func (s *StockSettings) Validate() error {
	if !s.ValuationMethod.IsValid() {
		return shared.NewDomainError("INVALID_VALUATION_METHOD", "Unknown valuation method: "+s.ValuationMethod.String())
	}
	if s.CostPrecision < 0 || s.CostPrecision > 8 {
		return shared.NewDomainError("INVALID_PRECISION", "Cost precision must be between 0 and 8")
	}
	if s.ReorderLeadTimeDays < 0 {
		return shared.NewDomainError("INVALID_LEAD_TIME", "Reorder lead time cannot be negative")
	}
	if s.SafetyStockPct < 0 {
		return shared.NewDomainError("INVALID_SAFETY_STOCK", "Safety stock percentage cannot be negative")
	}
	if s.ReorderPointDays < 0 {
		return shared.NewDomainError("INVALID_REORDER_POINT", "Static reorder point cannot be negative")
	}
	if s.MinStockDays <= 0 || s.MaxStockDays <= 0 {
		return shared.NewDomainError("INVALID_STOCK_DAYS", "Min and max stock days must be positive")
	}
	if s.MinStockDays > s.MaxStockDays {
		return shared.NewDomainError("INVALID_STOCK_DAYS", "Min stock days cannot exceed max stock days")
	}
	return nil
}
