package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockLot represents a received lot of a product with its own purchase
// cost and receipt date. Lot quantities are mutated by sale and receipt
// transactions; valuation reads them as an immutable snapshot.
type StockLot struct {
	shared.TenantEntity
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_lot_product"`
	LotNumber         string          `gorm:"type:varchar(100);not null"`
	InitialQuantity   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RemainingQuantity decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedAt        time.Time       `gorm:"not null;index"`
	ExpiryDate        *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (StockLot) TableName() string {
	return "stock_lots"
}

// NewStockLot creates a new stock lot from a receipt
func NewStockLot(tenantID, productID uuid.UUID, lotNumber string, quantity, unitCost decimal.Decimal, receivedAt time.Time, expiryDate *time.Time) (*StockLot, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Lot quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	return &StockLot{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		ProductID:         productID,
		LotNumber:         lotNumber,
		InitialQuantity:   quantity,
		RemainingQuantity: quantity,
		UnitCost:          unitCost,
		ReceivedAt:        receivedAt,
		ExpiryDate:        expiryDate,
	}, nil
}

// HasStock returns true if the lot has remaining quantity
func (l *StockLot) HasStock() bool {
	return l.RemainingQuantity.IsPositive()
}

// IsExpired returns true if the lot has passed its expiry date
func (l *StockLot) IsExpired() bool {
	if l.ExpiryDate == nil {
		return false
	}
	return l.ExpiryDate.Before(time.Now())
}

// Deduct reduces the remaining quantity.
// Returns the actual quantity deducted, which may be less than requested
// when the lot holds less than asked for.
func (l *StockLot) Deduct(quantity decimal.Decimal) decimal.Decimal {
	if quantity.GreaterThan(l.RemainingQuantity) {
		deducted := l.RemainingQuantity
		l.RemainingQuantity = decimal.Zero
		l.UpdatedAt = time.Now()
		return deducted
	}

	l.RemainingQuantity = l.RemainingQuantity.Sub(quantity)
	l.UpdatedAt = time.Now()
	return quantity
}

// Restock increases the remaining quantity (for returns or adjustments)
func (l *StockLot) Restock(quantity decimal.Decimal) {
	l.RemainingQuantity = l.RemainingQuantity.Add(quantity)
	l.UpdatedAt = time.Now()
}

// TotalValue returns the remaining quantity valued at the lot's own cost
func (l *StockLot) TotalValue() decimal.Decimal {
	return l.RemainingQuantity.Mul(l.UnitCost)
}
