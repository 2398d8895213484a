package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MovementDirection is the direction of a stock movement
type MovementDirection string

const (
	MovementDirectionIn  MovementDirection = "in"
	MovementDirectionOut MovementDirection = "out"
)

// IsValid checks if the direction is a valid MovementDirection
func (d MovementDirection) IsValid() bool {
	return d == MovementDirectionIn || d == MovementDirectionOut
}

// String returns the string representation of MovementDirection
func (d MovementDirection) String() string {
	return string(d)
}

// StockMovement is an append-only record of stock entering or leaving.
// Outbound movements feed the consumption history used for reorder metrics.
type StockMovement struct {
	shared.TenantEntity
	ProductID  uuid.UUID         `gorm:"type:uuid;not null;index:idx_movement_product"`
	LotID      *uuid.UUID        `gorm:"type:uuid;index"`
	Direction  MovementDirection `gorm:"type:varchar(10);not null"`
	Quantity   decimal.Decimal   `gorm:"type:decimal(12,2);not null"`
	UnitCost   decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Reference  string            `gorm:"type:varchar(100)"`
	OccurredAt time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(tenantID, productID uuid.UUID, lotID *uuid.UUID, direction MovementDirection, quantity, unitCost decimal.Decimal, reference string) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Unknown movement direction: "+direction.String())
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}

	return &StockMovement{
		TenantEntity: shared.NewTenantEntity(tenantID),
		ProductID:    productID,
		LotID:        lotID,
		Direction:    direction,
		Quantity:     quantity,
		UnitCost:     unitCost,
		Reference:    reference,
		OccurredAt:   time.Now(),
	}, nil
}
