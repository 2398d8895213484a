package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Save appends a movement record
func (r *GormStockMovementRepository) Save(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// SumOutboundSince sums the outbound quantity of a product since a point in
// time. A product without movements yields zero.
func (r *GormStockMovementRepository) SumOutboundSince(ctx context.Context, tenantID, productID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("tenant_id = ? AND product_id = ? AND direction = ? AND occurred_at >= ?",
			tenantID, productID, inventory.MovementDirectionOut, since).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
