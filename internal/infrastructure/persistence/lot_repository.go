package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockLotRepository implements StockLotRepository using GORM
type GormStockLotRepository struct {
	db *gorm.DB
}

// NewGormStockLotRepository creates a new GormStockLotRepository
func NewGormStockLotRepository(db *gorm.DB) *GormStockLotRepository {
	return &GormStockLotRepository{db: db}
}

// FindByIDForTenant finds a lot by ID within a tenant
func (r *GormStockLotRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockLot, error) {
	var lot inventory.StockLot
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&lot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lot, nil
}

// FindAvailableByProduct returns the product's lots that still hold stock,
// oldest receipt first. Exhausted lots are filtered out here so valuation
// never sees them.
func (r *GormStockLotRepository) FindAvailableByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockLot, error) {
	var lots []inventory.StockLot
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ? AND remaining_quantity > 0", tenantID, productID).
		Order("received_at ASC").
		Find(&lots).Error; err != nil {
		return nil, err
	}
	return lots, nil
}

// Save creates or updates a lot
func (r *GormStockLotRepository) Save(ctx context.Context, lot *inventory.StockLot) error {
	return r.db.WithContext(ctx).Save(lot).Error
}
