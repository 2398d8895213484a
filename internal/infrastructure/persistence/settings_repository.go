package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockSettingsRepository implements StockSettingsRepository using GORM
type GormStockSettingsRepository struct {
	db *gorm.DB
}

// NewGormStockSettingsRepository creates a new GormStockSettingsRepository
func NewGormStockSettingsRepository(db *gorm.DB) *GormStockSettingsRepository {
	return &GormStockSettingsRepository{db: db}
}

// FindByTenant returns the tenant's stock settings
func (r *GormStockSettingsRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*inventory.StockSettings, error) {
	var settings inventory.StockSettings
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save creates or updates the tenant's stock settings
func (r *GormStockSettingsRepository) Save(ctx context.Context, settings *inventory.StockSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(settings).Error
}
