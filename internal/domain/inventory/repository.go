package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLotRepository defines the interface for stock lot persistence
type StockLotRepository interface {
	// FindByIDForTenant finds a lot by ID for a specific tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockLot, error)

	// FindAvailableByProduct returns the lots of a product that still hold
	// stock, ordered by receipt date ascending. Exhausted lots are excluded
	// so they never skew valuation averages.
	FindAvailableByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]StockLot, error)

	// Save creates or updates a lot
	Save(ctx context.Context, lot *StockLot) error
}

// StockMovementRepository defines the interface for stock movement persistence
type StockMovementRepository interface {
	// Save appends a movement record
	Save(ctx context.Context, movement *StockMovement) error

	// SumOutboundSince sums the outbound quantity of a product since a
	// point in time. Products without history return zero, not an error.
	SumOutboundSince(ctx context.Context, tenantID, productID uuid.UUID, since time.Time) (decimal.Decimal, error)
}

// StockSettingsRepository defines the interface for stock settings persistence
type StockSettingsRepository interface {
	// FindByTenant returns the tenant's settings, or ErrNotFound when the
	// tenant has never saved any
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*StockSettings, error)

	// Save creates or updates the tenant's settings
	Save(ctx context.Context, settings *StockSettings) error
}
