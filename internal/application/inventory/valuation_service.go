package inventory

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/pharma/backend/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
)

const (
	// ReorderWindowDays is the trailing window for reorder point consumption
	ReorderWindowDays = 90
	// ConsumptionWindowDays is the trailing window for order quantity consumption
	ConsumptionWindowDays = 30
)

// ValuationPolicy holds the tenant-independent inventory fallbacks. The
// windows apply to every tenant; the method and precision only seed the
// defaults for tenants that never saved their own stock settings.
type ValuationPolicy struct {
	DefaultValuationMethod string
	DefaultCostPrecision   int32
	ReorderWindowDays      int
	ConsumptionWindowDays  int
}

// DefaultValuationPolicy returns the built-in policy
func DefaultValuationPolicy() ValuationPolicy {
	return ValuationPolicy{
		DefaultValuationMethod: strategy.ValuationMethodWeightedAverage.String(),
		DefaultCostPrecision:   2,
		ReorderWindowDays:      ReorderWindowDays,
		ConsumptionWindowDays:  ConsumptionWindowDays,
	}
}

// normalized fills unset or invalid policy fields from the built-in defaults
func (p ValuationPolicy) normalized() ValuationPolicy {
	defaults := DefaultValuationPolicy()
	if !strategy.ValuationMethod(p.DefaultValuationMethod).IsValid() {
		p.DefaultValuationMethod = defaults.DefaultValuationMethod
	}
	if p.DefaultCostPrecision < 0 || p.DefaultCostPrecision > 8 {
		p.DefaultCostPrecision = defaults.DefaultCostPrecision
	}
	if p.ReorderWindowDays <= 0 {
		p.ReorderWindowDays = defaults.ReorderWindowDays
	}
	if p.ConsumptionWindowDays <= 0 {
		p.ConsumptionWindowDays = defaults.ConsumptionWindowDays
	}
	return p
}

// ValuationStrategyProvider provides valuation strategies based on tenant configuration
type ValuationStrategyProvider interface {
	// GetValuationStrategy returns the valuation strategy for the given name
	GetValuationStrategy(name string) (strategy.LotValuationStrategy, error)
	// GetValuationStrategyOrDefault returns the valuation strategy for the given name, or default if not found
	GetValuationStrategyOrDefault(name string) strategy.LotValuationStrategy
}

// StockValuationService computes lot valuations and replenishment metrics.
// Each call operates on an independently fetched lot snapshot; concurrent
// calls for different products need no coordination, and a valuation can be
// stale relative to concurrent stock mutations.
type StockValuationService struct {
	lotRepo          inventory.StockLotRepository
	movementRepo     inventory.StockMovementRepository
	settingsRepo     inventory.StockSettingsRepository
	strategyProvider ValuationStrategyProvider
	policy           ValuationPolicy
}

// NewStockValuationService creates a new StockValuationService
func NewStockValuationService(
	lotRepo inventory.StockLotRepository,
	movementRepo inventory.StockMovementRepository,
	settingsRepo inventory.StockSettingsRepository,
	strategyProvider ValuationStrategyProvider,
	policy ValuationPolicy,
) *StockValuationService {
	return &StockValuationService{
		lotRepo:          lotRepo,
		movementRepo:     movementRepo,
		settingsRepo:     settingsRepo,
		strategyProvider: strategyProvider,
		policy:           policy.normalized(),
	}
}

// settingsOrDefault loads the tenant's stock settings, falling back to the
// defaults when none were ever saved. Fetch failures other than not-found
// propagate to the caller.
func (s *StockValuationService) settingsOrDefault(ctx context.Context, tenantID uuid.UUID) (*inventory.StockSettings, error) {
	settings, err := s.settingsRepo.FindByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			defaults := inventory.DefaultStockSettings(tenantID)
			defaults.ValuationMethod = strategy.ValuationMethod(s.policy.DefaultValuationMethod)
			defaults.CostPrecision = s.policy.DefaultCostPrecision
			return defaults, nil
		}
		return nil, err
	}
	return settings, nil
}

// CalculateValuation values a product's open lots using the tenant's
// configured costing method, or methodOverride when non-empty. A product
// with no open lots yields a zero valuation, not an error.
func (s *StockValuationService) CalculateValuation(ctx context.Context, tenantID, productID uuid.UUID, methodOverride string) (strategy.ValuationResult, error) {
	settings, err := s.settingsOrDefault(ctx, tenantID)
	if err != nil {
		return strategy.ValuationResult{}, err
	}

	var valuationStrategy strategy.LotValuationStrategy
	if methodOverride != "" {
		if !strategy.ValuationMethod(methodOverride).IsValid() {
			return strategy.ValuationResult{}, shared.NewDomainError("INVALID_VALUATION_METHOD", "Unknown valuation method: "+methodOverride)
		}
		valuationStrategy, err = s.strategyProvider.GetValuationStrategy(methodOverride)
		if err != nil {
			return strategy.ValuationResult{}, err
		}
	} else {
		// Stored methods are validated on save; anything unrecognized in an
		// old row falls back to the registry default rather than failing reads.
		valuationStrategy = s.strategyProvider.GetValuationStrategyOrDefault(settings.ValuationMethod.String())
	}

	lots, err := s.lotRepo.FindAvailableByProduct(ctx, tenantID, productID)
	if err != nil {
		return strategy.ValuationResult{}, err
	}

	return valuationStrategy.Valuate(ctx, productID.String(), toStrategyLots(lots), settings.CostPrecision)
}

// CalculateReorderPoint derives the reorder threshold from the trailing
// outbound history over the policy's reorder window (90 days by default).
// With no history it returns the tenant's static reorder point verbatim.
func (s *StockValuationService) CalculateReorderPoint(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	settings, err := s.settingsOrDefault(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	return s.reorderPoint(ctx, tenantID, productID, settings)
}

func (s *StockValuationService) reorderPoint(ctx context.Context, tenantID, productID uuid.UUID, settings *inventory.StockSettings) (int64, error) {
	since := time.Now().AddDate(0, 0, -s.policy.ReorderWindowDays)
	consumed, err := s.movementRepo.SumOutboundSince(ctx, tenantID, productID, since)
	if err != nil {
		return 0, err
	}

	if consumed.IsZero() {
		return int64(settings.ReorderPointDays), nil
	}

	avgDaily, _ := consumed.Div(decimal.NewFromInt(int64(s.policy.ReorderWindowDays))).Float64()
	leadDemand := avgDaily * float64(settings.ReorderLeadTimeDays)
	safetyStock := leadDemand * float64(settings.SafetyStockPct) / 100

	return int64(math.Ceil(leadDemand + safetyStock)), nil
}

// CalculateOptimalOrderQuantity suggests an order size from the consumption
// over the policy's window (30 days by default) and the geometric mean of the
// min and max stock-day targets. With no recent history it falls back to
// twice the reorder point.
func (s *StockValuationService) CalculateOptimalOrderQuantity(ctx context.Context, tenantID, productID uuid.UUID) (int64, error) {
	settings, err := s.settingsOrDefault(ctx, tenantID)
	if err != nil {
		return 0, err
	}

	since := time.Now().AddDate(0, 0, -s.policy.ConsumptionWindowDays)
	consumed, err := s.movementRepo.SumOutboundSince(ctx, tenantID, productID, since)
	if err != nil {
		return 0, err
	}

	if consumed.IsZero() {
		reorderPoint, err := s.reorderPoint(ctx, tenantID, productID, settings)
		if err != nil {
			return 0, err
		}
		return int64(math.Ceil(float64(reorderPoint) * 2)), nil
	}

	avgDaily30, _ := consumed.Div(decimal.NewFromInt(int64(s.policy.ConsumptionWindowDays))).Float64()
	optimalDays := math.Sqrt(float64(settings.MaxStockDays) * float64(settings.MinStockDays))

	return int64(math.Ceil(avgDaily30 * optimalDays)), nil
}

// RegisterReceipt records a received lot and its inbound movement
func (s *StockValuationService) RegisterReceipt(ctx context.Context, cmd RegisterReceiptCommand) (*inventory.StockLot, error) {
	quantity := decimal.NewFromFloat(cmd.Quantity)
	unitCost := decimal.NewFromFloat(cmd.UnitCost)

	lot, err := inventory.NewStockLot(cmd.TenantID, cmd.ProductID, cmd.LotNumber, quantity, unitCost, cmd.ReceivedAt, cmd.ExpiryDate)
	if err != nil {
		return nil, err
	}

	if err := s.lotRepo.Save(ctx, lot); err != nil {
		return nil, err
	}

	lotID := lot.ID
	movement, err := inventory.NewStockMovement(cmd.TenantID, cmd.ProductID, &lotID, inventory.MovementDirectionIn, quantity, unitCost, cmd.Reference)
	if err != nil {
		return nil, err
	}
	if err := s.movementRepo.Save(ctx, movement); err != nil {
		return nil, err
	}

	return lot, nil
}

// GetSettings returns the tenant's stock settings, with defaults applied
// when none are saved
func (s *StockValuationService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*inventory.StockSettings, error) {
	return s.settingsOrDefault(ctx, tenantID)
}

// UpdateSettings validates and saves the tenant's stock settings
func (s *StockValuationService) UpdateSettings(ctx context.Context, settings *inventory.StockSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.settingsRepo.Save(ctx, settings)
}

// toStrategyLots converts stored lots to the valuation input shape
func toStrategyLots(lots []inventory.StockLot) []strategy.Lot {
	result := make([]strategy.Lot, 0, len(lots))
	for _, lot := range lots {
		result = append(result, strategy.Lot{
			ID:         lot.ID.String(),
			ProductID:  lot.ProductID.String(),
			LotNumber:  lot.LotNumber,
			Quantity:   lot.RemainingQuantity,
			UnitCost:   lot.UnitCost,
			ReceivedAt: lot.ReceivedAt,
			ExpiryDate: lot.ExpiryDate,
		})
	}
	return result
}
