package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/pharma/backend/internal/domain/shared/strategy"
	strategyinfra "github.com/pharma/backend/internal/infrastructure/strategy"
)

type fakeLotRepo struct {
	lots  []inventory.StockLot
	saved []*inventory.StockLot
	err   error
}

func (f *fakeLotRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockLot, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeLotRepo) FindAvailableByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockLot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lots, nil
}

func (f *fakeLotRepo) Save(ctx context.Context, lot *inventory.StockLot) error {
	f.saved = append(f.saved, lot)
	return f.err
}

type fakeMovementRepo struct {
	outbound decimal.Decimal
	saved    []*inventory.StockMovement
	err      error
}

func (f *fakeMovementRepo) Save(ctx context.Context, movement *inventory.StockMovement) error {
	f.saved = append(f.saved, movement)
	return f.err
}

func (f *fakeMovementRepo) SumOutboundSince(ctx context.Context, tenantID, productID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return f.outbound, nil
}

type fakeSettingsRepo struct {
	settings *inventory.StockSettings
	saved    *inventory.StockSettings
	err      error
}

func (f *fakeSettingsRepo) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*inventory.StockSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.settings == nil {
		return nil, shared.ErrNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, settings *inventory.StockSettings) error {
	f.saved = settings
	return nil
}

func newTestService(t *testing.T, lotRepo *fakeLotRepo, movementRepo *fakeMovementRepo, settingsRepo *fakeSettingsRepo) *StockValuationService {
	return newTestServiceWithPolicy(t, lotRepo, movementRepo, settingsRepo, DefaultValuationPolicy())
}

func newTestServiceWithPolicy(t *testing.T, lotRepo *fakeLotRepo, movementRepo *fakeMovementRepo, settingsRepo *fakeSettingsRepo, policy ValuationPolicy) *StockValuationService {
	t.Helper()
	registry, err := strategyinfra.NewRegistryWithDefaults()
	require.NoError(t, err)
	return NewStockValuationService(lotRepo, movementRepo, settingsRepo, registry, policy)
}

func serviceLots(tenantID, productID uuid.UUID) []inventory.StockLot {
	lot1, _ := inventory.NewStockLot(tenantID, productID, "LOT-1", decimal.NewFromInt(10), decimal.NewFromInt(100), time.Now().AddDate(0, 0, -10), nil)
	lot2, _ := inventory.NewStockLot(tenantID, productID, "LOT-2", decimal.NewFromInt(20), decimal.NewFromInt(110), time.Now().AddDate(0, 0, -5), nil)
	return []inventory.StockLot{*lot1, *lot2}
}

func TestStockValuationService_CalculateValuation(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	lotRepo := &fakeLotRepo{lots: serviceLots(tenantID, productID)}
	service := newTestService(t, lotRepo, &fakeMovementRepo{}, &fakeSettingsRepo{})

	result, err := service.CalculateValuation(context.Background(), tenantID, productID, "")
	require.NoError(t, err)

	assert.Equal(t, strategy.ValuationMethodWeightedAverage, result.Method)
	assert.True(t, result.TotalQuantity.Equal(decimal.NewFromInt(30)))
	assert.True(t, result.AverageCost.Equal(decimal.NewFromFloat(106.67)), "got %s", result.AverageCost)
	assert.Len(t, result.Lots, 2)
}

func TestStockValuationService_CalculateValuation_MethodOverride(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	lotRepo := &fakeLotRepo{lots: serviceLots(tenantID, productID)}
	service := newTestService(t, lotRepo, &fakeMovementRepo{}, &fakeSettingsRepo{})

	result, err := service.CalculateValuation(context.Background(), tenantID, productID, "fifo")
	require.NoError(t, err)

	assert.Equal(t, strategy.ValuationMethodFIFO, result.Method)
	require.Len(t, result.Lots, 2)
	assert.True(t, result.Lots[0].UnitCost.Equal(decimal.NewFromInt(100)), "lots keep their own cost under fifo")
}

func TestStockValuationService_CalculateValuation_InvalidOverride(t *testing.T) {
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{}, &fakeSettingsRepo{})

	_, err := service.CalculateValuation(context.Background(), uuid.New(), uuid.New(), "random")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valuation method")
}

func TestStockValuationService_CalculateValuation_TenantMethod(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	settings := inventory.DefaultStockSettings(tenantID)
	settings.ValuationMethod = strategy.ValuationMethodLIFO

	lotRepo := &fakeLotRepo{lots: serviceLots(tenantID, productID)}
	service := newTestService(t, lotRepo, &fakeMovementRepo{}, &fakeSettingsRepo{settings: settings})

	result, err := service.CalculateValuation(context.Background(), tenantID, productID, "")
	require.NoError(t, err)
	assert.Equal(t, strategy.ValuationMethodLIFO, result.Method)
}

func TestStockValuationService_CalculateValuation_LotFetchError(t *testing.T) {
	fetchErr := errors.New("connection reset")
	service := newTestService(t, &fakeLotRepo{err: fetchErr}, &fakeMovementRepo{}, &fakeSettingsRepo{})

	_, err := service.CalculateValuation(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, fetchErr)
}

func TestStockValuationService_CalculateValuation_SettingsFetchError(t *testing.T) {
	fetchErr := errors.New("connection reset")
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{}, &fakeSettingsRepo{err: fetchErr})

	_, err := service.CalculateValuation(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, fetchErr)
}

func TestStockValuationService_CalculateReorderPoint(t *testing.T) {
	// 90 units over the 90-day window: 1/day, lead 7 days, 20% safety
	movementRepo := &fakeMovementRepo{outbound: decimal.NewFromInt(90)}
	service := newTestService(t, &fakeLotRepo{}, movementRepo, &fakeSettingsRepo{})

	point, err := service.CalculateReorderPoint(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(9), point)
}

func TestStockValuationService_CalculateReorderPoint_NoHistory(t *testing.T) {
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{outbound: decimal.Zero}, &fakeSettingsRepo{})

	point, err := service.CalculateReorderPoint(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(10), point, "static reorder point when nothing moved")
}

func TestStockValuationService_CalculateReorderPoint_MovementError(t *testing.T) {
	fetchErr := errors.New("timeout")
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{err: fetchErr}, &fakeSettingsRepo{})

	_, err := service.CalculateReorderPoint(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, fetchErr)
}

func TestStockValuationService_CalculateOptimalOrderQuantity(t *testing.T) {
	// 60 units over 30 days: 2/day, geometric mean of 7 and 30 stock days
	movementRepo := &fakeMovementRepo{outbound: decimal.NewFromInt(60)}
	service := newTestService(t, &fakeLotRepo{}, movementRepo, &fakeSettingsRepo{})

	qty, err := service.CalculateOptimalOrderQuantity(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(29), qty)
}

func TestStockValuationService_CalculateOptimalOrderQuantity_NoHistory(t *testing.T) {
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{outbound: decimal.Zero}, &fakeSettingsRepo{})

	qty, err := service.CalculateOptimalOrderQuantity(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(20), qty, "twice the static reorder point")
}

func TestStockValuationService_PolicyReorderWindow(t *testing.T) {
	// 90 units over a 30-day window: 3/day, lead 7 days, 20% safety
	policy := DefaultValuationPolicy()
	policy.ReorderWindowDays = 30
	movementRepo := &fakeMovementRepo{outbound: decimal.NewFromInt(90)}
	service := newTestServiceWithPolicy(t, &fakeLotRepo{}, movementRepo, &fakeSettingsRepo{}, policy)

	point, err := service.CalculateReorderPoint(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(26), point)
}

func TestStockValuationService_PolicyConsumptionWindow(t *testing.T) {
	// 60 units over a 15-day window: 4/day, geometric mean of 7 and 30 stock days
	policy := DefaultValuationPolicy()
	policy.ConsumptionWindowDays = 15
	movementRepo := &fakeMovementRepo{outbound: decimal.NewFromInt(60)}
	service := newTestServiceWithPolicy(t, &fakeLotRepo{}, movementRepo, &fakeSettingsRepo{}, policy)

	qty, err := service.CalculateOptimalOrderQuantity(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(58), qty)
}

func TestStockValuationService_PolicyDefaultMethod(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	policy := DefaultValuationPolicy()
	policy.DefaultValuationMethod = strategy.ValuationMethodFIFO.String()
	lotRepo := &fakeLotRepo{lots: serviceLots(tenantID, productID)}
	service := newTestServiceWithPolicy(t, lotRepo, &fakeMovementRepo{}, &fakeSettingsRepo{}, policy)

	result, err := service.CalculateValuation(context.Background(), tenantID, productID, "")
	require.NoError(t, err)
	assert.Equal(t, strategy.ValuationMethodFIFO, result.Method)
	require.Len(t, result.Lots, 2)
	assert.True(t, result.Lots[0].UnitCost.Equal(decimal.NewFromInt(100)))
}

func TestStockValuationService_PolicyInvalidFieldsNormalized(t *testing.T) {
	policy := ValuationPolicy{DefaultValuationMethod: "bogus", DefaultCostPrecision: -1}
	movementRepo := &fakeMovementRepo{outbound: decimal.NewFromInt(90)}
	service := newTestServiceWithPolicy(t, &fakeLotRepo{}, movementRepo, &fakeSettingsRepo{}, policy)

	point, err := service.CalculateReorderPoint(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(9), point, "zero windows fall back to the built-in 90 days")
}

func TestStockValuationService_StoredMethodFallsBackToDefault(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()

	settings := inventory.DefaultStockSettings(tenantID)
	settings.ValuationMethod = "legacy_average"

	lotRepo := &fakeLotRepo{lots: serviceLots(tenantID, productID)}
	service := newTestService(t, lotRepo, &fakeMovementRepo{}, &fakeSettingsRepo{settings: settings})

	result, err := service.CalculateValuation(context.Background(), tenantID, productID, "")
	require.NoError(t, err)
	assert.Equal(t, strategy.ValuationMethodWeightedAverage, result.Method)
}

func TestStockValuationService_RegisterReceipt(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	lotRepo := &fakeLotRepo{}
	movementRepo := &fakeMovementRepo{}
	service := newTestService(t, lotRepo, movementRepo, &fakeSettingsRepo{})

	lot, err := service.RegisterReceipt(context.Background(), RegisterReceiptCommand{
		TenantID:   tenantID,
		ProductID:  productID,
		LotNumber:  "LOT-42",
		Quantity:   25,
		UnitCost:   13.5,
		ReceivedAt: time.Now(),
		Reference:  "PO-2026-001",
	})
	require.NoError(t, err)

	require.Len(t, lotRepo.saved, 1)
	assert.Equal(t, "LOT-42", lot.LotNumber)
	assert.True(t, lot.RemainingQuantity.Equal(decimal.NewFromInt(25)))

	require.Len(t, movementRepo.saved, 1)
	movement := movementRepo.saved[0]
	assert.Equal(t, inventory.MovementDirectionIn, movement.Direction)
	assert.Equal(t, "PO-2026-001", movement.Reference)
	require.NotNil(t, movement.LotID)
	assert.Equal(t, lot.ID, *movement.LotID)
}

func TestStockValuationService_RegisterReceipt_InvalidQuantity(t *testing.T) {
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{}, &fakeSettingsRepo{})

	_, err := service.RegisterReceipt(context.Background(), RegisterReceiptCommand{
		TenantID:  uuid.New(),
		ProductID: uuid.New(),
		LotNumber: "LOT-1",
		Quantity:  0,
		UnitCost:  10,
	})
	assert.Error(t, err)
}

func TestStockValuationService_UpdateSettings(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{}
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{}, settingsRepo)

	settings := inventory.DefaultStockSettings(uuid.New())
	settings.CostPrecision = 4
	require.NoError(t, service.UpdateSettings(context.Background(), settings))
	assert.Equal(t, settings, settingsRepo.saved)

	settings.CostPrecision = 12
	assert.Error(t, service.UpdateSettings(context.Background(), settings))
}

func TestStockValuationService_GetSettings_Defaults(t *testing.T) {
	tenantID := uuid.New()
	service := newTestService(t, &fakeLotRepo{}, &fakeMovementRepo{}, &fakeSettingsRepo{})

	settings, err := service.GetSettings(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Equal(t, tenantID, settings.TenantID)
	assert.Equal(t, strategy.ValuationMethodWeightedAverage, settings.ValuationMethod)
}
