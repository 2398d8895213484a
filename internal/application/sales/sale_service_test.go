package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharma/backend/internal/domain/inventory"
	"github.com/pharma/backend/internal/domain/partner"
	"github.com/pharma/backend/internal/domain/sales"
	"github.com/pharma/backend/internal/domain/shared"
)

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*partner.Customer
	saved     []*partner.Customer
}

func newFakeCustomerRepo(customers ...*partner.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[uuid.UUID]*partner.Customer)}
	for _, c := range customers {
		repo.customers[c.ID] = c
	}
	return repo
}

func (f *fakeCustomerRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return customer, nil
}

func (f *fakeCustomerRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Customer, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerRepo) Save(ctx context.Context, customer *partner.Customer) error {
	f.saved = append(f.saved, customer)
	return nil
}

type fakeSaleRepo struct {
	saved []*sales.Sale
	count int64
}

func (f *fakeSaleRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*sales.Sale, error) {
	for _, sale := range f.saved {
		if sale.ID == id {
			return sale, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSaleRepo) FindBySaleNumber(ctx context.Context, tenantID uuid.UUID, saleNumber string) (*sales.Sale, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeSaleRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	result := make([]sales.Sale, 0, len(f.saved))
	for _, sale := range f.saved {
		result = append(result, *sale)
	}
	return result, nil
}

func (f *fakeSaleRepo) Save(ctx context.Context, sale *sales.Sale) error {
	f.saved = append(f.saved, sale)
	return nil
}

func (f *fakeSaleRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return f.count + int64(len(f.saved)), nil
}

type fakeLotRepo struct {
	lots []inventory.StockLot
}

func (f *fakeLotRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockLot, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeLotRepo) FindAvailableByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.StockLot, error) {
	available := f.lots[:0:0]
	for _, lot := range f.lots {
		if lot.ProductID == productID && lot.HasStock() {
			available = append(available, lot)
		}
	}
	return available, nil
}

func (f *fakeLotRepo) Save(ctx context.Context, lot *inventory.StockLot) error {
	for i := range f.lots {
		if f.lots[i].ID == lot.ID {
			f.lots[i] = *lot
			return nil
		}
	}
	f.lots = append(f.lots, *lot)
	return nil
}

type fakeMovementRepo struct {
	saved []*inventory.StockMovement
}

func (f *fakeMovementRepo) Save(ctx context.Context, movement *inventory.StockMovement) error {
	f.saved = append(f.saved, movement)
	return nil
}

func (f *fakeMovementRepo) SumOutboundSince(ctx context.Context, tenantID, productID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type saleServiceFixture struct {
	service      *SaleService
	customerRepo *fakeCustomerRepo
	saleRepo     *fakeSaleRepo
	lotRepo      *fakeLotRepo
	movementRepo *fakeMovementRepo
}

func newSaleServiceFixture(customers ...*partner.Customer) *saleServiceFixture {
	customerRepo := newFakeCustomerRepo(customers...)
	saleRepo := &fakeSaleRepo{}
	lotRepo := &fakeLotRepo{}
	movementRepo := &fakeMovementRepo{}
	txScope := NewNoOpTransactionScope(lotRepo, movementRepo, customerRepo, saleRepo)
	return &saleServiceFixture{
		service:      NewSaleService(customerRepo, saleRepo, txScope),
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		lotRepo:      lotRepo,
		movementRepo: movementRepo,
	}
}

func (f *saleServiceFixture) addLot(tenantID, productID uuid.UUID, lotNumber string, qty, cost int64, receivedDaysAgo int) {
	lot, _ := inventory.NewStockLot(tenantID, productID, lotNumber, decimal.NewFromInt(qty), decimal.NewFromInt(cost), time.Now().AddDate(0, 0, -receivedDaysAgo), nil)
	f.lotRepo.lots = append(f.lotRepo.lots, *lot)
}

func cashLine(productID uuid.UUID, qty, unitPrice int64) CartLineRequest {
	return CartLineRequest{
		ProductID:    productID,
		ProductName:  "Paracetamol 500mg",
		Quantity:     float64(qty),
		PriceTaxIncl: float64(unitPrice),
	}
}

func insuredTestCustomer(tenantID uuid.UUID, coveragePct int64) *partner.Customer {
	customer, _ := partner.NewCustomer(tenantID, "CUST-1", "Awa Diallo")
	insurerID := uuid.New()
	_ = customer.AssignInsurer(insurerID, decimal.NewFromInt(coveragePct))
	return customer
}

func TestSaleService_QuoteCart_WalkIn(t *testing.T) {
	fixture := newSaleServiceFixture()
	productID := uuid.New()

	pricing, err := fixture.service.QuoteCart(context.Background(), uuid.New(), QuoteRequest{
		Lines: []CartLineRequest{cashLine(productID, 2, 500)},
	})
	require.NoError(t, err)

	assert.False(t, pricing.Insured)
	assert.True(t, pricing.SubtotalTaxIncl.Equal(decimal.NewFromInt(1000)))
	assert.True(t, pricing.FinalPayable.Equal(decimal.NewFromInt(1000)))
}

func TestSaleService_QuoteCart_InsuredCustomer(t *testing.T) {
	tenantID := uuid.New()
	customer := insuredTestCustomer(tenantID, 70)
	fixture := newSaleServiceFixture(customer)

	pricing, err := fixture.service.QuoteCart(context.Background(), tenantID, QuoteRequest{
		CustomerID: &customer.ID,
		Lines:      []CartLineRequest{cashLine(uuid.New(), 10, 1000)},
	})
	require.NoError(t, err)

	assert.True(t, pricing.Insured)
	assert.True(t, pricing.InsurerShare.Equal(decimal.NewFromInt(7000)))
	assert.True(t, pricing.FinalPayable.Equal(decimal.NewFromInt(3000)))
}

func TestSaleService_QuoteCart_InlineCoverage(t *testing.T) {
	fixture := newSaleServiceFixture()
	insurerID := uuid.New()

	pricing, err := fixture.service.QuoteCart(context.Background(), uuid.New(), QuoteRequest{
		Coverage: &CoverageRequest{
			InsurerID:    &insurerID,
			CoverageRate: 60,
		},
		Lines: []CartLineRequest{cashLine(uuid.New(), 10, 1000)},
	})
	require.NoError(t, err)

	assert.True(t, pricing.Insured)
	assert.True(t, pricing.InsurerShare.Equal(decimal.NewFromInt(6000)))
	assert.True(t, pricing.FinalPayable.Equal(decimal.NewFromInt(4000)))
}

func TestSaleService_QuoteCart_UnknownCustomer(t *testing.T) {
	fixture := newSaleServiceFixture()
	unknownID := uuid.New()

	_, err := fixture.service.QuoteCart(context.Background(), uuid.New(), QuoteRequest{
		CustomerID: &unknownID,
		Lines:      []CartLineRequest{cashLine(uuid.New(), 1, 100)},
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSaleService_RecordSale_DeductsOldestLotsFirst(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	fixture := newSaleServiceFixture()
	fixture.addLot(tenantID, productID, "LOT-OLD", 5, 100, 30)
	fixture.addLot(tenantID, productID, "LOT-NEW", 10, 120, 5)

	sale, err := fixture.service.RecordSale(context.Background(), tenantID, RecordSaleRequest{
		PaymentMode: "CASH",
		Lines:       []CartLineRequest{cashLine(productID, 8, 200)},
	})
	require.NoError(t, err)

	assert.Equal(t, "SALE-000001", sale.SaleNumber)
	require.Len(t, fixture.saleRepo.saved, 1)

	// the old lot is drained before the new one is touched
	assert.True(t, fixture.lotRepo.lots[0].RemainingQuantity.IsZero())
	assert.True(t, fixture.lotRepo.lots[1].RemainingQuantity.Equal(decimal.NewFromInt(7)))

	require.Len(t, fixture.movementRepo.saved, 2)
	first, second := fixture.movementRepo.saved[0], fixture.movementRepo.saved[1]
	assert.Equal(t, inventory.MovementDirectionOut, first.Direction)
	assert.True(t, first.Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, first.UnitCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, second.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, second.UnitCost.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, sale.SaleNumber, first.Reference)
}

func TestSaleService_RecordSale_InsufficientStock(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	fixture := newSaleServiceFixture()
	fixture.addLot(tenantID, productID, "LOT-1", 3, 100, 10)

	_, err := fixture.service.RecordSale(context.Background(), tenantID, RecordSaleRequest{
		PaymentMode: "CASH",
		Lines:       []CartLineRequest{cashLine(productID, 8, 200)},
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
}

func TestSaleService_RecordSale_DepositPayment(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	customer, _ := partner.NewCustomer(tenantID, "CUST-2", "Moussa Traore")
	customer.UseDeposit = true
	customer.DepositBalance = decimal.NewFromInt(5000)

	fixture := newSaleServiceFixture(customer)
	fixture.addLot(tenantID, productID, "LOT-1", 10, 100, 10)

	sale, err := fixture.service.RecordSale(context.Background(), tenantID, RecordSaleRequest{
		CustomerID:  &customer.ID,
		PaymentMode: "DEPOSIT",
		Lines:       []CartLineRequest{cashLine(productID, 2, 1000)},
	})
	require.NoError(t, err)

	assert.Equal(t, sales.PaymentModeDeposit, sale.PaymentMode)
	assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(3000)))
	require.Len(t, fixture.customerRepo.saved, 1)
}

func TestSaleService_RecordSale_DepositInsufficient(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	customer, _ := partner.NewCustomer(tenantID, "CUST-3", "Fatou Ndiaye")
	customer.UseDeposit = true
	customer.DepositBalance = decimal.NewFromInt(500)

	fixture := newSaleServiceFixture(customer)
	fixture.addLot(tenantID, productID, "LOT-1", 10, 100, 10)

	_, err := fixture.service.RecordSale(context.Background(), tenantID, RecordSaleRequest{
		CustomerID:  &customer.ID,
		PaymentMode: "DEPOSIT",
		Lines:       []CartLineRequest{cashLine(productID, 2, 1000)},
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientFunds)
	assert.True(t, customer.DepositBalance.Equal(decimal.NewFromInt(500)))
}

func TestSaleService_RecordSale_InvalidPaymentMode(t *testing.T) {
	tenantID := uuid.New()
	fixture := newSaleServiceFixture()

	_, err := fixture.service.RecordSale(context.Background(), tenantID, RecordSaleRequest{
		PaymentMode: "BARTER",
		Lines:       []CartLineRequest{cashLine(uuid.New(), 1, 100)},
	})
	assert.Error(t, err)
}

func TestSaleService_RecordSale_ExplicitSaleNumber(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	fixture := newSaleServiceFixture()
	fixture.addLot(tenantID, productID, "LOT-1", 10, 100, 10)

	sale, err := fixture.service.RecordSale(context.Background(), tenantID, RecordSaleRequest{
		SaleNumber:  "POS-2026-0042",
		PaymentMode: "CASH",
		Lines:       []CartLineRequest{cashLine(productID, 1, 100)},
	})
	require.NoError(t, err)
	assert.Equal(t, "POS-2026-0042", sale.SaleNumber)
}

func TestSaleService_ListSales(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	fixture := newSaleServiceFixture()
	fixture.addLot(tenantID, productID, "LOT-1", 100, 100, 10)

	for i := 0; i < 3; i++ {
		_, err := fixture.service.RecordSale(context.Background(), tenantID, RecordSaleRequest{
			PaymentMode: "CASH",
			Lines:       []CartLineRequest{cashLine(productID, 1, 100)},
		})
		require.NoError(t, err)
	}

	page, err := fixture.service.ListSales(context.Background(), tenantID, ListSalesQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 1, page.Page)
}
