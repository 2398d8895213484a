package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharma/backend/internal/domain/partner"
	"github.com/pharma/backend/internal/domain/shared"
)

type fakeCustomerRepo struct {
	byID   map[uuid.UUID]*partner.Customer
	byCode map[string]*partner.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		byID:   make(map[uuid.UUID]*partner.Customer),
		byCode: make(map[string]*partner.Customer),
	}
}

func (f *fakeCustomerRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	if customer, ok := f.byID[id]; ok {
		return customer, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepo) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*partner.Customer, error) {
	if customer, ok := f.byCode[code]; ok {
		return customer, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	result := make([]partner.Customer, 0, len(f.byID))
	for _, customer := range f.byID {
		result = append(result, *customer)
	}
	return result, nil
}

func (f *fakeCustomerRepo) Save(ctx context.Context, customer *partner.Customer) error {
	f.byID[customer.ID] = customer
	f.byCode[customer.Code] = customer
	return nil
}

type fakeInsurerRepo struct {
	byID map[uuid.UUID]*partner.Insurer
}

func newFakeInsurerRepo() *fakeInsurerRepo {
	return &fakeInsurerRepo{byID: make(map[uuid.UUID]*partner.Insurer)}
}

func (f *fakeInsurerRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Insurer, error) {
	if insurer, ok := f.byID[id]; ok {
		return insurer, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeInsurerRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Insurer, error) {
	result := make([]partner.Insurer, 0, len(f.byID))
	for _, insurer := range f.byID {
		result = append(result, *insurer)
	}
	return result, nil
}

func (f *fakeInsurerRepo) Save(ctx context.Context, insurer *partner.Insurer) error {
	f.byID[insurer.ID] = insurer
	return nil
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	service := NewCustomerService(newFakeCustomerRepo(), newFakeInsurerRepo())
	tenantID := uuid.New()

	customer, err := service.CreateCustomer(context.Background(), tenantID, CreateCustomerRequest{
		Code:         "CUST-1",
		Name:         "Awa Diallo",
		DiscountRate: 5,
		UseDeposit:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "CUST-1", customer.Code)
	assert.True(t, customer.DiscountRate.Equal(decimal.NewFromInt(5)))
	assert.True(t, customer.UseDeposit)
}

func TestCustomerService_CreateCustomer_DuplicateCode(t *testing.T) {
	service := NewCustomerService(newFakeCustomerRepo(), newFakeInsurerRepo())
	tenantID := uuid.New()

	_, err := service.CreateCustomer(context.Background(), tenantID, CreateCustomerRequest{Code: "CUST-1", Name: "First"})
	require.NoError(t, err)

	_, err = service.CreateCustomer(context.Background(), tenantID, CreateCustomerRequest{Code: "CUST-1", Name: "Second"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestCustomerService_AssignInsurer(t *testing.T) {
	customerRepo := newFakeCustomerRepo()
	insurerRepo := newFakeInsurerRepo()
	service := NewCustomerService(customerRepo, insurerRepo)
	tenantID := uuid.New()

	customer, err := service.CreateCustomer(context.Background(), tenantID, CreateCustomerRequest{Code: "CUST-1", Name: "Awa Diallo"})
	require.NoError(t, err)

	insurer, err := service.CreateInsurer(context.Background(), tenantID, CreateInsurerRequest{
		Code:                "CNAM",
		Name:                "Caisse Nationale",
		DefaultCoverageRate: 80,
	})
	require.NoError(t, err)

	// explicit rate wins
	updated, err := service.AssignInsurer(context.Background(), tenantID, customer.ID, AssignInsurerRequest{
		InsurerID:    insurer.ID,
		CoverageRate: 70,
	})
	require.NoError(t, err)
	assert.True(t, updated.CoverageRate.Equal(decimal.NewFromInt(70)))
	require.NotNil(t, updated.InsurerID)
	assert.Equal(t, insurer.ID, *updated.InsurerID)

	// zero rate falls back to the insurer default
	updated, err = service.AssignInsurer(context.Background(), tenantID, customer.ID, AssignInsurerRequest{
		InsurerID: insurer.ID,
	})
	require.NoError(t, err)
	assert.True(t, updated.CoverageRate.Equal(decimal.NewFromInt(80)))
}

func TestCustomerService_AssignInsurer_UnknownInsurer(t *testing.T) {
	service := NewCustomerService(newFakeCustomerRepo(), newFakeInsurerRepo())
	tenantID := uuid.New()

	customer, err := service.CreateCustomer(context.Background(), tenantID, CreateCustomerRequest{Code: "CUST-1", Name: "Awa Diallo"})
	require.NoError(t, err)

	_, err = service.AssignInsurer(context.Background(), tenantID, customer.ID, AssignInsurerRequest{InsurerID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCustomerService_CreditDeposit(t *testing.T) {
	service := NewCustomerService(newFakeCustomerRepo(), newFakeInsurerRepo())
	tenantID := uuid.New()

	customer, err := service.CreateCustomer(context.Background(), tenantID, CreateCustomerRequest{Code: "CUST-1", Name: "Awa Diallo"})
	require.NoError(t, err)

	updated, err := service.CreditDeposit(context.Background(), tenantID, customer.ID, 2500)
	require.NoError(t, err)
	assert.True(t, updated.DepositBalance.Equal(decimal.NewFromInt(2500)))

	_, err = service.CreditDeposit(context.Background(), tenantID, customer.ID, -10)
	assert.Error(t, err)
}
