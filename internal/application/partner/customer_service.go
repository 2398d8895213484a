package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharma/backend/internal/domain/partner"
	"github.com/pharma/backend/internal/domain/shared"
)

// CustomerService manages customers and their insurance coverage
type CustomerService struct {
	customerRepo partner.CustomerRepository
	insurerRepo  partner.InsurerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, insurerRepo partner.InsurerRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		insurerRepo:  insurerRepo,
	}
}

// CreateCustomer registers a new customer. The code must be unique within
// the tenant.
func (s *CustomerService) CreateCustomer(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*partner.Customer, error) {
	if existing, err := s.customerRepo.FindByCode(ctx, tenantID, req.Code); err == nil && existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	customer, err := partner.NewCustomer(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.Notes = req.Notes
	customer.TicketModerateurRate = decimal.NewFromFloat(req.TicketModerateurRate)
	customer.DiscountRate = decimal.NewFromFloat(req.DiscountRate)
	customer.UseDeposit = req.UseDeposit
	customer.VoucherEligible = req.VoucherEligible

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, tenantID, id uuid.UUID) (*partner.Customer, error) {
	return s.customerRepo.FindByIDForTenant(ctx, tenantID, id)
}

// ListCustomers returns a page of the tenant's customers
func (s *CustomerService) ListCustomers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	return s.customerRepo.FindAllForTenant(ctx, tenantID, filter)
}

// AssignInsurer links a customer to an insurer with a coverage rate.
// The insurer must exist for the tenant.
func (s *CustomerService) AssignInsurer(ctx context.Context, tenantID, customerID uuid.UUID, req AssignInsurerRequest) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	insurer, err := s.insurerRepo.FindByIDForTenant(ctx, tenantID, req.InsurerID)
	if err != nil {
		return nil, err
	}

	rate := decimal.NewFromFloat(req.CoverageRate)
	if req.CoverageRate == 0 {
		rate = insurer.DefaultCoverageRate
	}
	if err := customer.AssignInsurer(insurer.ID, rate); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CreditDeposit adds funds to a customer's deposit balance
func (s *CustomerService) CreditDeposit(ctx context.Context, tenantID, customerID uuid.UUID, amount float64) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if err := customer.CreditDeposit(decimal.NewFromFloat(amount)); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateInsurer registers a new insurer
func (s *CustomerService) CreateInsurer(ctx context.Context, tenantID uuid.UUID, req CreateInsurerRequest) (*partner.Insurer, error) {
	insurer, err := partner.NewInsurer(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	insurer.ContactName = req.ContactName
	insurer.Phone = req.Phone
	insurer.Email = req.Email
	insurer.DefaultCoverageRate = decimal.NewFromFloat(req.DefaultCoverageRate)

	if err := s.insurerRepo.Save(ctx, insurer); err != nil {
		return nil, err
	}
	return insurer, nil
}

// ListInsurers returns a page of the tenant's insurers
func (s *CustomerService) ListInsurers(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Insurer, error) {
	return s.insurerRepo.FindAllForTenant(ctx, tenantID, filter)
}
