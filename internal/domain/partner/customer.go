package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pharma/backend/internal/domain/sales"
	"github.com/pharma/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a pharmacy customer. The coverage fields mirror the
// customer's insurance contract and drive the point-of-sale price split.
type Customer struct {
	shared.TenantEntity
	Code                 string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name                 string          `gorm:"type:varchar(200);not null"`
	Phone                string          `gorm:"type:varchar(50);index"`
	Email                string          `gorm:"type:varchar(200);index"`
	Status               CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	InsurerID            *uuid.UUID      `gorm:"type:uuid;index"`
	CoverageRate         decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	TicketModerateurRate decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	DiscountRate         decimal.Decimal `gorm:"type:decimal(7,2);not null;default:0"`
	DepositBalance       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UseDeposit           bool            `gorm:"not null;default:false"`
	VoucherEligible      bool            `gorm:"not null;default:false"`
	Notes                string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, code, name string) (*Customer, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_CODE", "Customer code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	return &Customer{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Code:         code,
		Name:         name,
		Status:       CustomerStatusActive,
	}, nil
}

// Coverage returns the pricing-relevant view of this customer
func (c *Customer) Coverage() sales.CustomerCoverage {
	return sales.CustomerCoverage{
		InsurerID:            c.InsurerID,
		CoverageRate:         c.CoverageRate,
		TicketModerateurRate: c.TicketModerateurRate,
		DiscountRate:         c.DiscountRate,
		DepositBalance:       c.DepositBalance,
		UseDeposit:           c.UseDeposit,
		VoucherEligible:      c.VoucherEligible,
	}
}

// AssignInsurer links the customer to an insurer with a coverage rate
func (c *Customer) AssignInsurer(insurerID uuid.UUID, coverageRate decimal.Decimal) error {
	if coverageRate.IsNegative() || coverageRate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_COVERAGE_RATE", "Coverage rate must be between 0 and 100")
	}
	c.InsurerID = &insurerID
	c.CoverageRate = coverageRate
	return nil
}

// DebitDeposit withdraws an amount from the customer's deposit balance
func (c *Customer) DebitDeposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Debit amount must be positive")
	}
	if c.DepositBalance.LessThan(amount) {
		return shared.ErrInsufficientFunds
	}
	c.DepositBalance = c.DepositBalance.Sub(amount)
	return nil
}

// CreditDeposit adds an amount to the customer's deposit balance
func (c *Customer) CreditDeposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	c.DepositBalance = c.DepositBalance.Add(amount)
	return nil
}
