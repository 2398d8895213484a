package partner

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharma/backend/internal/domain/partner"
)

// CreateCustomerRequest registers a new customer
type CreateCustomerRequest struct {
	Code                 string  `json:"code" binding:"required"`
	Name                 string  `json:"name" binding:"required"`
	Phone                string  `json:"phone"`
	Email                string  `json:"email" binding:"omitempty,email"`
	TicketModerateurRate float64 `json:"ticket_moderateur_rate" binding:"gte=0,lte=100"`
	DiscountRate         float64 `json:"discount_rate" binding:"gte=0,lte=100"`
	UseDeposit           bool    `json:"use_deposit"`
	VoucherEligible      bool    `json:"voucher_eligible"`
	Notes                string  `json:"notes"`
}

// AssignInsurerRequest links a customer to an insurer.
// A zero coverage rate falls back to the insurer's default rate.
type AssignInsurerRequest struct {
	InsurerID    uuid.UUID `json:"insurer_id" binding:"required"`
	CoverageRate float64   `json:"coverage_rate" binding:"gte=0,lte=100"`
}

// CreditDepositRequest adds funds to a customer's deposit
type CreditDepositRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateInsurerRequest registers a new insurer
type CreateInsurerRequest struct {
	Code                string  `json:"code" binding:"required"`
	Name                string  `json:"name" binding:"required"`
	ContactName         string  `json:"contact_name"`
	Phone               string  `json:"phone"`
	Email               string  `json:"email" binding:"omitempty,email"`
	DefaultCoverageRate float64 `json:"default_coverage_rate" binding:"gte=0,lte=100"`
}

// CustomerResponse is a customer in API responses
type CustomerResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Code                 string          `json:"code"`
	Name                 string          `json:"name"`
	Phone                string          `json:"phone,omitempty"`
	Email                string          `json:"email,omitempty"`
	Status               string          `json:"status"`
	InsurerID            *uuid.UUID      `json:"insurer_id,omitempty"`
	CoverageRate         decimal.Decimal `json:"coverage_rate"`
	TicketModerateurRate decimal.Decimal `json:"ticket_moderateur_rate"`
	DiscountRate         decimal.Decimal `json:"discount_rate"`
	DepositBalance       decimal.Decimal `json:"deposit_balance"`
	UseDeposit           bool            `json:"use_deposit"`
	VoucherEligible      bool            `json:"voucher_eligible"`
}

// ToCustomerResponse converts a customer to the API response shape
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                   customer.ID,
		Code:                 customer.Code,
		Name:                 customer.Name,
		Phone:                customer.Phone,
		Email:                customer.Email,
		Status:               string(customer.Status),
		InsurerID:            customer.InsurerID,
		CoverageRate:         customer.CoverageRate,
		TicketModerateurRate: customer.TicketModerateurRate,
		DiscountRate:         customer.DiscountRate,
		DepositBalance:       customer.DepositBalance,
		UseDeposit:           customer.UseDeposit,
		VoucherEligible:      customer.VoucherEligible,
	}
}

// InsurerResponse is an insurer in API responses
type InsurerResponse struct {
	ID                  uuid.UUID       `json:"id"`
	Code                string          `json:"code"`
	Name                string          `json:"name"`
	ContactName         string          `json:"contact_name,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Email               string          `json:"email,omitempty"`
	DefaultCoverageRate decimal.Decimal `json:"default_coverage_rate"`
	Active              bool            `json:"active"`
}

// ToInsurerResponse converts an insurer to the API response shape
func ToInsurerResponse(insurer *partner.Insurer) InsurerResponse {
	return InsurerResponse{
		ID:                  insurer.ID,
		Code:                insurer.Code,
		Name:                insurer.Name,
		ContactName:         insurer.ContactName,
		Phone:               insurer.Phone,
		Email:               insurer.Email,
		DefaultCoverageRate: insurer.DefaultCoverageRate,
		Active:              insurer.Active,
	}
}
