package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerCoverage carries the pricing-relevant attributes of a customer:
// insurance coverage, automatic deductions and deposit standing. Zero values
// mean the attribute does not apply.
type CustomerCoverage struct {
	InsurerID            *uuid.UUID
	CoverageRate         decimal.Decimal
	TicketModerateurRate decimal.Decimal
	DiscountRate         decimal.Decimal
	DepositBalance       decimal.Decimal
	UseDeposit           bool
	VoucherEligible      bool
}

// IsInsured reports whether sales for this customer are split with an
// insurer. Requires both an insurer reference and a positive coverage rate.
func (c CustomerCoverage) IsInsured() bool {
	return c.InsurerID != nil && c.CoverageRate.IsPositive()
}
