package sales

import "github.com/shopspring/decimal"

// PricingResult is the full breakdown of a priced cart for one customer.
// It is computed fresh on every call and never persisted by this package.
type PricingResult struct {
	TotalExTax             decimal.Decimal
	TotalTax               decimal.Decimal
	TotalSurcharge         decimal.Decimal
	SubtotalTaxIncl        decimal.Decimal
	Insured                bool
	CoverageRate           decimal.Decimal
	InsurerShare           decimal.Decimal
	CustomerShare          decimal.Decimal
	TicketModerateurRate   decimal.Decimal
	TicketModerateurAmount decimal.Decimal
	DiscountRate           decimal.Decimal
	DiscountAmount         decimal.Decimal
	FinalPayable           decimal.Decimal
	DepositAvailable       decimal.Decimal
	DepositUsable          bool
	CanPayFromDeposit      bool
	CanUseVoucher          bool
}

// ComputePricing prices a cart for a customer. It is a pure function of its
// inputs, safe to call on every cart or customer change, and total: missing
// or invalid inputs are treated as zero and never produce an error.
//
// Every derived amount is rounded at the step that produces it, so the
// shares may drift by a unit from what a single end rounding would give.
// The ticket moderateur deduction applies only to uninsured customers;
// insurance coverage and ticket moderateur are never both non-zero.
func ComputePricing(cart []CartLine, customer CustomerCoverage) PricingResult {
	var totalExTax, totalTax, totalSurcharge, subtotal decimal.Decimal
	for _, line := range cart {
		amounts := resolveLineAmounts(line)
		totalExTax = totalExTax.Add(amounts.ExTax.Mul(line.Quantity))
		totalTax = totalTax.Add(amounts.Tax.Mul(line.Quantity))
		totalSurcharge = totalSurcharge.Add(amounts.Surcharge.Mul(line.Quantity))
		subtotal = subtotal.Add(line.LineTotal)
	}

	insured := customer.IsInsured()
	insurerShare := decimal.Zero
	customerShare := subtotal
	if insured {
		insurerShare = roundCurrency(subtotal.Mul(customer.CoverageRate).Div(hundred))
		customerShare = subtotal.Sub(insurerShare)
	}

	ticketModerateur := decimal.Zero
	if !insured && customer.TicketModerateurRate.IsPositive() {
		ticketModerateur = roundCurrency(customerShare.Mul(customer.TicketModerateurRate).Div(hundred))
	}

	discountBase := customerShare.Sub(ticketModerateur)
	discount := decimal.Zero
	if customer.DiscountRate.IsPositive() {
		discount = roundCurrency(discountBase.Mul(customer.DiscountRate).Div(hundred))
	}

	finalPayable := discountBase.Sub(discount)
	if finalPayable.IsNegative() {
		finalPayable = decimal.Zero
	}

	depositUsable := customer.UseDeposit && customer.DepositBalance.IsPositive()

	return PricingResult{
		TotalExTax:             totalExTax,
		TotalTax:               totalTax,
		TotalSurcharge:         totalSurcharge,
		SubtotalTaxIncl:        subtotal,
		Insured:                insured,
		CoverageRate:           customer.CoverageRate,
		InsurerShare:           insurerShare,
		CustomerShare:          customerShare,
		TicketModerateurRate:   customer.TicketModerateurRate,
		TicketModerateurAmount: ticketModerateur,
		DiscountRate:           customer.DiscountRate,
		DiscountAmount:         discount,
		FinalPayable:           finalPayable,
		DepositAvailable:       customer.DepositBalance,
		DepositUsable:          depositUsable,
		CanPayFromDeposit:      depositUsable && customer.DepositBalance.GreaterThanOrEqual(finalPayable),
		CanUseVoucher:          customer.VoucherEligible,
	}
}
