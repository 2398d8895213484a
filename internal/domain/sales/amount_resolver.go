package sales

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// roundCurrency rounds to whole currency units. Amounts carry no fractional
// units, so every derived amount is rounded at the step that produces it.
func roundCurrency(v decimal.Decimal) decimal.Decimal {
	return v.Round(0)
}

// lineAmounts holds the resolved per-unit amounts for one cart line.
type lineAmounts struct {
	ExTax     decimal.Decimal
	Tax       decimal.Decimal
	Surcharge decimal.Decimal
}

// amountResolver attempts to produce one per-unit amount for a line.
// Resolvers are total and side effect free; the second return reports
// whether this resolver applies to the line at all.
type amountResolver func(line CartLine, prior lineAmounts) (decimal.Decimal, bool)

// Resolution order for the ex-tax unit price: use the explicit value when
// present, otherwise back-solve it from the tax-inclusive price and the
// combined tax and surcharge rates.
var exTaxResolvers = []amountResolver{
	explicitExTax,
	exTaxFromInclusive,
}

// Resolution order for the per-unit tax amount: explicit value first, then
// derivation from the tax rate applied to the resolved ex-tax price.
var taxResolvers = []amountResolver{
	explicitTax,
	taxFromRate,
}

// Resolution order for the per-unit surcharge amount: explicit value, then
// the surcharge rate on the resolved ex-tax price, then the residual of the
// tax-inclusive price after the resolved ex-tax and tax amounts.
var surchargeResolvers = []amountResolver{
	explicitSurcharge,
	surchargeFromRate,
	surchargeFromInclusiveResidual,
}

func explicitExTax(line CartLine, _ lineAmounts) (decimal.Decimal, bool) {
	if line.PriceExTax.IsPositive() {
		return line.PriceExTax, true
	}
	return decimal.Zero, false
}

func exTaxFromInclusive(line CartLine, _ lineAmounts) (decimal.Decimal, bool) {
	if !line.PriceTaxIncl.IsPositive() {
		return decimal.Zero, false
	}
	divisor := decimal.NewFromInt(1).
		Add(line.TaxRate.Div(hundred)).
		Add(line.SurchargeRate.Div(hundred))
	if !divisor.IsPositive() {
		return decimal.Zero, false
	}
	return roundCurrency(line.PriceTaxIncl.Div(divisor)), true
}

func explicitTax(line CartLine, _ lineAmounts) (decimal.Decimal, bool) {
	if line.TaxAmount.IsPositive() {
		return line.TaxAmount, true
	}
	return decimal.Zero, false
}

func taxFromRate(line CartLine, prior lineAmounts) (decimal.Decimal, bool) {
	if !line.TaxRate.IsPositive() || !prior.ExTax.IsPositive() {
		return decimal.Zero, false
	}
	return roundCurrency(prior.ExTax.Mul(line.TaxRate).Div(hundred)), true
}

func explicitSurcharge(line CartLine, _ lineAmounts) (decimal.Decimal, bool) {
	if line.SurchargeAmount.IsPositive() {
		return line.SurchargeAmount, true
	}
	return decimal.Zero, false
}

func surchargeFromRate(line CartLine, prior lineAmounts) (decimal.Decimal, bool) {
	if !line.SurchargeRate.IsPositive() || !prior.ExTax.IsPositive() {
		return decimal.Zero, false
	}
	return roundCurrency(prior.ExTax.Mul(line.SurchargeRate).Div(hundred)), true
}

func surchargeFromInclusiveResidual(line CartLine, prior lineAmounts) (decimal.Decimal, bool) {
	if !line.SurchargeRate.IsPositive() || !line.PriceTaxIncl.IsPositive() {
		return decimal.Zero, false
	}
	residual := line.PriceTaxIncl.Sub(prior.ExTax).Sub(prior.Tax)
	if residual.IsNegative() {
		return decimal.Zero, false
	}
	return roundCurrency(residual), true
}

func resolveFirst(line CartLine, prior lineAmounts, resolvers []amountResolver) decimal.Decimal {
	for _, resolve := range resolvers {
		if amount, ok := resolve(line, prior); ok {
			return amount
		}
	}
	return decimal.Zero
}

// resolveLineAmounts derives the per-unit ex-tax, tax and surcharge amounts
// for a line, trying each resolver chain in order. Missing inputs resolve
// to zero rather than an error.
func resolveLineAmounts(line CartLine) lineAmounts {
	var amounts lineAmounts
	amounts.ExTax = resolveFirst(line, amounts, exTaxResolvers)
	amounts.Tax = resolveFirst(line, amounts, taxResolvers)
	amounts.Surcharge = resolveFirst(line, amounts, surchargeResolvers)
	return amounts
}
