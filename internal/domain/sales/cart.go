package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one priced line of a point-of-sale cart. Price components are
// per unit; LineTotal is the tax-inclusive total for the whole line as
// supplied by the caller. Tax and surcharge amounts may be zero when only
// the corresponding rates are known; resolveLineAmounts derives them.
type CartLine struct {
	ProductID       uuid.UUID
	ProductName     string
	Quantity        decimal.Decimal
	PriceExTax      decimal.Decimal
	PriceTaxIncl    decimal.Decimal
	TaxAmount       decimal.Decimal
	TaxRate         decimal.Decimal
	SurchargeAmount decimal.Decimal
	SurchargeRate   decimal.Decimal
	LineTotal       decimal.Decimal
}
