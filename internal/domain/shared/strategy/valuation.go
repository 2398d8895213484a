package strategy

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ValuationMethod represents the inventory costing method
type ValuationMethod string

const (
	ValuationMethodFIFO            ValuationMethod = "fifo"
	ValuationMethodLIFO            ValuationMethod = "lifo"
	ValuationMethodWeightedAverage ValuationMethod = "weighted_average"
)

// String returns the string representation of the valuation method
func (m ValuationMethod) String() string {
	return string(m)
}

// IsValid returns true if the valuation method is valid
func (m ValuationMethod) IsValid() bool {
	switch m {
	case ValuationMethodFIFO, ValuationMethodLIFO, ValuationMethodWeightedAverage:
		return true
	default:
		return false
	}
}

// Lot represents a stock lot snapshot for valuation
type Lot struct {
	ID         string
	ProductID  string
	LotNumber  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	ReceivedAt time.Time
	ExpiryDate *time.Time
}

// TotalCost returns the unrounded value held in this lot
func (l Lot) TotalCost() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}

// LotValuation is the per-lot breakdown in a valuation result
type LotValuation struct {
	LotID      string
	LotNumber  string
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
	Value      decimal.Decimal
	ReceivedAt time.Time
}

// ValuationResult contains the result of a lot valuation.
// AverageCost is always the blended average across all lots; under
// FIFO/LIFO it is informational only and lots keep their own unit cost.
type ValuationResult struct {
	ProductID     string
	Method        ValuationMethod
	AverageCost   decimal.Decimal
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal
	Lots          []LotValuation
}

// LotValuationStrategy defines the interface for inventory valuation
type LotValuationStrategy interface {
	Strategy
	// Method returns the costing method used by this strategy
	Method() ValuationMethod
	// Valuate computes the valuation of the given lots at the given decimal precision.
	// It is total over its inputs: empty lot sets and zero total quantity
	// yield a zero-valued result, not an error.
	Valuate(ctx context.Context, productID string, lots []Lot, precision int32) (ValuationResult, error)
}

// BlendedAverage returns totalValue/totalQuantity rounded at precision,
// or zero when the total quantity is zero.
func BlendedAverage(lots []Lot, precision int32) (totalQty, totalValue, avgCost decimal.Decimal) {
	totalQty = decimal.Zero
	totalValue = decimal.Zero
	for _, lot := range lots {
		totalQty = totalQty.Add(lot.Quantity)
		totalValue = totalValue.Add(lot.TotalCost())
	}
	if totalQty.IsZero() {
		return totalQty, totalValue.Round(precision), decimal.Zero
	}
	avgCost = totalValue.Div(totalQty).Round(precision)
	return totalQty, totalValue.Round(precision), avgCost
}
