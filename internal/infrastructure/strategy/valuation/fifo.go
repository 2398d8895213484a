package valuation

import (
	"context"
	"sort"

	"github.com/pharma/backend/internal/domain/shared/strategy"
)

// FIFOValuationStrategy implements First-In-First-Out lot valuation
type FIFOValuationStrategy struct {
	strategy.BaseStrategy
}

// NewFIFOValuationStrategy creates a new FIFO valuation strategy
func NewFIFOValuationStrategy() *FIFOValuationStrategy {
	return &FIFOValuationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"fifo",
			strategy.StrategyTypeValuation,
			"First-In-First-Out valuation, each lot keeps its own purchase cost",
		),
	}
}

// Method returns the costing method
func (s *FIFOValuationStrategy) Method() strategy.ValuationMethod {
	return strategy.ValuationMethodFIFO
}

// Valuate computes the valuation with lots ordered oldest first.
// Each lot retains its own purchase cost; the reported average cost is
// the blended average across all lots and is informational only.
func (s *FIFOValuationStrategy) Valuate(
	ctx context.Context,
	productID string,
	lots []strategy.Lot,
	precision int32,
) (strategy.ValuationResult, error) {
	sorted := make([]strategy.Lot, len(lots))
	copy(sorted, lots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ReceivedAt.Before(sorted[j].ReceivedAt)
	})

	return valuateAtOwnCost(productID, strategy.ValuationMethodFIFO, sorted, precision), nil
}
