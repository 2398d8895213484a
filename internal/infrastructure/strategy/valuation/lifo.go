package valuation

import (
	"context"
	"sort"

	"github.com/pharma/backend/internal/domain/shared/strategy"
)

// LIFOValuationStrategy implements Last-In-First-Out lot valuation
type LIFOValuationStrategy struct {
	strategy.BaseStrategy
}

// NewLIFOValuationStrategy creates a new LIFO valuation strategy
func NewLIFOValuationStrategy() *LIFOValuationStrategy {
	return &LIFOValuationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"lifo",
			strategy.StrategyTypeValuation,
			"Last-In-First-Out valuation, each lot keeps its own purchase cost",
		),
	}
}

// Method returns the costing method
func (s *LIFOValuationStrategy) Method() strategy.ValuationMethod {
	return strategy.ValuationMethodLIFO
}

// Valuate computes the valuation with lots ordered newest first.
// Aggregates (total quantity, total value, average cost) are identical
// to FIFO on the same lot set; only the breakdown ordering differs.
func (s *LIFOValuationStrategy) Valuate(
	ctx context.Context,
	productID string,
	lots []strategy.Lot,
	precision int32,
) (strategy.ValuationResult, error) {
	sorted := make([]strategy.Lot, len(lots))
	copy(sorted, lots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ReceivedAt.After(sorted[j].ReceivedAt)
	})

	return valuateAtOwnCost(productID, strategy.ValuationMethodLIFO, sorted, precision), nil
}
