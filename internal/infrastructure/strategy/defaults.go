package strategy

import (
	"github.com/pharma/backend/internal/domain/shared/strategy"
	"github.com/pharma/backend/internal/infrastructure/strategy/valuation"
)

// NewRegistryWithDefaults creates a new registry with the built-in valuation
// strategies registered and weighted average set as the default.
func NewRegistryWithDefaults() (*StrategyRegistry, error) {
	r := NewStrategyRegistry()

	fifo := valuation.NewFIFOValuationStrategy()
	if err := r.RegisterValuationStrategy(fifo); err != nil {
		return nil, err
	}

	lifo := valuation.NewLIFOValuationStrategy()
	if err := r.RegisterValuationStrategy(lifo); err != nil {
		return nil, err
	}

	weightedAvg := valuation.NewWeightedAverageValuationStrategy()
	if err := r.RegisterValuationStrategy(weightedAvg); err != nil {
		return nil, err
	}

	if err := r.SetDefault(strategy.StrategyTypeValuation, weightedAvg.Name()); err != nil {
		return nil, err
	}

	return r, nil
}
