package valuation

import (
	"context"

	"github.com/pharma/backend/internal/domain/shared/strategy"
)

// WeightedAverageValuationStrategy implements blended-cost lot valuation
type WeightedAverageValuationStrategy struct {
	strategy.BaseStrategy
}

// NewWeightedAverageValuationStrategy creates a new weighted average valuation strategy
func NewWeightedAverageValuationStrategy() *WeightedAverageValuationStrategy {
	return &WeightedAverageValuationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"weighted_average",
			strategy.StrategyTypeValuation,
			"Weighted average valuation, every lot re-priced at the blended cost",
		),
	}
}

// Method returns the costing method
func (s *WeightedAverageValuationStrategy) Method() strategy.ValuationMethod {
	return strategy.ValuationMethodWeightedAverage
}

// Valuate computes the valuation with every lot re-priced at the single
// rounded blended cost. Lot order is irrelevant and preserved as given.
func (s *WeightedAverageValuationStrategy) Valuate(
	ctx context.Context,
	productID string,
	lots []strategy.Lot,
	precision int32,
) (strategy.ValuationResult, error) {
	totalQty, totalValue, avgCost := strategy.BlendedAverage(lots, precision)

	breakdown := make([]strategy.LotValuation, 0, len(lots))
	for _, lot := range lots {
		breakdown = append(breakdown, strategy.LotValuation{
			LotID:      lot.ID,
			LotNumber:  lot.LotNumber,
			Quantity:   lot.Quantity,
			UnitCost:   avgCost,
			Value:      lot.Quantity.Mul(avgCost).Round(precision),
			ReceivedAt: lot.ReceivedAt,
		})
	}

	return strategy.ValuationResult{
		ProductID:     productID,
		Method:        strategy.ValuationMethodWeightedAverage,
		AverageCost:   avgCost,
		TotalQuantity: totalQty,
		TotalValue:    totalValue,
		Lots:          breakdown,
	}, nil
}

// valuateAtOwnCost builds a result where each lot keeps its own purchase
// cost; shared by the FIFO and LIFO strategies which differ only in order.
func valuateAtOwnCost(
	productID string,
	method strategy.ValuationMethod,
	orderedLots []strategy.Lot,
	precision int32,
) strategy.ValuationResult {
	totalQty, totalValue, avgCost := strategy.BlendedAverage(orderedLots, precision)

	breakdown := make([]strategy.LotValuation, 0, len(orderedLots))
	for _, lot := range orderedLots {
		breakdown = append(breakdown, strategy.LotValuation{
			LotID:      lot.ID,
			LotNumber:  lot.LotNumber,
			Quantity:   lot.Quantity,
			UnitCost:   lot.UnitCost,
			Value:      lot.TotalCost().Round(precision),
			ReceivedAt: lot.ReceivedAt,
		})
	}

	return strategy.ValuationResult{
		ProductID:     productID,
		Method:        method,
		AverageCost:   avgCost,
		TotalQuantity: totalQty,
		TotalValue:    totalValue,
		Lots:          breakdown,
	}
}
