package valuation

import (
	"context"
	"testing"
	"time"

	"github.com/pharma/backend/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLots() []strategy.Lot {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return []strategy.Lot{
		{
			ID:         "lot-2",
			ProductID:  "prod-1",
			LotNumber:  "L-002",
			Quantity:   decimal.NewFromInt(20),
			UnitCost:   decimal.NewFromInt(110),
			ReceivedAt: base.AddDate(0, 0, 5),
		},
		{
			ID:         "lot-1",
			ProductID:  "prod-1",
			LotNumber:  "L-001",
			Quantity:   decimal.NewFromInt(10),
			UnitCost:   decimal.NewFromInt(100),
			ReceivedAt: base,
		},
		{
			ID:         "lot-3",
			ProductID:  "prod-1",
			LotNumber:  "L-003",
			Quantity:   decimal.NewFromInt(30),
			UnitCost:   decimal.NewFromInt(120),
			ReceivedAt: base.AddDate(0, 0, 9),
		},
	}
}

func TestNewFIFOValuationStrategy(t *testing.T) {
	s := NewFIFOValuationStrategy()

	assert.Equal(t, "fifo", s.Name())
	assert.Equal(t, strategy.StrategyTypeValuation, s.Type())
	assert.Equal(t, strategy.ValuationMethodFIFO, s.Method())
	assert.NotEmpty(t, s.Description())
}

func TestFIFOValuationStrategy_Valuate(t *testing.T) {
	s := NewFIFOValuationStrategy()
	ctx := context.Background()

	t.Run("orders lots oldest first and keeps per-lot costs", func(t *testing.T) {
		result, err := s.Valuate(ctx, "prod-1", testLots(), 2)
		require.NoError(t, err)

		require.Len(t, result.Lots, 3)
		assert.Equal(t, "lot-1", result.Lots[0].LotID)
		assert.Equal(t, "lot-2", result.Lots[1].LotID)
		assert.Equal(t, "lot-3", result.Lots[2].LotID)

		assert.True(t, decimal.NewFromInt(100).Equal(result.Lots[0].UnitCost))
		assert.True(t, decimal.NewFromInt(110).Equal(result.Lots[1].UnitCost))
		assert.True(t, decimal.NewFromInt(120).Equal(result.Lots[2].UnitCost))

		// (10*100 + 20*110 + 30*120) / 60 = 113.33
		assert.True(t, decimal.NewFromFloat(113.33).Equal(result.AverageCost),
			"expected 113.33 but got %s", result.AverageCost.String())
		assert.True(t, decimal.NewFromInt(60).Equal(result.TotalQuantity))
		assert.True(t, decimal.NewFromInt(6800).Equal(result.TotalValue))
	})

	t.Run("empty lot set yields zero result", func(t *testing.T) {
		result, err := s.Valuate(ctx, "prod-1", nil, 2)
		require.NoError(t, err)

		assert.True(t, result.AverageCost.IsZero())
		assert.True(t, result.TotalQuantity.IsZero())
		assert.True(t, result.TotalValue.IsZero())
		assert.Empty(t, result.Lots)
	})

	t.Run("zero total quantity yields zero average not error", func(t *testing.T) {
		lots := []strategy.Lot{
			{ID: "lot-1", Quantity: decimal.Zero, UnitCost: decimal.NewFromInt(100), ReceivedAt: time.Now()},
		}

		result, err := s.Valuate(ctx, "prod-1", lots, 2)
		require.NoError(t, err)
		assert.True(t, result.AverageCost.IsZero())
	})
}

func TestFIFOAndLIFO_SameAggregatesDifferentOrder(t *testing.T) {
	ctx := context.Background()
	fifo := NewFIFOValuationStrategy()
	lifo := NewLIFOValuationStrategy()

	fifoResult, err := fifo.Valuate(ctx, "prod-1", testLots(), 2)
	require.NoError(t, err)
	lifoResult, err := lifo.Valuate(ctx, "prod-1", testLots(), 2)
	require.NoError(t, err)

	assert.True(t, fifoResult.TotalValue.Equal(lifoResult.TotalValue))
	assert.True(t, fifoResult.TotalQuantity.Equal(lifoResult.TotalQuantity))
	assert.True(t, fifoResult.AverageCost.Equal(lifoResult.AverageCost))

	require.Len(t, lifoResult.Lots, 3)
	assert.Equal(t, "lot-3", lifoResult.Lots[0].LotID)
	assert.Equal(t, "lot-2", lifoResult.Lots[1].LotID)
	assert.Equal(t, "lot-1", lifoResult.Lots[2].LotID)
}
