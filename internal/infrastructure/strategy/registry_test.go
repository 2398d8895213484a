package strategy

import (
	"testing"

	"github.com/pharma/backend/internal/domain/shared"
	"github.com/pharma/backend/internal/domain/shared/strategy"
	"github.com/pharma/backend/internal/infrastructure/strategy/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyRegistry_RegisterValuationStrategy(t *testing.T) {
	r := NewStrategyRegistry()

	err := r.RegisterValuationStrategy(valuation.NewFIFOValuationStrategy())
	require.NoError(t, err)

	err = r.RegisterValuationStrategy(valuation.NewFIFOValuationStrategy())
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestStrategyRegistry_GetValuationStrategy(t *testing.T) {
	r := NewStrategyRegistry()
	require.NoError(t, r.RegisterValuationStrategy(valuation.NewFIFOValuationStrategy()))
	require.NoError(t, r.RegisterValuationStrategy(valuation.NewWeightedAverageValuationStrategy()))
	require.NoError(t, r.SetDefault(strategy.StrategyTypeValuation, "weighted_average"))

	t.Run("by name", func(t *testing.T) {
		s, err := r.GetValuationStrategy("fifo")
		require.NoError(t, err)
		assert.Equal(t, "fifo", s.Name())
	})

	t.Run("empty name falls back to default", func(t *testing.T) {
		s, err := r.GetValuationStrategy("")
		require.NoError(t, err)
		assert.Equal(t, "weighted_average", s.Name())
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.GetValuationStrategy("specific_identification")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("or-default falls back on unknown name", func(t *testing.T) {
		s := r.GetValuationStrategyOrDefault("specific_identification")
		require.NotNil(t, s)
		assert.Equal(t, "weighted_average", s.Name())
	})
}

func TestStrategyRegistry_SetDefault(t *testing.T) {
	r := NewStrategyRegistry()

	err := r.SetDefault(strategy.StrategyTypeValuation, "fifo")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, r.RegisterValuationStrategy(valuation.NewFIFOValuationStrategy()))
	require.NoError(t, r.SetDefault(strategy.StrategyTypeValuation, "fifo"))

	assert.Equal(t, "fifo", r.GetDefault(strategy.StrategyTypeValuation))
	assert.True(t, r.HasDefault(strategy.StrategyTypeValuation))
	assert.True(t, r.IsRegistered(strategy.StrategyTypeValuation, "fifo"))
}

func TestStrategyRegistry_UnregisterValuationStrategy(t *testing.T) {
	r := NewStrategyRegistry()
	require.NoError(t, r.RegisterValuationStrategy(valuation.NewLIFOValuationStrategy()))
	require.NoError(t, r.SetDefault(strategy.StrategyTypeValuation, "lifo"))

	require.NoError(t, r.UnregisterValuationStrategy("lifo"))
	assert.False(t, r.HasDefault(strategy.StrategyTypeValuation))

	err := r.UnregisterValuationStrategy("lifo")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestNewRegistryWithDefaults(t *testing.T) {
	r, err := NewRegistryWithDefaults()
	require.NoError(t, err)

	assert.Equal(t, []string{"fifo", "lifo", "weighted_average"}, r.ListValuationStrategies())
	assert.Equal(t, "weighted_average", r.GetDefault(strategy.StrategyTypeValuation))
}
