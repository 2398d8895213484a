package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pharma/backend/internal/domain/shared"
	"github.com/pharma/backend/internal/domain/shared/strategy"
)

// StrategyRegistry manages strategy registrations
type StrategyRegistry struct {
	mu                  sync.RWMutex
	valuationStrategies map[string]strategy.LotValuationStrategy
	defaults            map[strategy.StrategyType]string
}

// NewStrategyRegistry creates a new strategy registry
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		valuationStrategies: make(map[string]strategy.LotValuationStrategy),
		defaults:            make(map[strategy.StrategyType]string),
	}
}

// RegisterValuationStrategy registers a lot valuation strategy
func (r *StrategyRegistry) RegisterValuationStrategy(s strategy.LotValuationStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.valuationStrategies[name]; exists {
		return fmt.Errorf("%w: valuation strategy '%s' already registered", shared.ErrAlreadyExists, name)
	}
	r.valuationStrategies[name] = s
	return nil
}

// GetValuationStrategy returns a valuation strategy by name, or the default if name is empty
func (r *StrategyRegistry) GetValuationStrategy(name string) (strategy.LotValuationStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaults[strategy.StrategyTypeValuation]
		if name == "" {
			return nil, fmt.Errorf("%w: no default valuation strategy set", shared.ErrNotFound)
		}
	}

	s, exists := r.valuationStrategies[name]
	if !exists {
		return nil, fmt.Errorf("%w: valuation strategy '%s' not found", shared.ErrNotFound, name)
	}
	return s, nil
}

// GetValuationStrategyOrDefault returns a valuation strategy by name, or the default if not found
func (r *StrategyRegistry) GetValuationStrategyOrDefault(name string) strategy.LotValuationStrategy {
	s, err := r.GetValuationStrategy(name)
	if err != nil {
		s, _ = r.GetValuationStrategy("")
	}
	return s
}

// ListValuationStrategies returns all registered valuation strategy names
func (r *StrategyRegistry) ListValuationStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.valuationStrategies))
	for name := range r.valuationStrategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnregisterValuationStrategy removes a valuation strategy
func (r *StrategyRegistry) UnregisterValuationStrategy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.valuationStrategies[name]; !exists {
		return fmt.Errorf("%w: valuation strategy '%s' not found", shared.ErrNotFound, name)
	}
	delete(r.valuationStrategies, name)

	// Clear default if it was this strategy
	if r.defaults[strategy.StrategyTypeValuation] == name {
		delete(r.defaults, strategy.StrategyTypeValuation)
	}
	return nil
}

// SetDefault sets the default strategy for a strategy type
func (r *StrategyRegistry) SetDefault(strategyType strategy.StrategyType, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isRegisteredLocked(strategyType, name) {
		return fmt.Errorf("%w: strategy '%s' of type '%s' not found", shared.ErrNotFound, name, strategyType)
	}

	r.defaults[strategyType] = name
	return nil
}

// GetDefault returns the default strategy name for a strategy type
func (r *StrategyRegistry) GetDefault(strategyType strategy.StrategyType) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults[strategyType]
}

// HasDefault returns true if a default is set for the strategy type
func (r *StrategyRegistry) HasDefault(strategyType strategy.StrategyType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults[strategyType] != ""
}

// IsRegistered returns true if a strategy with the given name is registered for the type
func (r *StrategyRegistry) IsRegistered(strategyType strategy.StrategyType, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isRegisteredLocked(strategyType, name)
}

// isRegisteredLocked checks registration without locking (caller must hold lock)
func (r *StrategyRegistry) isRegisteredLocked(strategyType strategy.StrategyType, name string) bool {
	switch strategyType {
	case strategy.StrategyTypeValuation:
		_, exists := r.valuationStrategies[name]
		return exists
	default:
		return false
	}
}
