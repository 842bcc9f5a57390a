// Package clouds - Strategy set
package clouds

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"infra-tco/core/catalog"
	"infra-tco/core/types"
)

// Set is a fixed collection of strategies keyed by provider.
// It is read-only once built.
type Set struct {
	strategies map[types.CloudProvider]Strategy
}

// NewSet builds a set from strategies, rejecting duplicates
func NewSet(strategies ...Strategy) (*Set, error) {
	s := &Set{strategies: make(map[types.CloudProvider]Strategy, len(strategies))}
	for _, st := range strategies {
		if _, exists := s.strategies[st.Provider()]; exists {
			return nil, fmt.Errorf("strategy already registered: %s", st.Provider())
		}
		s.strategies[st.Provider()] = st
	}
	return s, nil
}

// FromCatalog builds one RateCardStrategy per catalog rate card
func FromCatalog(c *catalog.Catalog, logger *zap.Logger) *Set {
	providers := c.Providers()
	strategies := make([]Strategy, 0, len(providers))
	for _, p := range providers {
		card, _ := c.Get(p)
		strategies = append(strategies, NewRateCardStrategy(card, logger))
	}
	// catalog keys are unique, so NewSet cannot fail here
	s, _ := NewSet(strategies...)
	return s
}

// Get returns the strategy for a provider
func (s *Set) Get(provider types.CloudProvider) (Strategy, bool) {
	st, ok := s.strategies[provider]
	return st, ok
}

// Providers returns all providers in the set, sorted
func (s *Set) Providers() []types.CloudProvider {
	providers := make([]types.CloudProvider, 0, len(s.strategies))
	for p := range s.strategies {
		providers = append(providers, p)
	}
	sort.Slice(providers, func(i, j int) bool { return providers[i] < providers[j] })
	return providers
}
