package primitives

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/types"
)

func mendixEnvTiers() []types.Tier {
	return []types.Tier{
		types.NewTier(4, 50, 552),
		types.NewTier(51, 100, 408),
		types.NewTier(101, 150, 240),
		types.NewTier(151, types.Unlimited, 0),
	}
}

func TestTieredCostMendixEnvironments(t *testing.T) {
	cost := TieredCost(60, 3, mendixEnvTiers())

	// 47 envs in 4-50, 10 envs in 51-60
	assert.True(t, decimal.NewFromInt(30024).Equal(cost), "got %s", cost)
}

func TestTieredCostBoundaryIsFree(t *testing.T) {
	for _, included := range []int{0, 1, 3, 10} {
		assert.True(t, TieredCost(included, included, mendixEnvTiers()).IsZero(), "included=%d", included)
	}
	assert.True(t, TieredCost(2, 3, mendixEnvTiers()).IsZero())
}

func TestTieredCostTierEdges(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int64
	}{
		{"first billable", 4, 552},
		{"last unit of first band", 50, 47 * 552},
		{"first unit of second band", 51, 47*552 + 408},
		{"end of third band", 150, 47*552 + 50*408 + 50*240},
		{"unlimited band is free", 500, 47*552 + 50*408 + 50*240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TieredCost(tt.quantity, 3, mendixEnvTiers())
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s want %d", got, tt.want)
		})
	}
}

func TestTieredCostIsMonotonic(t *testing.T) {
	tiers := []types.Tier{
		types.NewTier(1, 10, 5),
		types.NewTier(11, 20, 3),
		types.NewTier(21, types.Unlimited, 1),
	}

	prev := decimal.Zero
	for q := 0; q <= 100; q++ {
		cost := TieredCost(q, 2, tiers)
		require.True(t, cost.GreaterThanOrEqual(prev), "cost decreased at q=%d", q)
		prev = cost
	}
}

func TestTieredCostSortsUnorderedTiers(t *testing.T) {
	unordered := []types.Tier{
		types.NewTier(151, types.Unlimited, 0),
		types.NewTier(51, 100, 408),
		types.NewTier(4, 50, 552),
		types.NewTier(101, 150, 240),
	}

	assert.True(t, TieredCost(60, 3, unordered).Equal(TieredCost(60, 3, mendixEnvTiers())))
}

func TestTieredCostIncludedInsideBand(t *testing.T) {
	tiers := []types.Tier{types.NewTier(1, 100, 2)}

	// units 41..50 billed
	assert.True(t, decimal.NewFromInt(20).Equal(TieredCost(50, 40, tiers)))
}

func TestTieredCostBreakdown(t *testing.T) {
	bands := TieredCostBreakdown(60, 3, mendixEnvTiers())
	require.Len(t, bands, 2)
	assert.Equal(t, 47, bands[0].Units)
	assert.Equal(t, 10, bands[1].Units)
}

func TestPackCost(t *testing.T) {
	assert.Equal(t, 2, PacksNeeded(170, 150))
	assert.Equal(t, 1, PacksNeeded(150, 150))
	assert.Equal(t, 0, PacksNeeded(0, 150))
	assert.Equal(t, 0, PacksNeeded(10, 0))

	cost := PackCost(Additional(320, 150), 150, decimal.NewFromInt(18000))
	assert.True(t, decimal.NewFromInt(36000).Equal(cost), "got %s", cost)
}

func TestValidateTiers(t *testing.T) {
	require.NoError(t, types.ValidateTiers(mendixEnvTiers()))

	overlapping := []types.Tier{types.NewTier(1, 10, 1), types.NewTier(10, 20, 1)}
	assert.Error(t, types.ValidateTiers(overlapping))

	afterUnlimited := []types.Tier{types.NewTier(1, types.Unlimited, 1), types.NewTier(10, 20, 1)}
	assert.Error(t, types.ValidateTiers(afterUnlimited))
}
