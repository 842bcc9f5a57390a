package licensing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/types"
)

func TestOpenShiftPerNode(t *testing.T) {
	s := Defaults()[types.DistOpenShift]
	require.NotNil(t, s)

	cost := s.Calculate(types.LicensingInput{NodeCount: 20})

	assert.True(t, decimal.NewFromInt(50000).Equal(cost.AnnualCost), "annual %s", cost.AnnualCost)
	assert.Equal(t, "4166.67", cost.MonthlyCost.StringFixed(2))
	assert.True(t, cost.HasLicense)
	assert.Contains(t, cost.Basis, "20 nodes")
}

func TestPerNodeRates(t *testing.T) {
	strategies := Defaults()
	tests := []struct {
		dist types.Distribution
		want int64
	}{
		{types.DistOpenShift, 2500},
		{types.DistRancher, 1000},
		{types.DistCharmed, 500},
	}

	for _, tt := range tests {
		got := strategies[tt.dist].AnnualCost(1, types.None[int]())
		assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "%s: %s", tt.dist, got)
	}
}

func TestTanzuPerCore(t *testing.T) {
	s := Defaults()[types.DistTanzu]

	// 4 nodes default to 8 cores each
	defaulted := s.Calculate(types.LicensingInput{NodeCount: 4})
	assert.True(t, decimal.NewFromInt(4*8*1500).Equal(defaulted.AnnualCost))
	assert.Contains(t, defaulted.Basis, "assuming 8 cores/node")

	explicit := s.Calculate(types.LicensingInput{NodeCount: 4, CoreCount: types.Some(64)})
	assert.True(t, decimal.NewFromInt(64*1500).Equal(explicit.AnnualCost))
}

func TestOpenSourceDistributionsAreFree(t *testing.T) {
	strategies := Defaults()
	for _, d := range []types.Distribution{types.DistRKE2, types.DistK3s, types.DistMicroK8s, types.DistKubernetes} {
		s := strategies[d]
		require.NotNil(t, s, d)
		assert.False(t, s.HasLicenseCost(), d)
		assert.True(t, s.Calculate(types.LicensingInput{NodeCount: 50}).AnnualCost.IsZero(), d)
	}
}

func TestManagedServiceNamesFee(t *testing.T) {
	s := NewManagedService(types.DistROSA, "ROSA", decimal.NewFromFloat(0.171))
	cost := s.Calculate(types.LicensingInput{NodeCount: 10})

	assert.True(t, cost.AnnualCost.IsZero())
	assert.False(t, cost.HasLicense)
	assert.Contains(t, cost.Basis, "0.171")
}

func TestNegativeNodeCountIsZero(t *testing.T) {
	s := Defaults()[types.DistOpenShift]
	assert.True(t, s.AnnualCost(-5, types.None[int]()).IsZero())
}
