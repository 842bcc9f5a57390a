package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/types"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	errs := Default().Validate(DefaultValidationRules())
	for _, err := range errs {
		t.Error(err)
	}
}

func TestEveryDistributionMapsToOneProvider(t *testing.T) {
	for _, d := range Distributions() {
		info, ok := LookupDistribution(d)
		require.True(t, ok)
		assert.NotEmpty(t, info.Provider, "distribution %s", d)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	card, ok := Default().Get(types.ProviderAWS)
	require.True(t, ok)
	card.Regions["us-east-1"] = 99
	card.InstanceTypes["m5.large"] = 99

	again, _ := Default().Get(types.ProviderAWS)
	assert.Equal(t, 1.0, again.Regions["us-east-1"])
	assert.Equal(t, 0.096, again.InstanceTypes["m5.large"])
}

func TestLicenseRates(t *testing.T) {
	tests := []struct {
		dist  types.Distribution
		basis LicenseBasis
		rate  float64
	}{
		{types.DistOpenShift, BasisPerNode, 2500},
		{types.DistRancher, BasisPerNode, 1000},
		{types.DistCharmed, BasisPerNode, 500},
		{types.DistTanzu, BasisPerCore, 1500},
		{types.DistK3s, BasisNone, 0},
	}

	for _, tt := range tests {
		r, ok := LookupLicenseRate(tt.dist)
		require.True(t, ok, tt.dist)
		assert.Equal(t, tt.basis, r.Basis, tt.dist)
		assert.Equal(t, tt.rate, r.AnnualRate, tt.dist)
	}
}

func TestVariantsResolveToBase(t *testing.T) {
	info, ok := LookupDistribution(types.DistRancherEKS)
	require.True(t, ok)
	assert.True(t, info.IsVariant())
	assert.Equal(t, types.DistRancher, info.Base)
	assert.Equal(t, types.ProviderAWS, info.Provider)

	info, _ = LookupDistribution(types.DistK3sAzure)
	assert.Equal(t, types.DistK3s, info.Base)
}

func TestValidationCatchesBadCard(t *testing.T) {
	b := NewBuilder()
	b.Register(RateCard{
		Provider:      types.ProviderAWS,
		DefaultRegion: "nowhere",
		VCPUHour:      -1,
		GBRAMHour:     0.1,
		Regions:       map[string]float64{"us-east-1": 1},
	})

	errs := b.Build().Validate(DefaultValidationRules())
	assert.NotEmpty(t, errs)
}

func TestBuiltCatalogIsFrozen(t *testing.T) {
	b := NewBuilder()
	RegisterAWS(b)
	c := b.Build()

	b.Register(RateCard{Provider: types.ProviderAWS, VCPUHour: 99})
	RegisterGCP(b)

	card, ok := c.Get(types.ProviderAWS)
	require.True(t, ok)
	assert.NotEqual(t, 99.0, card.VCPUHour)
	assert.Equal(t, []types.CloudProvider{types.ProviderAWS}, c.Providers())

	card.Regions["us-east-1"] = 42
	again, _ := c.Get(types.ProviderAWS)
	assert.NotEqual(t, 42.0, again.Regions["us-east-1"])
}
