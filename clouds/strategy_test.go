package clouds

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/catalog"
	"infra-tco/core/types"
)

func awsStrategy(t *testing.T) Strategy {
	t.Helper()
	st, ok := FromCatalog(catalog.Default(), nil).Get(types.ProviderAWS)
	require.True(t, ok)
	return st
}

func TestGetPricingDefaultsRegion(t *testing.T) {
	m := awsStrategy(t).GetPricing("")

	assert.Equal(t, "us-east-1", m.Region)
	assert.Equal(t, types.ProviderAWS, m.Provider)
	assert.Equal(t, types.PricingOnDemand, m.PricingType)
	assert.True(t, decimal.NewFromFloat(0.0336).Equal(m.Compute.PerVCPUHour))
	assert.True(t, decimal.NewFromFloat(0.10).Equal(m.Compute.ManagedControlPlaneHour))
}

func TestGetPricingAppliesRegionMultiplier(t *testing.T) {
	st := awsStrategy(t)
	base := st.GetPricing("us-east-1")
	sp := st.GetPricing("sa-east-1")

	want := base.Compute.PerVCPUHour.Mul(decimal.NewFromFloat(1.38))
	assert.True(t, want.Equal(sp.Compute.PerVCPUHour), "got %s want %s", sp.Compute.PerVCPUHour, want)

	// control plane fees are global
	assert.True(t, base.Compute.ManagedControlPlaneHour.Equal(sp.Compute.ManagedControlPlaneHour))
}

func TestGetPricingUnknownRegionUsesReferenceRates(t *testing.T) {
	st := awsStrategy(t)
	m := st.GetPricing("mars-north-1")

	assert.Equal(t, "mars-north-1", m.Region)
	assert.True(t, st.GetPricing("").Compute.PerVCPUHour.Equal(m.Compute.PerVCPUHour))
}

func TestGetPricingIsIdempotent(t *testing.T) {
	st := awsStrategy(t)
	assert.Equal(t, st.GetPricing("eu-west-1"), st.GetPricing("eu-west-1"))
}

func TestLicensePricingCarriesPerDistributionRates(t *testing.T) {
	m := awsStrategy(t).GetPricing("")

	assert.True(t, decimal.NewFromInt(2500).Equal(m.Licenses.PerDistribution[types.DistOpenShift]))
	assert.True(t, decimal.NewFromInt(1500).Equal(m.Licenses.PerDistribution[types.DistTanzu]))
	_, hasK3s := m.Licenses.PerDistribution[types.DistK3s]
	assert.False(t, hasK3s)
}

func TestFromCatalogCoversAllProviders(t *testing.T) {
	set := FromCatalog(catalog.Default(), nil)
	for _, p := range []types.CloudProvider{
		types.ProviderAWS, types.ProviderAzure, types.ProviderGCP, types.ProviderOCI,
		types.ProviderIBM, types.ProviderAlibaba, types.ProviderDigitalOcean, types.ProviderLinode,
		types.ProviderVultr, types.ProviderHetzner, types.ProviderOVH, types.ProviderScaleway,
		types.ProviderCivo, types.ProviderExoscale,
	} {
		_, ok := set.Get(p)
		assert.True(t, ok, "missing strategy for %s", p)
	}
	_, ok := set.Get(types.ProviderROSA)
	assert.False(t, ok)
}

func TestNewSetRejectsDuplicates(t *testing.T) {
	card, _ := catalog.Default().Get(types.ProviderAWS)
	_, err := NewSet(NewRateCardStrategy(card, nil), NewRateCardStrategy(card, nil))
	assert.Error(t, err)
}
