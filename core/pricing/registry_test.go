package pricing

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"infra-tco/core/catalog"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

func TestGetPricingDirectProvider(t *testing.T) {
	r := NewRegistry()

	m, err := r.GetPricing(types.ProviderAWS, "")
	require.NoError(t, err)
	assert.Equal(t, types.ProviderAWS, m.Provider)
	assert.Equal(t, "us-east-1", m.Region)
	assert.Equal(t, "default", m.Source)
	assert.Contains(t, m.Licenses.PerDistribution, types.DistOpenShift)
}

func TestGetPricingManagedOpenShift(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		provider types.CloudProvider
		base     types.CloudProvider
		fee      string
	}{
		{types.ProviderROSA, types.ProviderAWS, "0.171"},
		{types.ProviderARO, types.ProviderAzure, "0.21"},
		{types.ProviderOSD, types.ProviderAWS, "0.166"},
		{types.ProviderROKS, types.ProviderIBM, "0.2"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			m, err := r.GetPricing(tt.provider, "")
			require.NoError(t, err)

			base, err := r.GetPricing(tt.base, "")
			require.NoError(t, err)

			assert.Equal(t, tt.provider, m.Provider)
			assert.Empty(t, m.Licenses.PerDistribution)
			assert.Equal(t, tt.fee, m.Compute.OpenShiftServiceFeePerWorkerHour.String())
			assert.True(t, base.Compute.PerVCPUHour.Equal(m.Compute.PerVCPUHour))
			assert.True(t, base.Compute.OpenShiftServiceFeePerWorkerHour.IsZero())
		})
	}
}

func TestGetPricingUnknownProvider(t *testing.T) {
	_, err := NewRegistry().GetPricing("mainframe", "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
}

func TestGetPricingManagedOpenShiftWithoutBaseCard(t *testing.T) {
	b := catalog.NewBuilder()
	catalog.RegisterGCP(b)
	r := NewRegistry(WithCatalog(b.Build()))

	_, err := r.GetPricing(types.ProviderROSA, "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypePricing))

	_, err = r.GetPricing(types.ProviderGCP, "")
	assert.NoError(t, err)
}

func TestGetPricingIsIdempotent(t *testing.T) {
	r := NewRegistry()
	a, err := r.GetPricing(types.ProviderGCP, "europe-west1")
	require.NoError(t, err)
	b, err := r.GetPricing(types.ProviderGCP, "europe-west1")
	require.NoError(t, err)

	assert.True(t, a.Compute.PerVCPUHour.Equal(b.Compute.PerVCPUHour))
	assert.True(t, a.Storage.SSDPerGBMonth.Equal(b.Storage.SSDPerGBMonth))
	assert.True(t, a.Network.EgressPerGB.Equal(b.Network.EgressPerGB))

	// results are independent copies
	a.Compute.InstanceTypes["mutated"] = decimal.NewFromInt(1)
	assert.NotContains(t, b.Compute.InstanceTypes, "mutated")
}

func TestGetPricingForType(t *testing.T) {
	r := NewRegistry()

	onDemand, err := r.GetPricingForType(types.ProviderAWS, "", types.PricingOnDemand)
	require.NoError(t, err)
	reserved, err := r.GetPricingForType(types.ProviderAWS, "", types.PricingReserved3Y)
	require.NoError(t, err)

	want := onDemand.Compute.PerVCPUHour.Mul(decimal.NewFromFloat(0.43))
	assert.True(t, want.Equal(reserved.Compute.PerVCPUHour))
	assert.True(t, onDemand.Compute.ManagedControlPlaneHour.Equal(reserved.Compute.ManagedControlPlaneHour))
	assert.True(t, onDemand.Storage.SSDPerGBMonth.Equal(reserved.Storage.SSDPerGBMonth))
	assert.Equal(t, types.PricingReserved3Y, reserved.PricingType)
}

func TestGetPricingForTypeWithoutReservations(t *testing.T) {
	r := NewRegistry()

	spot, err := r.GetPricingForType(types.ProviderHetzner, "", types.PricingSpot)
	require.NoError(t, err)
	assert.Equal(t, types.PricingOnDemand, spot.PricingType)

	_, err = r.GetPricingForType(types.ProviderAWS, "", "lease")
	assert.True(t, errors.IsType(err, errors.TypeInvalidArgument))
}

func TestGetLicensingResolution(t *testing.T) {
	r := NewRegistry()
	in := types.LicensingInput{NodeCount: 10}

	tests := []struct {
		name    string
		dist    types.Distribution
		annual  int64
		license bool
	}{
		{"direct", types.DistOpenShift, 25000, true},
		{"variant resolves to base", types.DistRancherEKS, 10000, true},
		{"per-core variant", types.DistTanzuAzure, 10 * 8 * 1500, true},
		{"open source variant", types.DistK3sAWS, 0, false},
		{"managed openshift", types.DistROSA, 0, false},
		{"managed kubernetes", types.DistEKS, 0, false},
		{"unknown", "openshift-4.99", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost := r.GetLicensing(tt.dist, in)
			assert.Equal(t, tt.dist, cost.Distribution)
			assert.True(t, decimal.NewFromInt(tt.annual).Equal(cost.AnnualCost), "annual %s", cost.AnnualCost)
			assert.Equal(t, tt.license, r.HasLicenseCost(tt.dist))
		})
	}
}

func TestManagedOpenShiftLicensingNamesFee(t *testing.T) {
	cost := NewRegistry().GetLicensing(types.DistARO, types.LicensingInput{NodeCount: 6})
	assert.Contains(t, cost.Basis, "ARO")
	assert.Contains(t, cost.Basis, "0.21")
}

func TestUnknownDistributionLogsWarning(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	r := NewRegistry(WithLogger(zap.New(core)))

	r.GetLicensing("not-a-distro", types.LicensingInput{NodeCount: 3})
	r.GetLicensing(types.DistGKE, types.LicensingInput{NodeCount: 3})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "not-a-distro", logs.All()[0].ContextMap()["distribution"])
}

func TestProviderFor(t *testing.T) {
	r := NewRegistry()

	p, ok := r.ProviderFor(types.DistOpenShiftAzure)
	require.True(t, ok)
	assert.Equal(t, types.ProviderAzure, p)

	p, _ = r.ProviderFor(types.DistROKS)
	assert.Equal(t, types.ProviderROKS, p)

	_, ok = r.ProviderFor("nope")
	assert.False(t, ok)
}

func TestProvidersIncludeManagedOpenShift(t *testing.T) {
	providers := NewRegistry().Providers()
	assert.Contains(t, providers, types.ProviderROSA)
	assert.Contains(t, providers, types.ProviderExoscale)
	assert.NotContains(t, providers, types.ProviderOnPrem)
}

type staticOverrides map[string]*RateCardOverride

func (s staticOverrides) Lookup(p types.CloudProvider, region string) (*RateCardOverride, bool) {
	o, ok := s[cacheKey(p, region)]
	return o, ok
}

func TestRateOverridesReplaceRateCards(t *testing.T) {
	live := &RateCardOverride{
		Compute: types.ComputePricing{
			PerVCPUHour:  decimal.RequireFromString("0.05"),
			PerGBRAMHour: decimal.RequireFromString("0.007"),
		},
		Storage: types.StoragePricing{SSDPerGBMonth: decimal.RequireFromString("0.09")},
	}
	r := NewRegistry(WithRateOverrides(staticOverrides{"aws/us-east-1": live}))

	m, err := r.GetPricing(types.ProviderAWS, "")
	require.NoError(t, err)
	assert.Equal(t, "live", m.Source)
	assert.Equal(t, "0.05", m.Compute.PerVCPUHour.String())

	rosa, err := r.GetPricing(types.ProviderROSA, "us-east-1")
	require.NoError(t, err)
	assert.Equal(t, "0.05", rosa.Compute.PerVCPUHour.String())
	assert.Equal(t, "0.171", rosa.Compute.OpenShiftServiceFeePerWorkerHour.String())

	other, err := r.GetPricing(types.ProviderAWS, "eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, "default", other.Source)
}

func TestRegistryConcurrentUse(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.GetPricing(types.ProviderAzure, "")
			assert.NoError(t, err)
			r.GetLicensing(types.DistRancherAKS, types.LicensingInput{NodeCount: 3})
		}()
	}
	wg.Wait()
}
