package alternatives

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/types"
)

func serviceNames(alts []types.CloudAlternative) []string {
	out := make([]string, 0, len(alts))
	for _, a := range alts {
		out = append(out, a.ServiceName)
	}
	return out
}

func TestOpenShiftAlternatives(t *testing.T) {
	m := NewMatcher(nil)

	alts := m.Alternatives(types.DistOpenShift)
	require.Len(t, alts, 4)
	assert.Equal(t, []string{"ROSA", "ARO", "OSD", "ROKS"}, serviceNames(alts))

	for _, a := range alts {
		assert.True(t, a.DistributionSpecific)
		assert.False(t, a.SourceDistribution.IsPresent())
	}
	assert.True(t, alts[0].Recommended)
	assert.True(t, alts[1].Recommended)
	assert.False(t, alts[2].Recommended)
	assert.False(t, alts[3].Recommended)
}

func TestAlternativesByDistribution(t *testing.T) {
	m := NewMatcher(nil)

	tests := []struct {
		dist  types.Distribution
		first string
		count int
	}{
		{types.DistRancher, "EKS + Rancher", 3},
		{types.DistTanzu, "VMC + Tanzu", 3},
		{types.DistCharmed, "Charmed K8s (AWS)", 2},
		{types.DistRKE2, "RKE2 (AWS)", 2},
		{types.DistRancherAKS, "EKS + Rancher", 3},
		{types.DistOpenShiftAzure, "ROSA", 4},
		{types.DistKubernetes, "EKS", 4},
	}
	for _, tt := range tests {
		t.Run(string(tt.dist), func(t *testing.T) {
			alts := m.Alternatives(tt.dist)
			require.Len(t, alts, tt.count)
			assert.Equal(t, tt.first, alts[0].ServiceName)
		})
	}
}

func TestLightweightDistributionsPrependSmallClouds(t *testing.T) {
	m := NewMatcher(nil)

	for _, d := range []types.Distribution{types.DistK3s, types.DistMicroK8s} {
		alts := m.Alternatives(d)
		assert.Equal(t, []string{"DOKS", "LKE", "Hetzner K8s", "EKS", "AKS", "GKE", "OKE"}, serviceNames(alts))
		for _, a := range alts {
			src, ok := a.SourceDistribution.Get()
			require.True(t, ok)
			assert.Equal(t, d, src)
		}
	}
}

func TestGenericListIsNeverMutated(t *testing.T) {
	m := NewMatcher(nil)

	alts := m.Alternatives(types.DistKubernetes)
	alts[0].Features[0] = "changed"
	alts[0].Recommended = false

	for _, a := range generic {
		assert.False(t, a.SourceDistribution.IsPresent())
	}
	assert.NotEqual(t, "changed", generic[0].Features[0])
	assert.True(t, generic[0].Recommended)

	again := m.Alternatives(types.DistK3s)
	src, _ := again[3].SourceDistribution.Get()
	assert.Equal(t, types.DistK3s, src)
}

func TestUnknownDistributionGetsTaggedGenericList(t *testing.T) {
	alts := NewMatcher(nil).Alternatives("nomad")
	require.Len(t, alts, 4)
	src, ok := alts[0].SourceDistribution.Get()
	assert.True(t, ok)
	assert.Equal(t, types.Distribution("nomad"), src)
}
