package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/onprem"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(NewViper(), "")
	require.NoError(t, err)

	assert.True(t, s.IncludePricingInResults)
	assert.Equal(t, "on-demand", s.CloudPricing.DefaultPricingType)
	assert.Equal(t, "cli", s.Output.DefaultFormat)
	assert.Equal(t, ":8080", s.Server.Address)
	assert.Equal(t, mendix.DefaultIncludedEnvironments, s.MendixPricing.IncludedEnvironments)
	assert.False(t, s.LiveRefreshEnabled())

	p := s.OnPremPricing()
	def := onprem.DefaultPricing()
	assert.True(t, def.ServerCost.Equal(p.ServerCost))
	assert.True(t, def.PUE.Equal(p.PUE))
	assert.Equal(t, def.NodesPerEngineer, p.NodesPerEngineer)
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "tco.yaml", `
include_pricing_in_results: false
on_prem_defaults:
  server_cost: 9500
  vms_per_server: 8
mendix_pricing:
  included_environments: 2
  default_discount_percent: 15
  environment_tiers:
    - {min: 1, max: 10, unit_price: 600}
    - {min: 11, max: -1, unit_price: 400}
cloud_api_configs:
  aws:
    enabled: true
    endpoint: https://prices.example.com/aws
    timeout: 5s
    regions: [us-east-1, eu-west-1]
cloud_pricing:
  default_pricing_type: reserved-1yr
  cache_ttl: 30m
`)

	s, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.False(t, s.IncludePricingInResults)
	assert.True(t, decimal.NewFromInt(9500).Equal(s.OnPremPricing().ServerCost))
	assert.Equal(t, 8, s.OnPremPricing().VMsPerServer)
	// untouched keys keep their defaults
	assert.True(t, onprem.DefaultPricing().SSDPerTB.Equal(s.OnPremPricing().SSDPerTB))

	assert.Equal(t, "reserved-1yr", s.CloudPricing.DefaultPricingType)
	assert.Equal(t, 30*time.Minute, s.RefresherConfig().TTL)

	require.Contains(t, s.CloudAPIConfigs, "aws")
	assert.Equal(t, 5*time.Second, s.CloudAPIConfigs["aws"].Timeout)
	assert.True(t, s.LiveRefreshEnabled())
	assert.Len(t, s.RateSources(), 1)

	targets := s.RefreshTargets(func(types.CloudProvider) (string, bool) { return "", false })
	assert.Len(t, targets, 2)

	opts, err := s.MendixOptions()
	require.NoError(t, err)
	eng, err := mendix.NewEngine(opts...)
	require.NoError(t, err)
	assert.Equal(t, 2, eng.IncludedEnvironments())
	assert.Len(t, eng.EnvironmentTiers(), 2)
}

func TestRefreshTargetsUseDefaultRegion(t *testing.T) {
	s := Default()
	s.CloudAPIConfigs = map[string]CloudAPIConfig{
		"GCP":   {Enabled: true, Endpoint: "https://prices.example.com/gcp"},
		"azure": {Enabled: false, Endpoint: "https://prices.example.com/azure"},
	}

	targets := s.RefreshTargets(func(p types.CloudProvider) (string, bool) {
		return "us-central1", p == types.ProviderGCP
	})
	require.Len(t, targets, 1)
	assert.Equal(t, types.ProviderGCP, targets[0].Provider)
	assert.Equal(t, "us-central1", targets[0].Region)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TCO_OUTPUT_DEFAULT_FORMAT", "json")
	t.Setenv("TCO_ON_PREM_DEFAULTS_SERVER_COST", "10000")
	t.Setenv("TCO_INCLUDE_PRICING_IN_RESULTS", "false")

	s, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "json", s.Output.DefaultFormat)
	assert.Equal(t, float64(10000), s.OnPremDefaults.ServerCost)
	assert.False(t, s.IncludePricingInResults)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	bad := writeFile(t, "bad.yaml", "cloud_pricing:\n  default_pricing_type: monthly\n")
	_, err = Load(NewViper(), bad)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	noEndpoint := writeFile(t, "api.json", `{"cloud_api_configs": {"aws": {"enabled": true}}}`)
	_, err = Load(NewViper(), noEndpoint)
	require.Error(t, err)
}

func TestValidateOnPremDefaults(t *testing.T) {
	s := Default()
	s.OnPremDefaults.NodesPerEngineer = 0
	err := s.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	s = Default()
	s.MendixPricing.DefaultDiscountPercent = 120
	assert.Error(t, s.Validate())
}

func TestGlobalSettings(t *testing.T) {
	orig := Get()
	defer Set(orig)

	s := Default()
	s.Server.Address = ":9090"
	Set(s)
	assert.Equal(t, ":9090", Get().Server.Address)
}
