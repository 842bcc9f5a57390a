package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infra-tco/core/engine"
	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

const cloudScenario = `
target       = "cloud"
provider     = "aws"
distribution = "openshift"
region       = var.region
support_tier = "business"
cluster_mode = "per-environment"
ha           = true

environment "prod" {
  nodes   = var.prod_nodes
  cpu     = 8
  ram_gb  = 32
  disk_gb = 100
}

environment "dev" {
  nodes  = 2
  cpu    = 4
  ram_gb = 16
}

network {
  load_balancers      = 2
  egress_gb_per_month = 1000
  public_ips          = 3
}

storage {
  object_gb = 500
  backup_gb = 250
}
`

func TestParseCloudScenario(t *testing.T) {
	l := NewLoader(map[string]string{"region": "eu-west-1", "prod_nodes": "6"})
	cfg, err := l.Parse([]byte(cloudScenario), "cloud.hcl")
	require.NoError(t, err)

	assert.Equal(t, engine.TargetCloud, cfg.Target)
	assert.Equal(t, types.ProviderAWS, cfg.Provider)
	assert.Equal(t, types.DistOpenShift, cfg.Distribution)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, types.SupportBusiness, cfg.SupportTier)
	assert.Equal(t, engine.ClusterPerEnvironment, cfg.ClusterMode)
	assert.True(t, cfg.HA)

	require.Len(t, cfg.Environments, 2)
	assert.Equal(t, engine.EnvironmentSpec{Environment: types.EnvProd, Nodes: 6, CPU: 8, RAMGB: 32, DiskGB: 100}, cfg.Environments[0])
	assert.Equal(t, 8, cfg.TotalNodes())
	assert.Equal(t, 2, cfg.Clusters())

	assert.Equal(t, 2, cfg.LoadBalancers)
	assert.Equal(t, 1000, cfg.EgressGBPerMonth)
	assert.Equal(t, 3, cfg.PublicIPs)
	assert.Equal(t, 500, cfg.ObjectStorageGB)
	assert.Equal(t, 250, cfg.BackupGB)
	assert.Nil(t, cfg.Mendix)
}

func TestParsedScenarioEstimates(t *testing.T) {
	l := NewLoader(map[string]string{"region": "us-east-1", "prod_nodes": "3"})
	cfg, err := l.Parse([]byte(cloudScenario), "cloud.hcl")
	require.NoError(t, err)

	e, err := engine.NewEstimator()
	require.NoError(t, err)
	est, err := e.Estimate(cfg)
	require.NoError(t, err)
	assert.True(t, est.MonthlyTotal.IsPositive())
	assert.Contains(t, est.Breakdown, types.CategoryLicense)
}

func TestParseLowCodeScenarios(t *testing.T) {
	src := `
mendix {
  category             = "private-cloud"
  private_cloud_target = "eks"
  internal_users       = 250
  environments         = 5
  discount_percent     = 10

  genai_pack {
    size = "M"
  }
}
`
	cfg, err := NewLoader(nil).Parse([]byte(src), "mendix.hcl")
	require.NoError(t, err)
	require.NotNil(t, cfg.Mendix)
	assert.Equal(t, mendix.CategoryPrivateCloud, cfg.Mendix.Category)
	assert.Equal(t, mendix.PrivateCloudEKS, cfg.Mendix.PrivateCloudTarget)
	require.NotNil(t, cfg.Mendix.DiscountPercent)
	assert.Equal(t, "10", cfg.Mendix.DiscountPercent.String())
	require.Len(t, cfg.Mendix.GenAIPacks, 1)
	assert.Equal(t, 1, cfg.Mendix.GenAIPacks[0].Quantity)

	src = `
outsystems {
  edition        = "standard"
  internal_users = 100
  environments   = 3
}
`
	cfg, err = NewLoader(nil).Parse([]byte(src), "os.hcl")
	require.NoError(t, err)
	require.NotNil(t, cfg.OutSystems)
	assert.Equal(t, outsystems.EditionStandard, cfg.OutSystems.Edition)
	assert.Equal(t, outsystems.DeploymentCloud, cfg.OutSystems.DeploymentType)
}

func TestLoaderReparsesSameFilename(t *testing.T) {
	l := NewLoader(nil)

	first, err := l.Parse([]byte(`
distribution = "k3s"
environment "prod" {
  nodes  = 3
  cpu    = 4
  ram_gb = 16
}
`), "scenario.hcl")
	require.NoError(t, err)
	assert.Equal(t, types.DistK3s, first.Distribution)
	assert.False(t, first.VMMode)

	second, err := l.Parse([]byte(`
distribution = "rancher"
vm_mode      = true
environment "prod" {
  nodes  = 7
  cpu    = 8
  ram_gb = 32
}
`), "scenario.hcl")
	require.NoError(t, err)
	assert.Equal(t, types.DistRancher, second.Distribution)
	assert.True(t, second.VMMode)
	require.Len(t, second.Environments, 1)
	assert.Equal(t, 7, second.Environments[0].Nodes)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onprem.hcl")
	body := `
distribution = "rancher"

environment "prod" {
  nodes  = 4
  cpu    = 16
  ram_gb = 64
}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := NewLoader(nil).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, types.DistRancher, cfg.Distribution)
	assert.Equal(t, 4, cfg.TotalNodes())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "target = \n"},
		{"unknown attribute", "flavour = \"vanilla\"\n"},
		{"missing nodes", "environment \"prod\" {\n  cpu = 4\n  ram_gb = 8\n}\n"},
		{"undefined variable", "region = var.missing\n"},
		{"negative count", "network {\n  load_balancers = -1\n}\n"},
		{"bad target", "target = \"mainframe\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(nil).Parse([]byte(tt.src), tt.name+".hcl")
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeParsing))
		})
	}

	_, err := NewLoader(nil).LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}
