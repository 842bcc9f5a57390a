package engine

import (
	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// Target selects which engine prices a deployment
type Target string

const (
	TargetCloud      Target = "cloud"
	TargetOnPrem     Target = "onprem"
	TargetMendix     Target = "mendix"
	TargetOutSystems Target = "outsystems"
)

// ClusterMode is the cluster topology across environments
type ClusterMode string

const (
	// ClusterShared runs every environment in one cluster
	ClusterShared ClusterMode = "shared"

	// ClusterPerEnvironment gives each environment its own cluster
	ClusterPerEnvironment ClusterMode = "per-environment"
)

// EnvironmentSpec is the node shape of one environment
type EnvironmentSpec struct {
	Environment types.EnvironmentType `json:"environment"`
	Nodes       int                   `json:"nodes"`

	// CPU, RAMGB and DiskGB are per node
	CPU    int `json:"cpu"`
	RAMGB  int `json:"ram_gb"`
	DiskGB int `json:"disk_gb,omitempty"`
}

// TotalCPU is Nodes * CPU
func (e EnvironmentSpec) TotalCPU() int { return e.Nodes * e.CPU }

// TotalRAMGB is Nodes * RAMGB
func (e EnvironmentSpec) TotalRAMGB() int { return e.Nodes * e.RAMGB }

// TotalDiskGB is Nodes * DiskGB
func (e EnvironmentSpec) TotalDiskGB() int { return e.Nodes * e.DiskGB }

// DeploymentConfig is one estimation request
type DeploymentConfig struct {
	Target       Target              `json:"target"`
	Provider     types.CloudProvider `json:"provider,omitempty"`
	Distribution types.Distribution  `json:"distribution,omitempty"`
	Region       string              `json:"region,omitempty"`
	PricingType  types.PricingType   `json:"pricing_type,omitempty"`
	SupportTier  types.SupportTier   `json:"support_tier,omitempty"`

	Environments []EnvironmentSpec `json:"environments,omitempty"`

	// Shared infrastructure, per month
	LoadBalancers    int `json:"load_balancers,omitempty"`
	EgressGBPerMonth int `json:"egress_gb_per_month,omitempty"`
	ObjectStorageGB  int `json:"object_storage_gb,omitempty"`
	BackupGB         int `json:"backup_gb,omitempty"`
	RegistryGB       int `json:"registry_gb,omitempty"`
	NATGateways      int `json:"nat_gateways,omitempty"`
	VPNConnections   int `json:"vpn_connections,omitempty"`
	PublicIPs        int `json:"public_ips,omitempty"`

	ClusterMode ClusterMode `json:"cluster_mode,omitempty"`

	// HA adds a load balancer per cluster
	HA bool `json:"ha,omitempty"`

	// DR mirrors the production environment as a dr environment
	DR bool `json:"dr,omitempty"`

	// VMMode treats nodes as virtual machines packed onto on-prem servers
	VMMode bool `json:"vm_mode,omitempty"`

	Mendix     *mendix.Config     `json:"mendix,omitempty"`
	OutSystems *outsystems.Config `json:"outsystems,omitempty"`
}

// TotalNodes sums nodes across environments
func (c *DeploymentConfig) TotalNodes() int {
	n := 0
	for _, e := range c.Environments {
		n += e.Nodes
	}
	return n
}

// HasProduction reports whether any environment serves production
func (c *DeploymentConfig) HasProduction() bool {
	for _, e := range c.Environments {
		if e.Environment.IsProduction() {
			return true
		}
	}
	return false
}

// Clusters is the number of Kubernetes clusters the topology implies
func (c *DeploymentConfig) Clusters() int {
	if len(c.Environments) == 0 {
		return 0
	}
	if c.ClusterMode == ClusterPerEnvironment {
		return len(c.Environments)
	}
	return 1
}

// Validate rejects negative quantities and unknown enums
func (c *DeploymentConfig) Validate() error {
	switch c.Target {
	case TargetCloud, TargetOnPrem, TargetMendix, TargetOutSystems, "":
	default:
		return errors.InvalidArgument("unknown deployment target %q", c.Target)
	}
	switch c.ClusterMode {
	case ClusterShared, ClusterPerEnvironment, "":
	default:
		return errors.InvalidArgument("unknown cluster mode %q", c.ClusterMode)
	}
	if c.PricingType != "" && !c.PricingType.IsValid() {
		return errors.InvalidArgument("unknown pricing type %q", c.PricingType)
	}

	counts := map[string]int{
		"load_balancers":      c.LoadBalancers,
		"egress_gb_per_month": c.EgressGBPerMonth,
		"object_storage_gb":   c.ObjectStorageGB,
		"backup_gb":           c.BackupGB,
		"registry_gb":         c.RegistryGB,
		"nat_gateways":        c.NATGateways,
		"vpn_connections":     c.VPNConnections,
		"public_ips":          c.PublicIPs,
	}
	for name, v := range counts {
		if v < 0 {
			return errors.InvalidArgument("%s must not be negative, got %d", name, v)
		}
	}
	for _, e := range c.Environments {
		if e.Environment == "" {
			return errors.InvalidArgument("environment name is required")
		}
		if e.Nodes < 0 || e.CPU < 0 || e.RAMGB < 0 || e.DiskGB < 0 {
			return errors.InvalidArgument("environment %s has a negative size", e.Environment)
		}
	}
	return nil
}
