// Package scenario loads deployment scenarios written in HCL.
//
// A scenario file describes one estimation request:
//
//	target       = "cloud"
//	provider     = "aws"
//	distribution = "openshift"
//	region       = var.region
//
//	environment "prod" {
//	  nodes  = 6
//	  cpu    = 8
//	  ram_gb = 32
//	}
//
//	network {
//	  load_balancers = 2
//	}
//
// Values may reference var.<name>, supplied by the caller.
package scenario

import (
	"github.com/shopspring/decimal"

	"infra-tco/core/engine"
	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/types"
)

// File is the root body of a scenario
type File struct {
	Target       string `hcl:"target,optional"`
	Provider     string `hcl:"provider,optional"`
	Distribution string `hcl:"distribution,optional"`
	Region       string `hcl:"region,optional"`
	PricingType  string `hcl:"pricing_type,optional"`
	SupportTier  string `hcl:"support_tier,optional"`
	ClusterMode  string `hcl:"cluster_mode,optional"`
	HA           bool   `hcl:"ha,optional"`
	DR           bool   `hcl:"dr,optional"`
	VMMode       bool   `hcl:"vm_mode,optional"`

	Environments []Environment `hcl:"environment,block"`
	Network      *Network      `hcl:"network,block"`
	Storage      *Storage      `hcl:"storage,block"`
	Mendix       *Mendix       `hcl:"mendix,block"`
	OutSystems   *OutSystems   `hcl:"outsystems,block"`
}

// Environment is an environment block, labelled with its name
type Environment struct {
	Name   string `hcl:"name,label"`
	Nodes  int    `hcl:"nodes"`
	CPU    int    `hcl:"cpu"`
	RAMGB  int    `hcl:"ram_gb"`
	DiskGB int    `hcl:"disk_gb,optional"`
}

// Network is the shared network block
type Network struct {
	LoadBalancers    int `hcl:"load_balancers,optional"`
	EgressGBPerMonth int `hcl:"egress_gb_per_month,optional"`
	NATGateways      int `hcl:"nat_gateways,optional"`
	VPNConnections   int `hcl:"vpn_connections,optional"`
	PublicIPs        int `hcl:"public_ips,optional"`
}

// Storage is the shared storage block
type Storage struct {
	ObjectGB   int `hcl:"object_gb,optional"`
	BackupGB   int `hcl:"backup_gb,optional"`
	RegistryGB int `hcl:"registry_gb,optional"`
}

// Mendix is a Mendix subscription block
type Mendix struct {
	Category           string `hcl:"category"`
	InternalUsers      int    `hcl:"internal_users,optional"`
	ExternalUsers      int    `hcl:"external_users,optional"`
	PrivateCloudTarget string `hcl:"private_cloud_target,optional"`
	Environments       int    `hcl:"environments,optional"`
	OtherTarget        string `hcl:"other_target,optional"`
	Apps               int    `hcl:"apps,optional"`
	UnlimitedApps      bool   `hcl:"unlimited_apps,optional"`

	GenAIKnowledgeBase bool `hcl:"genai_knowledge_base,optional"`
	CustomerEnablement bool `hcl:"customer_enablement,optional"`

	ExtraFileStorageGB     int      `hcl:"extra_file_storage_gb,optional"`
	ExtraDatabaseStorageGB int      `hcl:"extra_database_storage_gb,optional"`
	DiscountPercent        *float64 `hcl:"discount_percent,optional"`

	ResourcePacks []ResourcePack `hcl:"resource_pack,block"`
	GenAIPacks    []GenAIPack    `hcl:"genai_pack,block"`
}

// ResourcePack selects a quantity of one Mendix Cloud pack
type ResourcePack struct {
	Tier       string `hcl:"tier"`
	Size       string `hcl:"size"`
	DBEnhanced bool   `hcl:"db_enhanced,optional"`
	Quantity   int    `hcl:"quantity,optional"`
}

// GenAIPack selects a quantity of one GenAI model pack
type GenAIPack struct {
	Size     string `hcl:"size"`
	Quantity int    `hcl:"quantity,optional"`
}

// OutSystems is an OutSystems subscription block
type OutSystems struct {
	Edition          string   `hcl:"edition"`
	DeploymentType   string   `hcl:"deployment_type,optional"`
	SupportLevel     string   `hcl:"support_level,optional"`
	TotalAOs         int      `hcl:"total_aos,optional"`
	InternalUsers    int      `hcl:"internal_users,optional"`
	ExternalSessions int      `hcl:"external_sessions,optional"`
	Environments     int      `hcl:"environments,optional"`
	HighAvailability bool     `hcl:"high_availability,optional"`
	DisasterRecovery bool     `hcl:"disaster_recovery,optional"`
	FrontEndServers  int      `hcl:"front_end_servers,optional"`
	DiscountPercent  *float64 `hcl:"discount_percent,optional"`
}

// DeploymentConfig converts the decoded file to an estimation request
func (f *File) DeploymentConfig() engine.DeploymentConfig {
	cfg := engine.DeploymentConfig{
		Target:       engine.Target(f.Target),
		Provider:     types.CloudProvider(f.Provider),
		Distribution: types.Distribution(f.Distribution),
		Region:       f.Region,
		PricingType:  types.PricingType(f.PricingType),
		SupportTier:  types.SupportTier(f.SupportTier),
		ClusterMode:  engine.ClusterMode(f.ClusterMode),
		HA:           f.HA,
		DR:           f.DR,
		VMMode:       f.VMMode,
	}

	for _, e := range f.Environments {
		cfg.Environments = append(cfg.Environments, engine.EnvironmentSpec{
			Environment: types.EnvironmentType(e.Name),
			Nodes:       e.Nodes,
			CPU:         e.CPU,
			RAMGB:       e.RAMGB,
			DiskGB:      e.DiskGB,
		})
	}

	if n := f.Network; n != nil {
		cfg.LoadBalancers = n.LoadBalancers
		cfg.EgressGBPerMonth = n.EgressGBPerMonth
		cfg.NATGateways = n.NATGateways
		cfg.VPNConnections = n.VPNConnections
		cfg.PublicIPs = n.PublicIPs
	}
	if s := f.Storage; s != nil {
		cfg.ObjectStorageGB = s.ObjectGB
		cfg.BackupGB = s.BackupGB
		cfg.RegistryGB = s.RegistryGB
	}

	if f.Mendix != nil {
		cfg.Mendix = f.Mendix.config()
	}
	if f.OutSystems != nil {
		cfg.OutSystems = f.OutSystems.config()
	}
	return cfg
}

func (m *Mendix) config() *mendix.Config {
	cfg := &mendix.Config{
		Category:               mendix.DeploymentCategory(m.Category),
		InternalUsers:          m.InternalUsers,
		ExternalUsers:          m.ExternalUsers,
		PrivateCloudTarget:     mendix.PrivateCloudTarget(m.PrivateCloudTarget),
		Environments:           m.Environments,
		OtherTarget:            mendix.OtherTarget(m.OtherTarget),
		Apps:                   m.Apps,
		UnlimitedApps:          m.UnlimitedApps,
		GenAIKnowledgeBase:     m.GenAIKnowledgeBase,
		CustomerEnablement:     m.CustomerEnablement,
		ExtraFileStorageGB:     m.ExtraFileStorageGB,
		ExtraDatabaseStorageGB: m.ExtraDatabaseStorageGB,
	}
	for _, p := range m.ResourcePacks {
		cfg.ResourcePacks = append(cfg.ResourcePacks, mendix.PackSelection{
			Pack: mendix.ResourcePackKey{
				Tier:       mendix.SLATier(p.Tier),
				Size:       mendix.PackSize(p.Size),
				DBEnhanced: p.DBEnhanced,
			},
			Quantity: quantity(p.Quantity),
		})
	}
	for _, g := range m.GenAIPacks {
		cfg.GenAIPacks = append(cfg.GenAIPacks, mendix.GenAISelection{
			Size:     mendix.GenAISize(g.Size),
			Quantity: quantity(g.Quantity),
		})
	}
	if m.DiscountPercent != nil {
		d := decimal.NewFromFloat(*m.DiscountPercent)
		cfg.DiscountPercent = &d
	}
	return cfg
}

func (o *OutSystems) config() *outsystems.Config {
	cfg := &outsystems.Config{
		Edition:          outsystems.Edition(o.Edition),
		DeploymentType:   outsystems.DeploymentType(o.DeploymentType),
		SupportLevel:     outsystems.SupportLevel(o.SupportLevel),
		TotalAOs:         o.TotalAOs,
		InternalUsers:    o.InternalUsers,
		ExternalSessions: o.ExternalSessions,
		Environments:     o.Environments,
		HighAvailability: o.HighAvailability,
		DisasterRecovery: o.DisasterRecovery,
		FrontEndServers:  o.FrontEndServers,
	}
	if cfg.DeploymentType == "" {
		cfg.DeploymentType = outsystems.DeploymentCloud
	}
	if o.DiscountPercent != nil {
		cfg.DiscountPercent = decimal.NewFromFloat(*o.DiscountPercent)
	}
	return cfg
}

// quantity defaults an omitted pack quantity to one
func quantity(q int) int {
	if q == 0 {
		return 1
	}
	return q
}
