// Package config provides configuration management.
// Settings are read with viper from an optional JSON or YAML file, then
// TCO_* environment variables, then any bound command-line flags.
package config

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/onprem"
	"infra-tco/core/pricing"
	"infra-tco/core/types"
	"infra-tco/internal/errors"
	"infra-tco/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TCO"

// Settings is the main application configuration
type Settings struct {
	// IncludePricingInResults false renders every amount as "N/A"
	IncludePricingInResults bool `mapstructure:"include_pricing_in_results" json:"include_pricing_in_results"`

	// OnPremDefaults are the on-prem unit costs
	OnPremDefaults OnPremDefaults `mapstructure:"on_prem_defaults" json:"on_prem_defaults"`

	// CloudAPIConfigs enables live price fetching per provider
	CloudAPIConfigs map[string]CloudAPIConfig `mapstructure:"cloud_api_configs" json:"cloud_api_configs,omitempty"`

	// MendixPricing overrides the Mendix environment tiers and discount
	MendixPricing MendixPricing `mapstructure:"mendix_pricing" json:"mendix_pricing"`

	// CloudPricing holds estimate defaults and live refresh timing
	CloudPricing CloudPricing `mapstructure:"cloud_pricing" json:"cloud_pricing"`

	Output  OutputConfig   `mapstructure:"output" json:"output"`
	Server  ServerConfig   `mapstructure:"server" json:"server"`
	Logging logging.Config `mapstructure:"logging" json:"logging"`
}

// OnPremDefaults mirrors onprem.OnPremPricing with plain numbers
type OnPremDefaults struct {
	ServerCost        float64 `mapstructure:"server_cost" json:"server_cost"`
	PerCoreCost       float64 `mapstructure:"per_core_cost" json:"per_core_cost"`
	PerGBRAMCost      float64 `mapstructure:"per_gb_ram_cost" json:"per_gb_ram_cost"`
	SSDPerTB          float64 `mapstructure:"ssd_per_tb" json:"ssd_per_tb"`
	HDDPerTB          float64 `mapstructure:"hdd_per_tb" json:"hdd_per_tb"`
	NetworkSwitchCost float64 `mapstructure:"network_switch_cost" json:"network_switch_cost"`
	LoadBalancerCost  float64 `mapstructure:"load_balancer_cost" json:"load_balancer_cost"`
	VMsPerServer      int     `mapstructure:"vms_per_server" json:"vms_per_server"`

	RackUnitMonthly float64 `mapstructure:"rack_unit_monthly" json:"rack_unit_monthly"`
	PowerPerKWh     float64 `mapstructure:"power_per_kwh" json:"power_per_kwh"`
	WattsPerServer  int     `mapstructure:"watts_per_server" json:"watts_per_server"`
	PUE             float64 `mapstructure:"pue" json:"pue"`
	CoolingPercent  float64 `mapstructure:"cooling_percent" json:"cooling_percent"`

	DevOpsMonthly    float64 `mapstructure:"devops_monthly" json:"devops_monthly"`
	NodesPerEngineer int     `mapstructure:"nodes_per_engineer" json:"nodes_per_engineer"`
	SysAdminMonthly  float64 `mapstructure:"sysadmin_monthly" json:"sysadmin_monthly"`
	DBAMonthly       float64 `mapstructure:"dba_monthly" json:"dba_monthly"`
	IncludeDBA       bool    `mapstructure:"include_dba" json:"include_dba"`

	HardwareRefreshYears       int     `mapstructure:"hardware_refresh_years" json:"hardware_refresh_years"`
	HardwareMaintenancePercent float64 `mapstructure:"hardware_maintenance_percent" json:"hardware_maintenance_percent"`
}

// CloudAPIConfig is the live price endpoint of one provider
type CloudAPIConfig struct {
	Enabled  bool          `mapstructure:"enabled" json:"enabled"`
	Endpoint string        `mapstructure:"endpoint" json:"endpoint"`
	APIKey   string        `mapstructure:"api_key" json:"-"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout"`

	// Regions to refresh; empty refreshes the provider's default region
	Regions []string `mapstructure:"regions" json:"regions,omitempty"`
}

// TierConfig is one price band
type TierConfig struct {
	Min       int     `mapstructure:"min" json:"min"`
	Max       int     `mapstructure:"max" json:"max"`
	UnitPrice float64 `mapstructure:"unit_price" json:"unit_price"`
}

// MendixPricing overrides the Mendix catalog
type MendixPricing struct {
	EnvironmentTiers       []TierConfig `mapstructure:"environment_tiers" json:"environment_tiers,omitempty"`
	IncludedEnvironments   int          `mapstructure:"included_environments" json:"included_environments"`
	DefaultDiscountPercent float64      `mapstructure:"default_discount_percent" json:"default_discount_percent"`
}

// CloudPricing holds estimate defaults and live refresh timing
type CloudPricing struct {
	DefaultPricingType string        `mapstructure:"default_pricing_type" json:"default_pricing_type"`
	DefaultSupportTier string        `mapstructure:"default_support_tier" json:"default_support_tier"`
	RefreshInterval    time.Duration `mapstructure:"refresh_interval" json:"refresh_interval"`
	CacheTTL           time.Duration `mapstructure:"cache_ttl" json:"cache_ttl"`
	Parallelism        int           `mapstructure:"parallelism" json:"parallelism"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	DefaultFormat string `mapstructure:"default_format" json:"default_format"`
	ShowDetails   bool   `mapstructure:"show_details" json:"show_details"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Address string `mapstructure:"address" json:"address"`
}

// Default returns a fully offline configuration
func Default() *Settings {
	p := onprem.DefaultPricing()
	live := pricing.DefaultRefresherConfig()

	return &Settings{
		IncludePricingInResults: true,
		OnPremDefaults: OnPremDefaults{
			ServerCost:                 p.ServerCost.InexactFloat64(),
			PerCoreCost:                p.PerCoreCost.InexactFloat64(),
			PerGBRAMCost:               p.PerGBRAMCost.InexactFloat64(),
			SSDPerTB:                   p.SSDPerTB.InexactFloat64(),
			HDDPerTB:                   p.HDDPerTB.InexactFloat64(),
			NetworkSwitchCost:          p.NetworkSwitchCost.InexactFloat64(),
			LoadBalancerCost:           p.LoadBalancerCost.InexactFloat64(),
			VMsPerServer:               p.VMsPerServer,
			RackUnitMonthly:            p.RackUnitMonthly.InexactFloat64(),
			PowerPerKWh:                p.PowerPerKWh.InexactFloat64(),
			WattsPerServer:             p.WattsPerServer,
			PUE:                        p.PUE.InexactFloat64(),
			CoolingPercent:             p.CoolingPercent.InexactFloat64(),
			DevOpsMonthly:              p.DevOpsMonthly.InexactFloat64(),
			NodesPerEngineer:           p.NodesPerEngineer,
			SysAdminMonthly:            p.SysAdminMonthly.InexactFloat64(),
			DBAMonthly:                 p.DBAMonthly.InexactFloat64(),
			IncludeDBA:                 p.IncludeDBA,
			HardwareRefreshYears:       p.HardwareRefreshYears,
			HardwareMaintenancePercent: p.HardwareMaintenancePercent.InexactFloat64(),
		},
		MendixPricing: MendixPricing{
			IncludedEnvironments: mendix.DefaultIncludedEnvironments,
		},
		CloudPricing: CloudPricing{
			DefaultPricingType: string(types.PricingOnDemand),
			DefaultSupportTier: string(types.SupportNone),
			RefreshInterval:    live.TTL,
			CacheTTL:           live.TTL,
			Parallelism:        live.Parallelism,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   true,
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// NewViper returns a viper instance with every default registered and
// TCO_* environment overrides enabled. Flags may be bound to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()

	v.SetDefault("include_pricing_in_results", d.IncludePricingInResults)

	o := d.OnPremDefaults
	for key, val := range map[string]any{
		"server_cost":                  o.ServerCost,
		"per_core_cost":                o.PerCoreCost,
		"per_gb_ram_cost":              o.PerGBRAMCost,
		"ssd_per_tb":                   o.SSDPerTB,
		"hdd_per_tb":                   o.HDDPerTB,
		"network_switch_cost":          o.NetworkSwitchCost,
		"load_balancer_cost":           o.LoadBalancerCost,
		"vms_per_server":               o.VMsPerServer,
		"rack_unit_monthly":            o.RackUnitMonthly,
		"power_per_kwh":                o.PowerPerKWh,
		"watts_per_server":             o.WattsPerServer,
		"pue":                          o.PUE,
		"cooling_percent":              o.CoolingPercent,
		"devops_monthly":               o.DevOpsMonthly,
		"nodes_per_engineer":           o.NodesPerEngineer,
		"sysadmin_monthly":             o.SysAdminMonthly,
		"dba_monthly":                  o.DBAMonthly,
		"include_dba":                  o.IncludeDBA,
		"hardware_refresh_years":       o.HardwareRefreshYears,
		"hardware_maintenance_percent": o.HardwareMaintenancePercent,
	} {
		v.SetDefault("on_prem_defaults."+key, val)
	}

	v.SetDefault("mendix_pricing.included_environments", d.MendixPricing.IncludedEnvironments)
	v.SetDefault("mendix_pricing.default_discount_percent", d.MendixPricing.DefaultDiscountPercent)

	v.SetDefault("cloud_pricing.default_pricing_type", d.CloudPricing.DefaultPricingType)
	v.SetDefault("cloud_pricing.default_support_tier", d.CloudPricing.DefaultSupportTier)
	v.SetDefault("cloud_pricing.refresh_interval", d.CloudPricing.RefreshInterval)
	v.SetDefault("cloud_pricing.cache_ttl", d.CloudPricing.CacheTTL)
	v.SetDefault("cloud_pricing.parallelism", d.CloudPricing.Parallelism)

	v.SetDefault("output.default_format", d.Output.DefaultFormat)
	v.SetDefault("output.show_details", d.Output.ShowDetails)
	v.SetDefault("server.address", d.Server.Address)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("logging.development", d.Logging.Development)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (when set) into v and decodes the result
func Load(v *viper.Viper, path string) (*Settings, error) {
	if v == nil {
		v = NewViper()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Config("failed to read config file "+path, err)
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, errors.Config("failed to decode config", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads path on a fresh viper instance
func LoadFile(path string) (*Settings, error) {
	return Load(NewViper(), path)
}

// Validate checks enum values and unit costs
func (s *Settings) Validate() error {
	if pt := types.PricingType(s.CloudPricing.DefaultPricingType); !pt.IsValid() {
		return errors.Config("invalid cloud_pricing.default_pricing_type: "+string(pt), nil)
	}
	if err := s.OnPremPricing().Validate(); err != nil {
		return errors.Wrap(errors.TypeConfig, "invalid on_prem_defaults", err)
	}
	if _, err := s.MendixOptions(); err != nil {
		return err
	}
	for name, api := range s.CloudAPIConfigs {
		if api.Enabled && api.Endpoint == "" {
			return errors.Config("cloud_api_configs."+name+" is enabled without an endpoint", nil)
		}
	}
	return nil
}

// OnPremPricing converts the on-prem defaults to calculator pricing
func (s *Settings) OnPremPricing() onprem.OnPremPricing {
	o := s.OnPremDefaults
	f := decimal.NewFromFloat
	return onprem.OnPremPricing{
		ServerCost:                 f(o.ServerCost),
		PerCoreCost:                f(o.PerCoreCost),
		PerGBRAMCost:               f(o.PerGBRAMCost),
		SSDPerTB:                   f(o.SSDPerTB),
		HDDPerTB:                   f(o.HDDPerTB),
		NetworkSwitchCost:          f(o.NetworkSwitchCost),
		LoadBalancerCost:           f(o.LoadBalancerCost),
		VMsPerServer:               o.VMsPerServer,
		RackUnitMonthly:            f(o.RackUnitMonthly),
		PowerPerKWh:                f(o.PowerPerKWh),
		WattsPerServer:             o.WattsPerServer,
		PUE:                        f(o.PUE),
		CoolingPercent:             f(o.CoolingPercent),
		DevOpsMonthly:              f(o.DevOpsMonthly),
		NodesPerEngineer:           o.NodesPerEngineer,
		SysAdminMonthly:            f(o.SysAdminMonthly),
		DBAMonthly:                 f(o.DBAMonthly),
		IncludeDBA:                 o.IncludeDBA,
		HardwareRefreshYears:       o.HardwareRefreshYears,
		HardwareMaintenancePercent: f(o.HardwareMaintenancePercent),
	}
}

// MendixOptions converts the Mendix overrides to engine options
func (s *Settings) MendixOptions() ([]mendix.Option, error) {
	m := s.MendixPricing
	var tiers []types.Tier
	for _, t := range m.EnvironmentTiers {
		tiers = append(tiers, types.NewTier(t.Min, t.Max, t.UnitPrice))
	}
	if len(tiers) > 0 {
		if err := types.ValidateTiers(tiers); err != nil {
			return nil, errors.Wrap(errors.TypeConfig, "invalid mendix_pricing.environment_tiers", err)
		}
	}
	if m.DefaultDiscountPercent < 0 || m.DefaultDiscountPercent > 100 {
		return nil, errors.Config("mendix_pricing.default_discount_percent must be between 0 and 100", nil)
	}
	return []mendix.Option{
		mendix.WithEnvironmentTiers(tiers, m.IncludedEnvironments),
		mendix.WithDefaultDiscount(decimal.NewFromFloat(m.DefaultDiscountPercent)),
	}, nil
}

// RateSources builds an HTTP rate source per enabled provider
func (s *Settings) RateSources() map[types.CloudProvider]pricing.RateSource {
	out := make(map[types.CloudProvider]pricing.RateSource)
	for name, api := range s.CloudAPIConfigs {
		if !api.Enabled {
			continue
		}
		out[types.CloudProvider(strings.ToLower(name))] = pricing.NewHTTPRateSource(api.Endpoint, api.APIKey, api.Timeout)
	}
	return out
}

// RefreshTargets lists the provider regions to refresh. defaultRegion resolves
// providers configured without regions.
func (s *Settings) RefreshTargets(defaultRegion func(types.CloudProvider) (string, bool)) []pricing.Target {
	var out []pricing.Target
	for name, api := range s.CloudAPIConfigs {
		if !api.Enabled {
			continue
		}
		provider := types.CloudProvider(strings.ToLower(name))
		regions := api.Regions
		if len(regions) == 0 {
			if r, ok := defaultRegion(provider); ok {
				regions = []string{r}
			}
		}
		for _, r := range regions {
			out = append(out, pricing.Target{Provider: provider, Region: r})
		}
	}
	return out
}

// RefresherConfig returns the live refresh settings
func (s *Settings) RefresherConfig() pricing.RefresherConfig {
	cfg := pricing.DefaultRefresherConfig()
	if s.CloudPricing.CacheTTL > 0 {
		cfg.TTL = s.CloudPricing.CacheTTL
	}
	if s.CloudPricing.Parallelism > 0 {
		cfg.Parallelism = s.CloudPricing.Parallelism
	}
	return cfg
}

// LiveRefreshEnabled reports whether any provider has a live endpoint
func (s *Settings) LiveRefreshEnabled() bool {
	for _, api := range s.CloudAPIConfigs {
		if api.Enabled {
			return true
		}
	}
	return false
}

// Global configuration instance
var globalSettings = Default()

// Get returns the global configuration
func Get() *Settings {
	return globalSettings
}

// Set sets the global configuration
func Set(s *Settings) {
	globalSettings = s
}
