package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infra-tco/adapters/scenario"
	"infra-tco/core/engine"
	"infra-tco/core/output"
	"infra-tco/core/types"
	"infra-tco/internal/config"
	"infra-tco/internal/errors"
	"infra-tco/internal/logging"
)

var (
	estimateVars         map[string]string
	estimateTarget       string
	estimateProvider     string
	estimateDistribution string
	estimateRegion       string
	estimatePricingType  string
	estimateSupport      string
	estimateEnvironment  string
	estimateNodes        int
	estimateCPU          int
	estimateRAM          int
	estimateDisk         int
	estimateHA           bool
	estimateDR           bool
	estimateVMMode       bool
	estimateLive         bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate [scenario.hcl]",
	Short: "Estimate the cost of a deployment",
	Long: `Estimate the monthly cost and 1, 3 and 5 year TCO of a deployment.

The deployment is read from an HCL scenario file, or built from flags when no
file is given. Flags override the matching scenario attributes.

Examples:
  infra-tco estimate scenario.hcl
  infra-tco estimate scenario.hcl --var region=eu-west-1 --format json
  infra-tco estimate --distribution rancher --nodes 6 --cpu 16 --ram 64
  infra-tco estimate --provider rosa --nodes 9 --pricing-type reserved-3yr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringToStringVar(&estimateVars, "var", nil, "scenario variable (name=value), repeatable")
	f.StringVar(&estimateTarget, "target", "", "cloud, onprem, mendix or outsystems (default inferred)")
	f.StringVarP(&estimateProvider, "provider", "p", "", "cloud provider")
	f.StringVar(&estimateDistribution, "distribution", "", "Kubernetes distribution")
	f.StringVarP(&estimateRegion, "region", "r", "", "provider region")
	f.StringVar(&estimatePricingType, "pricing-type", "", "on-demand, reserved-1yr, reserved-3yr or spot")
	f.StringVar(&estimateSupport, "support", "", "support tier")
	f.StringVar(&estimateEnvironment, "environment", string(types.EnvProd), "environment of the flag-built node group")
	f.IntVarP(&estimateNodes, "nodes", "n", 0, "node count of the flag-built environment")
	f.IntVar(&estimateCPU, "cpu", 4, "vCPU per node")
	f.IntVar(&estimateRAM, "ram", 16, "GB RAM per node")
	f.IntVar(&estimateDisk, "disk", 0, "GB disk per node")
	f.BoolVar(&estimateHA, "ha", false, "add a load balancer per cluster")
	f.BoolVar(&estimateDR, "dr", false, "mirror production as a dr environment")
	f.BoolVar(&estimateVMMode, "vm-mode", false, "treat on-prem nodes as VMs packed onto servers")
	f.BoolVar(&estimateLive, "live", false, "refresh live rates from the configured cloud APIs first")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := deploymentFromArgs(cmd, args)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	if estimateLive {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		n := a.Refresh(ctx)
		cancel()
		logging.Info("live rates refreshed", zap.Int("refreshed", n))
	}

	est, err := a.Estimator.Estimate(cfg)
	if err != nil {
		return err
	}
	logging.Debug("estimate complete",
		zap.String("monthly_total", est.MonthlyTotal.String()),
		zap.Duration("duration", time.Since(start)),
	)

	s := config.Get()
	view := output.NewEstimateView(est, s.IncludePricingInResults)
	formatter, err := output.ForFormat(output.Format(s.Output.DefaultFormat), s.Output.ShowDetails)
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), view)
}

// deploymentFromArgs loads the scenario file, if any, and applies flags over it
func deploymentFromArgs(cmd *cobra.Command, args []string) (engine.DeploymentConfig, error) {
	var cfg engine.DeploymentConfig
	if len(args) == 1 {
		loaded, err := scenario.NewLoader(estimateVars).LoadFile(args[0])
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("target", func() { cfg.Target = engine.Target(estimateTarget) })
	set("provider", func() { cfg.Provider = types.CloudProvider(estimateProvider) })
	set("distribution", func() { cfg.Distribution = types.Distribution(estimateDistribution) })
	set("region", func() { cfg.Region = estimateRegion })
	set("pricing-type", func() { cfg.PricingType = types.PricingType(estimatePricingType) })
	set("support", func() { cfg.SupportTier = types.SupportTier(estimateSupport) })
	set("ha", func() { cfg.HA = estimateHA })
	set("dr", func() { cfg.DR = estimateDR })
	set("vm-mode", func() { cfg.VMMode = estimateVMMode })

	if flags.Changed("nodes") {
		spec := engine.EnvironmentSpec{
			Environment: types.EnvironmentType(estimateEnvironment),
			Nodes:       estimateNodes,
			CPU:         estimateCPU,
			RAMGB:       estimateRAM,
			DiskGB:      estimateDisk,
		}
		cfg.Environments = replaceEnvironment(cfg.Environments, spec)
	}

	if len(args) == 0 && len(cfg.Environments) == 0 && cfg.Mendix == nil && cfg.OutSystems == nil {
		return cfg, errors.InvalidArgument("give a scenario file or --nodes")
	}
	return cfg, nil
}

func replaceEnvironment(envs []engine.EnvironmentSpec, spec engine.EnvironmentSpec) []engine.EnvironmentSpec {
	for i, e := range envs {
		if e.Environment == spec.Environment {
			envs[i] = spec
			return envs
		}
	}
	return append(envs, spec)
}
