package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"infra-tco/core/output"
	"infra-tco/core/types"
	"infra-tco/internal/config"
)

var (
	pricingRegion string
	pricingType   string
	pricingLive   bool
)

var pricingCmd = &cobra.Command{
	Use:   "pricing <provider>",
	Short: "Show the rate card of a cloud provider",
	Long: `Show the compute, storage and network rates used for a provider region.

Managed OpenShift providers (rosa, aro, osd, roks) show their base cloud
rates plus the per worker-hour service fee.

Examples:
  infra-tco pricing aws
  infra-tco pricing azure --region westeurope --pricing-type reserved-3yr
  infra-tco pricing gcp --live`,
	Args: cobra.ExactArgs(1),
	RunE: runPricing,
}

func init() {
	pricingCmd.Flags().StringVarP(&pricingRegion, "region", "r", "", "region (default: the provider's reference region)")
	pricingCmd.Flags().StringVar(&pricingType, "pricing-type", string(types.PricingOnDemand), "on-demand, reserved-1yr, reserved-3yr or spot")
	pricingCmd.Flags().BoolVar(&pricingLive, "live", false, "refresh live rates from the configured cloud APIs first")

	rootCmd.AddCommand(pricingCmd)
}

func runPricing(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	provider := types.CloudProvider(args[0])

	if pricingLive && a.Refresher != nil {
		region := pricingRegion
		if region == "" {
			region, _ = a.Registry.DefaultRegion(provider)
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		if _, err := a.Refresher.Refresh(ctx, provider, region); err != nil {
			return err
		}
	}

	model, err := a.Registry.GetPricingForType(provider, pricingRegion, types.PricingType(pricingType))
	if err != nil {
		return err
	}

	include := config.Get().IncludePricingInResults
	var view interface{} = model
	if !include {
		view = map[string]interface{}{
			"provider":         model.Provider,
			"region":           model.Region,
			"pricing_type":     model.PricingType,
			"pricing_included": false,
		}
	}
	return render(cmd.OutOrStdout(), view, func() error {
		return output.RenderPricingTable(cmd.OutOrStdout(), model, include)
	})
}
