package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"infra-tco/core/lowcode/mendix"
	"infra-tco/core/lowcode/outsystems"
	"infra-tco/core/output"
	"infra-tco/internal/config"
)

var (
	mendixCfg      mendix.Config
	mendixPacks    []string
	mendixDiscount float64

	outsystemsCfg      outsystems.Config
	outsystemsDiscount float64
)

var mendixCmd = &cobra.Command{
	Use:   "mendix",
	Short: "Quote a Mendix subscription",
	Long: `Quote the annual cost of a Mendix subscription.

Resource packs are given as tier/size, with an optional -DB suffix for
database enhanced packs and an optional :quantity.

Examples:
  infra-tco mendix --category cloud --pack standard/M --pack premium/L-DB:2 --internal-users 250
  infra-tco mendix --category private-cloud --target eks --environments 8 --internal-users 500
  infra-tco mendix --category other --other-target server --apps 3`,
	Args: cobra.NoArgs,
	RunE: runMendix,
}

var outsystemsCmd = &cobra.Command{
	Use:   "outsystems",
	Short: "Quote an OutSystems subscription",
	Long: `Quote the annual cost of an OutSystems subscription.

Examples:
  infra-tco outsystems --edition standard --aos 300 --internal-users 200
  infra-tco outsystems --edition enterprise --deployment self-managed --front-end-servers 4 --support premium`,
	Args: cobra.NoArgs,
	RunE: runOutSystems,
}

func init() {
	f := mendixCmd.Flags()
	f.StringVar((*string)(&mendixCfg.Category), "category", string(mendix.CategoryCloud), "cloud, private-cloud or other")
	f.IntVar(&mendixCfg.InternalUsers, "internal-users", 0, "internal user count")
	f.IntVar(&mendixCfg.ExternalUsers, "external-users", 0, "external user count")
	f.StringArrayVar(&mendixPacks, "pack", nil, "resource pack tier/size[-DB][:quantity], repeatable")
	f.StringVar((*string)(&mendixCfg.PrivateCloudTarget), "target", "", "private cloud target")
	f.IntVar(&mendixCfg.Environments, "environments", 0, "private cloud environment count")
	f.StringVar((*string)(&mendixCfg.OtherTarget), "other-target", "", "server, stackit or sap-btp")
	f.IntVar(&mendixCfg.Apps, "apps", 0, "application count for other targets")
	f.BoolVar(&mendixCfg.UnlimitedApps, "unlimited-apps", false, "unlimited applications for other targets")
	f.BoolVar(&mendixCfg.GenAIKnowledgeBase, "genai-knowledge-base", false, "add the GenAI knowledge base")
	f.BoolVar(&mendixCfg.CustomerEnablement, "customer-enablement", false, "add customer enablement services")
	f.IntVar(&mendixCfg.ExtraFileStorageGB, "extra-file-storage", 0, "extra file storage in GB")
	f.IntVar(&mendixCfg.ExtraDatabaseStorageGB, "extra-db-storage", 0, "extra database storage in GB")
	f.Float64Var(&mendixDiscount, "discount", 0, "discount percent (default: configured mendix discount)")

	o := outsystemsCmd.Flags()
	o.StringVar((*string)(&outsystemsCfg.Edition), "edition", string(outsystems.EditionStandard), "standard or enterprise")
	o.StringVar((*string)(&outsystemsCfg.DeploymentType), "deployment", string(outsystems.DeploymentCloud), "cloud or self-managed")
	o.StringVar((*string)(&outsystemsCfg.SupportLevel), "support", "", "standard, premium or elite")
	o.IntVar(&outsystemsCfg.TotalAOs, "aos", 0, "application object count")
	o.IntVar(&outsystemsCfg.InternalUsers, "internal-users", 0, "internal user count")
	o.IntVar(&outsystemsCfg.ExternalSessions, "external-sessions", 0, "monthly external sessions")
	o.IntVar(&outsystemsCfg.Environments, "environments", 0, "environment count")
	o.BoolVar(&outsystemsCfg.HighAvailability, "ha", false, "high availability add-on")
	o.BoolVar(&outsystemsCfg.DisasterRecovery, "dr", false, "disaster recovery add-on")
	o.IntVar(&outsystemsCfg.FrontEndServers, "front-end-servers", 0, "front-end servers (self-managed)")
	o.Float64Var(&outsystemsDiscount, "discount", 0, "discount percent")

	rootCmd.AddCommand(mendixCmd)
	rootCmd.AddCommand(outsystemsCmd)
}

func runMendix(cmd *cobra.Command, args []string) error {
	cfg := mendixCfg
	for _, p := range mendixPacks {
		sel, err := mendix.ParsePackSelection(p)
		if err != nil {
			return err
		}
		cfg.ResourcePacks = append(cfg.ResourcePacks, sel)
	}
	if cmd.Flags().Changed("discount") {
		d := decimal.NewFromFloat(mendixDiscount)
		cfg.DiscountPercent = &d
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	res, err := a.Estimator.Mendix().Calculate(cfg)
	if err != nil {
		return err
	}
	return renderSubscription(cmd, output.NewMendixView(res, config.Get().IncludePricingInResults))
}

func runOutSystems(cmd *cobra.Command, args []string) error {
	cfg := outsystemsCfg
	cfg.DiscountPercent = decimal.NewFromFloat(outsystemsDiscount)

	a, err := newApp()
	if err != nil {
		return err
	}
	res, err := a.Estimator.OutSystems().Calculate(cfg)
	if err != nil {
		return err
	}
	return renderSubscription(cmd, output.NewOutSystemsView(res, config.Get().IncludePricingInResults))
}

func renderSubscription(cmd *cobra.Command, view *output.SubscriptionView) error {
	return render(cmd.OutOrStdout(), view, func() error {
		return output.RenderSubscriptionTable(cmd.OutOrStdout(), view, config.Get().Output.ShowDetails)
	})
}
