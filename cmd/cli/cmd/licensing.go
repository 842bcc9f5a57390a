package cmd

import (
	"github.com/spf13/cobra"

	"infra-tco/core/output"
	"infra-tco/core/types"
	"infra-tco/internal/config"
	"infra-tco/internal/errors"
)

var (
	licensingNodes        int
	licensingCores        int
	licensingEnvironments int
)

var licensingCmd = &cobra.Command{
	Use:   "licensing <distribution>",
	Short: "Show the annual license cost of a distribution",
	Long: `Show the annual and monthly license cost of a Kubernetes distribution.

Unknown distributions are priced as managed Kubernetes with no license.

Examples:
  infra-tco licensing openshift --nodes 12
  infra-tco licensing tanzu --nodes 6 --cores 96`,
	Args: cobra.ExactArgs(1),
	RunE: runLicensing,
}

func init() {
	licensingCmd.Flags().IntVarP(&licensingNodes, "nodes", "n", 0, "licensed node count")
	licensingCmd.Flags().IntVar(&licensingCores, "cores", 0, "licensed core count for per-core licenses (default: per-node estimate)")
	licensingCmd.Flags().IntVar(&licensingEnvironments, "environments", 0, "environment count")

	rootCmd.AddCommand(licensingCmd)
}

func runLicensing(cmd *cobra.Command, args []string) error {
	if licensingNodes < 0 || licensingCores < 0 || licensingEnvironments < 0 {
		return errors.InvalidArgument("counts must not be negative")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	in := types.LicensingInput{NodeCount: licensingNodes}
	if cmd.Flags().Changed("cores") {
		in.CoreCount = types.Some(licensingCores)
	}
	if cmd.Flags().Changed("environments") {
		in.EnvironmentCount = types.Some(licensingEnvironments)
	}

	dist := types.Distribution(args[0])
	view := output.NewLicensingView(a.Registry.GetLicensing(dist, in), config.Get().IncludePricingInResults)
	return render(cmd.OutOrStdout(), view, func() error {
		return output.RenderLicensingTable(cmd.OutOrStdout(), view)
	})
}
