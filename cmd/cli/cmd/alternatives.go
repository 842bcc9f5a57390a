package cmd

import (
	"github.com/spf13/cobra"

	"infra-tco/core/alternatives"
	"infra-tco/core/output"
	"infra-tco/core/types"
	"infra-tco/internal/logging"
)

var alternativesCmd = &cobra.Command{
	Use:   "alternatives <distribution>",
	Short: "List managed cloud offerings that can replace a distribution",
	Long: `List managed cloud offerings that can replace a self-managed distribution,
in recommended order.

Examples:
  infra-tco alternatives openshift
  infra-tco alternatives k3s --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dist := types.Distribution(args[0])
		alts := alternatives.NewMatcher(logging.Named("cli")).Alternatives(dist)
		return render(cmd.OutOrStdout(), alts, func() error {
			return output.RenderAlternatives(cmd.OutOrStdout(), dist, alts)
		})
	},
}

func init() {
	rootCmd.AddCommand(alternativesCmd)
}
