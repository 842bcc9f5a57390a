// Package cmd provides the CLI commands for infra-tco.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"infra-tco/core/output"
	"infra-tco/internal/app"
	"infra-tco/internal/config"
	"infra-tco/internal/logging"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile string
	verbose bool
	v       = config.NewViper()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "infra-tco",
	Short: "Estimate the total cost of ownership of Kubernetes platforms",
	Long: `infra-tco estimates the monthly and multi-year cost of running a
Kubernetes distribution on a cloud provider or on owned hardware, and quotes
Mendix and OutSystems low-code subscriptions.

Examples:
  infra-tco estimate scenario.hcl
  infra-tco estimate --distribution openshift --provider aws --nodes 6
  infra-tco pricing aws --region eu-west-1 --pricing-type reserved-1yr
  infra-tco licensing openshift --nodes 12
  infra-tco alternatives tanzu`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (JSON or YAML)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.Bool("include-pricing", true, "show amounts; false renders every amount as N/A")
	flags.StringP("format", "f", "cli", "output format (cli, json)")
	flags.BoolP("details", "d", true, "show line items")

	_ = v.BindPFlag("include_pricing_in_results", flags.Lookup("include-pricing"))
	_ = v.BindPFlag("output.default_format", flags.Lookup("format"))
	_ = v.BindPFlag("output.show_details", flags.Lookup("details"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig() error {
	s, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		s.Logging.Level = "debug"
	}
	config.Set(s)

	if err := logging.Initialize(s.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	return nil
}

// newApp builds the engines from the loaded settings
func newApp() (*app.App, error) {
	return app.New(config.Get(), logging.Named("cli"))
}

func outputFormat() (output.Format, error) {
	f := output.Format(config.Get().Output.DefaultFormat)
	if _, err := output.ForFormat(f, false); err != nil {
		return "", err
	}
	return f, nil
}

// render writes v as JSON, or calls table for the cli format
func render(w io.Writer, view interface{}, table func() error) error {
	f, err := outputFormat()
	if err != nil {
		return err
	}
	if f == output.FormatJSON {
		return output.RenderJSON(w, view, true)
	}
	return table()
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "infra-tco version %s\n", Version)
	},
}

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.RenderJSON(cmd.OutOrStdout(), config.Get(), true)
	},
}
