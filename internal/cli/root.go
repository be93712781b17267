// Package cli provides the command-line interface for gridstack.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/gridstack-labs/gridstack/internal/cli/commands"
	"github.com/gridstack-labs/gridstack/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gridstack",
		Short: "gridstack - Dashboard Widget Engine",
		Long: `gridstack composes operator dashboards from script-backed widgets.

Widgets are short sandboxed scripts that query a relational data source.
Dashboards are seeded from discovered tables on first access and keep a
persisted widget order.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			cmd.SetContext(commands.WithConfig(cmd.Context(), cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./gridstack.yaml)")
	rootCmd.PersistentFlags().String("database", "", "Path to the data source database (duckdb file, empty for in-memory)")
	rootCmd.PersistentFlags().String("db-type", "", "Data source type (duckdb|postgres)")
	rootCmd.PersistentFlags().String("state", "", "Path to the widget state database")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewWidgetsCommand())
	rootCmd.AddCommand(commands.NewRunCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
