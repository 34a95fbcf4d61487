// Package cli wires the command surface: the MCP server itself plus a few
// read-only subcommands useful when poking at a backend from a shell.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mifos-community/mifosx-mcp/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mifosx-mcp",
	Short: "MCP tool server for the Mifos X / Apache Fineract API",
	Long: `mifosx-mcp exposes Apache Fineract's client, savings, and loan
operations as MCP tools. Each tool fetches the backend's template document,
fills in defaults, resolves human-readable names to code ids, validates the
result, and posts it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(codesCmd)
	rootCmd.AddCommand(currenciesCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.AppConfig, error) {
	logger := newBootstrapLogger()
	return config.LoadConfig(cfgFile, logger)
}
