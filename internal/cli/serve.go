package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mifos-community/mifosx-mcp/internal/api"
	"github.com/mifos-community/mifosx-mcp/internal/config"
	"github.com/mifos-community/mifosx-mcp/internal/dates"
	"github.com/mifos-community/mifosx-mcp/internal/engine"
	"github.com/mifos-community/mifosx-mcp/internal/fineract"
	"github.com/mifos-community/mifosx-mcp/internal/template"
	"github.com/mifos-community/mifosx-mcp/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the MCP tool set over stdio",
	Long: `Serve runs the MCP server on stdin/stdout for an MCP-speaking agent
host. When the REST gateway is enabled in the configuration, the same tools
are also served over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := config.NewLogger(cfg.Logging)
		registry := buildRegistry(cfg, logger)

		if cfg.HTTP.Enabled {
			gateway := api.NewGateway(registry, logger)
			go func() {
				if err := gateway.Run(cfg.HTTP.Port); err != nil {
					logger.WithError(err).Error("REST gateway stopped")
				}
			}()
		}

		mcpServer := server.NewMCPServer(
			cfg.Server.Name,
			cfg.Server.Version,
			server.WithToolCapabilities(true),
		)
		registry.Attach(mcpServer)

		logger.WithField("backend", cfg.Fineract.BaseURL).Info("Serving MCP over stdio")
		return server.ServeStdio(mcpServer)
	},
}

// buildRegistry assembles the backend client, template fetcher, and
// synthesis engine behind the tool registry.
func buildRegistry(cfg *config.AppConfig, logger *logrus.Logger) *tools.Registry {
	client := fineract.NewClient(cfg.Fineract, logger)
	fetcher := template.NewFetcher(client, logger)
	eng := engine.New(fetcher, client, client, cfg.Codes, dates.SystemClock{}, logger)
	return tools.NewRegistry(eng, client, logger)
}

// newBootstrapLogger is used before the configuration (and with it the
// configured log level) is available.
func newBootstrapLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return logger
}
