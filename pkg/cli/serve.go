package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bstardust/geophoto/internal/config"
	"github.com/bstardust/geophoto/internal/logger"
	"github.com/bstardust/geophoto/internal/server"
)

func newServeCommand() *cobra.Command {
	var configFile string
	var addr string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GeoPhoto web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			// Flags win over config file and environment.
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger.SetLevel(cfg.LogLevel)
			logger.Info("GeoPhoto starting (environment: %s)", cfg.Environment)

			return server.New(cfg).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Address for the web server to listen on")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}
