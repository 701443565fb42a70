package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/stampede-dev/stampede/internal/loadshape"
	"github.com/stampede-dev/stampede/internal/monitoring"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the engine's live statistics as Prometheus metrics",
	Long: `Export polls the load engine's /stats/requests endpoint and serves
the mirrored values on /metrics until interrupted.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			fail(err)
		}

		if engineURL, _ := cmd.Flags().GetString("engine"); engineURL != "" {
			cfg.Engine.URL = engineURL
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Exporter.Listen = listen
		}

		options := []monitoring.ExporterOption{
			monitoring.WithPollInterval(cfg.Exporter.PollInterval),
			monitoring.WithExporterLogger(logger),
		}

		if profileName, _ := cmd.Flags().GetString("profile"); profileName != "" {
			profile, err := cfg.Profile(profileName)
			if err != nil {
				fail(err)
			}
			options = append(options, monitoring.WithSchedule(loadshape.NewTicker(profile)))
			logger.Info().Str("profile", profileName).Msg("publishing scheduled user counts")
		}

		registry := prometheus.NewRegistry()
		metrics := monitoring.NewMetrics(registry)
		exporter := monitoring.NewExporter(cfg.Engine.URL, metrics, options...)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info().
			Str("engine", cfg.Engine.URL).
			Str("listen", cfg.Exporter.Listen).
			Msg("starting exporter")

		if err := exporter.Serve(ctx, cfg.Exporter.Listen, registry); err != nil && err != context.Canceled {
			fail(err)
		}
	},
}

func init() {
	exportCmd.Flags().String("engine", "", "Engine web API URL (overrides config)")
	exportCmd.Flags().String("listen", "", "Metrics listen address (overrides config)")
	exportCmd.Flags().String("profile", "", "Publish a load profile's scheduled user count alongside the engine's")
}
