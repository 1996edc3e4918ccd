package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cashgap/internal/config"
	"cashgap/internal/logger"
	"cashgap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ledger analysis as an HTTP upload endpoint",
	Long: `Start an HTTP server exposing the ledger analysis.

Endpoints:
  POST /api/analyze  multipart upload ("file", optional "reference_date"
                     and "ema_span") returning the analysis result as JSON
  GET  /api/health   liveness check

The server is stateless: every upload is an independent computation.`,
	Example: `  # Serve on the configured address (HTTP_ADDR, default :8080)
  cashgap serve

  # Serve on an explicit address
  cashgap serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: HTTP_ADDR or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting analysis server")

	if err := server.New(cfg).Start(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	log.Info().Msg("Analysis server stopped")
	return nil
}
