package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikogura/interview-coach/pkg/api"
	"github.com/nikogura/interview-coach/pkg/coach"
	"github.com/nikogura/interview-coach/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring HTTP API",
	Long: `Starts the HTTP API.

Endpoints:
  POST /v1/score        score a session, returns result, follow-ups and improvements
  POST /v1/followups    follow-up prompts for given subscores and flags
  POST /v1/summary      improvement summary for given subscores and flags
  POST /v1/confidence   confidence breakdown for a context
  GET  /health          liveness

Example:
  interview-coach serve --addr :9090 --json-logs`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	var cfg config.Config
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	var log *zap.Logger
	log, err = newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.New(coach.New(cfg.Scoring.Options(), log), log, cfg.Server)
	err = server.Run(ctx)
	if err != nil {
		err = fmt.Errorf("server error: %w", err)
		return err
	}

	return err
}
