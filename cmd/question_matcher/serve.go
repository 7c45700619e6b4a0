package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/question-matcher/internal/server"
)

var (
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the matcher over REST.

The catalog is reloaded every refresh_interval (config file) and on POST /api/v1/catalog/refresh.
Rate limits are read from the RATE_LIMIT_* environment variables.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (defaults to ADDR env var or :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cmd, appOptions{fallback: true, level: slog.LevelInfo})
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.Addr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}

	go a.store.Run(ctx, a.cfg.RefreshInterval.Std())

	srv := server.New(a.engine, a.store, server.Config{
		Addr:   addr,
		Logger: a.logger,
	})
	return srv.Start(ctx)
}
