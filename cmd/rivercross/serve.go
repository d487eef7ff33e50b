package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/rivercross/internal/cli"
	"github.com/aretw0/rivercross/internal/config"
	httpAdapter "github.com/aretw0/rivercross/pkg/adapters/http"
	"github.com/aretw0/rivercross/pkg/domain"
	"github.com/aretw0/rivercross/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Starts the solver in server mode, exposing the puzzles in --dir as a JSON API over HTTP.
Prometheus metrics are served on /metrics.

A request enumerates at most --max-paths paths; ?limit=0 and larger limits are clamped to it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return err
		}

		eng, err := cli.CreateEngine(cmd.Context(), cli.EngineOptions{
			Config:   cfg,
			Hooks:    []domain.LifecycleHooks{metrics.Hooks()},
			MaxPaths: cfg.Solve.MaxPaths,
		}, logger)
		if err != nil {
			return err
		}
		defer eng.Close()

		srv := &http.Server{
			Addr:              ":" + strconv.Itoa(cfg.HTTP.Port),
			Handler:           httpAdapter.NewHandler(eng, httpAdapter.WithMetrics(reg), httpAdapter.WithMaxPaths(cfg.Solve.MaxPaths)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting server", "addr", srv.Addr, "dir", cfg.Dir)
			serverErrors <- srv.ListenAndServe()
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-cmd.Context().Done():
			var sig any
			if sigCtx != nil {
				sig = sigCtx.Signal()
			}
			logger.Info("Start shutdown", "signal", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Int("limit", config.DefaultPathLimit, "Default path limit for requests without ?limit (0 = up to --max-paths)")
	serveCmd.Flags().Int("max-paths", config.DefaultPathLimit, "Most paths one request may enumerate (0 = no cap)")
	serveCmd.Flags().Bool("cache", false, "Cache solutions under <dir>/.rivercross")
	serveCmd.Flags().String("redis-addr", "", "Cache solutions in Redis at this address")
}
