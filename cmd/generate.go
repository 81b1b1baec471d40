package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"intergen/internal/config"
	"intergen/internal/generator"
	"intergen/internal/worker"
	"intergen/pkg/logger"
	"intergen/pkg/matcher/reduced"
	"intergen/pkg/store/jsonl"
	"intergen/pkg/surface"
)

// setupMetrics starts the optional Prometheus endpoint and returns a stop
// function. A nil stop is returned when metrics are disabled.
func setupMetrics(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	if cfg.Metrics.Addr == "" {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.Handler())
	server := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux} //nolint: gosec

	go func() {
		logger.Info(ctx, "starting metrics endpoint...", zap.String("addr", cfg.Metrics.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start metrics endpoint", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping metrics endpoint...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop metrics endpoint", zap.Error(err))
		}
	}
}

// loadSweep reads the sweep definition (structures and parameter axes) from
// a JSON file.
func loadSweep(path string) (generator.Sweep, error) {
	var sweep generator.Sweep
	data, err := os.ReadFile(path) //nolint: gosec
	if err != nil {
		return sweep, err
	}
	if err := json.Unmarshal(data, &sweep); err != nil {
		return sweep, err
	}

	return sweep, nil
}

func generateCommand(cfg *config.Config) *cobra.Command {
	var sweepPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Runs the interface combination sweep and writes candidate records",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			runID := uuid.NewString()
			ctx = logger.WithFields(ctx, zap.String("runID", runID))

			stopMetrics := setupMetrics(ctx, cfg)

			sweep, err := loadSweep(sweepPath)
			if err != nil {
				logger.Fatal(ctx, "could not load sweep file", zap.Error(err))
			}

			gen, err := generator.New(sweep, reduced.New(), surface.Prebuilt{}, generator.NewOptions(cfg))
			if err != nil {
				logger.Fatal(ctx, "could not create generator", zap.Error(err))
			}
			logger.Info(ctx, "sweep loaded",
				zap.Int("gridPoints", gen.GridSize()),
				zap.Int("workers", cfg.Workers))

			out, err := os.Create(cfg.Output) //nolint: gosec
			if err != nil {
				logger.Fatal(ctx, "could not create output file", zap.Error(err))
			}
			sink := jsonl.New(out, runID)

			res, runErr := worker.New(gen, cfg.Workers).Run(ctx)

			for _, cand := range res.Candidates {
				if err := sink.WriteCandidate(ctx, cand); err != nil {
					logger.Fatal(ctx, "could not write candidate", zap.Error(err))
				}
			}
			if err := sink.Close(); err != nil {
				logger.Error(ctx, "could not close output file", zap.Error(err))
			}

			logger.Info(ctx, "generation finished",
				zap.Int("candidates", len(res.Candidates)),
				zap.Int("failures", len(res.Failures)),
				zap.String("output", cfg.Output))

			if stopMetrics != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
				defer cancel()
				stopMetrics(shutdownCtx)
			}

			if runErr != nil {
				logger.Fatal(ctx, "sweep failed", zap.Error(runErr))
			}
		},
	}

	cmd.Flags().StringVarP(&sweepPath, "sweep", "s", "sweep.json", "Sweep definition file path")

	return cmd
}
