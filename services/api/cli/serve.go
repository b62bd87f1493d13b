package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpserver "github.com/02loveslollipop/Shizuku-water-quality/services/api/http"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/metrics"
	"github.com/02loveslollipop/Shizuku-water-quality/services/api/query"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the dataset and serve the query API",
	Long:  `Starts the HTTP API immediately and builds the cleaned dataset in the background. Data endpoints answer 503 until the build completes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return runServe(ctx)
	},
}

func runServe(ctx context.Context) error {
	provider, closeSources, err := newProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSources()

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		return err
	}

	engine := query.NewEngine(provider, logger, query.Options{
		DefaultLimit: cfg.DefaultLimit,
		MaxLimit:     cfg.MaxLimit,
	})
	srv := httpserver.New(cfg, engine, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := provider.Build(gctx); err != nil {
			// keep serving; data endpoints stay unavailable
			logger.Error("dataset build failed", slog.Any("error", err))
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("REST API listening", slog.String("addr", cfg.ListenAddr()))
		return srv.Run(gctx)
	})
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			logger.Info("metrics listening", slog.String("addr", cfg.MetricsAddr))
			return httpserver.ServeMetrics(gctx, cfg.MetricsAddr, reg)
		})
	}
	return g.Wait()
}
