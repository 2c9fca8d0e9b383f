package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gammaflip/internal/cboe"
	"github.com/dgnsrekt/gammaflip/internal/gex"
	"github.com/dgnsrekt/gammaflip/internal/server"
	"github.com/dgnsrekt/gammaflip/internal/stream"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve gamma exposure snapshots over HTTP, refreshing on an interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()

			logger.Info("configuration loaded",
				zap.String("port", cfg.Server.Port),
				zap.Strings("tickers", cfg.Tickers),
				zap.Int("refreshIntervalSec", cfg.Server.RefreshIntervalSec),
				zap.Bool("wsEnabled", cfg.Server.WSEnabled),
			)

			snapshots, err := cboe.NewSnapshotStore(cfg.Source.CacheDir, logger)
			if err != nil {
				return err
			}
			defer snapshots.Close()

			client := cboe.NewClient(
				cfg.Source.BaseURL,
				cfg.Source.RatePerSecond,
				time.Duration(cfg.Source.TimeoutSec)*time.Second,
				time.Duration(cfg.Source.RetryDelaySec)*time.Second,
				cfg.Source.RetryCount,
				logger,
			)

			cal := gex.NewMarketCalendar()
			analyzer := gex.NewAnalyzer(analyzerConfig(cfg), cal, logger)
			store := server.NewStore()

			var hub *stream.Hub
			if cfg.Server.WSEnabled {
				hub = stream.NewHub(logger)
				go hub.Run(ctx)
			}

			refresher := server.NewRefresher(
				client,
				snapshots,
				analyzer,
				cal,
				store,
				hub,
				cfg.Tickers,
				time.Duration(cfg.Server.RefreshIntervalSec)*time.Second,
				logger,
			)
			go refresher.Run(ctx)

			srv := server.NewServer(store, logger)
			httpServer := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           server.NewRouter(srv, hub, logger),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			logger.Info("listening", zap.String("addr", httpServer.Addr))
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
}
