package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/dgnsrekt/gammaflip/internal/cboe"
	"github.com/dgnsrekt/gammaflip/internal/gex"
	"github.com/dgnsrekt/gammaflip/internal/stream"
)

// Refresher periodically re-fetches and re-analyzes the chain for every
// configured ticker, updating the store and pushing each new result to
// stream subscribers. Non-market days are skipped; the CDN falling over is
// bridged with the last on-disk snapshot.
type Refresher struct {
	fetcher   cboe.Fetcher
	snapshots *cboe.SnapshotStore
	analyzer  *gex.Analyzer
	cal       *gex.MarketCalendar
	store     *Store
	hub       *stream.Hub
	tickers   []string
	interval  time.Duration
	logger    *zap.Logger
}

func NewRefresher(
	fetcher cboe.Fetcher,
	snapshots *cboe.SnapshotStore,
	analyzer *gex.Analyzer,
	cal *gex.MarketCalendar,
	store *Store,
	hub *stream.Hub,
	tickers []string,
	interval time.Duration,
	logger *zap.Logger,
) *Refresher {
	return &Refresher{
		fetcher:   fetcher,
		snapshots: snapshots,
		analyzer:  analyzer,
		cal:       cal,
		store:     store,
		hub:       hub,
		tickers:   tickers,
		interval:  interval,
		logger:    logger,
	}
}

// Run refreshes immediately, then on every interval tick until the context
// is cancelled.
func (r *Refresher) Run(ctx context.Context) {
	r.refreshAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher shutting down")
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

func (r *Refresher) refreshAll(ctx context.Context) {
	if !r.cal.IsMarketDay(time.Now()) {
		r.logger.Info("market closed, skipping refresh")
		return
	}

	for _, ticker := range r.tickers {
		if ctx.Err() != nil {
			return
		}
		if err := r.refresh(ctx, ticker); err != nil {
			r.logger.Warn("refresh failed",
				zap.String("ticker", ticker),
				zap.Error(err),
			)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context, ticker string) error {
	ch, raw, err := r.fetcher.FetchChain(ctx, ticker)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		r.logger.Warn("fetch failed, trying cached snapshot",
			zap.String("ticker", ticker),
			zap.Error(err),
		)
		ch, err = r.snapshots.Load(ticker)
		if err != nil {
			return err
		}
	} else if saveErr := r.snapshots.Save(ticker, raw); saveErr != nil {
		r.logger.Warn("snapshot save failed", zap.String("ticker", ticker), zap.Error(saveErr))
	}

	res, err := r.analyzer.Analyze(ch, time.Now())
	if err != nil {
		return err
	}

	r.store.Set(ticker, res)

	if r.hub != nil {
		payload, err := json.Marshal(res)
		if err != nil {
			return err
		}
		r.hub.Broadcast(ticker, payload)
	}

	return nil
}
