package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gammaflip/internal/cboe"
	"github.com/dgnsrekt/gammaflip/internal/chain"
	"github.com/dgnsrekt/gammaflip/internal/gex"
	"github.com/dgnsrekt/gammaflip/internal/report"
)

func snapshotCmd() *cobra.Command {
	var (
		offline bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot [ticker]",
		Short: "Fetch one option chain and print its gamma exposure analysis",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()

			ticker := cfg.Tickers[0]
			if len(args) == 1 {
				ticker = strings.ToUpper(args[0])
			}

			snapshots, err := cboe.NewSnapshotStore(cfg.Source.CacheDir, logger)
			if err != nil {
				return err
			}
			defer snapshots.Close()

			var ch *chain.Chain
			if offline {
				ch, err = snapshots.Load(ticker)
				if err != nil {
					return err
				}
			} else {
				client := cboe.NewClient(
					cfg.Source.BaseURL,
					cfg.Source.RatePerSecond,
					time.Duration(cfg.Source.TimeoutSec)*time.Second,
					time.Duration(cfg.Source.RetryDelaySec)*time.Second,
					cfg.Source.RetryCount,
					logger,
				)

				var raw []byte
				ch, raw, err = client.FetchChain(cmd.Context(), ticker)
				if err != nil {
					logger.Warn("fetch failed, falling back to cached snapshot",
						zap.String("ticker", ticker),
						zap.Error(err),
					)
					ch, err = snapshots.Load(ticker)
					if err != nil {
						return err
					}
				} else if saveErr := snapshots.Save(ticker, raw); saveErr != nil {
					logger.Warn("snapshot save failed", zap.Error(saveErr))
				}
			}

			analyzer := gex.NewAnalyzer(analyzerConfig(cfg), gex.NewMarketCalendar(), logger)
			res, err := analyzer.Analyze(ch, time.Now())
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			report.Write(os.Stdout, res)
			if res.ZeroGamma == nil {
				fmt.Fprintln(os.Stderr, "note: aggregate gamma never changes sign inside the profile window")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "analyze the cached snapshot instead of fetching")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the full result as JSON")

	return cmd
}
