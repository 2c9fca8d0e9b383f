package config

import (
	"fmt"
	"regexp"
	"strings"
)

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,6}$`)

// ValidationErrors collects all validation problems so a bad config is
// reported in one pass instead of one error per run.
type ValidationErrors struct {
	InvalidTickers []string
	Problems       []string
}

// HasErrors returns true if any validation errors exist
func (e *ValidationErrors) HasErrors() bool {
	return len(e.InvalidTickers) > 0 || len(e.Problems) > 0
}

// Error formats all validation errors into a clear message
func (e *ValidationErrors) Error() string {
	var sb strings.Builder
	sb.WriteString("configuration validation failed:\n")

	if len(e.InvalidTickers) > 0 {
		sb.WriteString("\nInvalid tickers (expected 1-6 uppercase letters):\n")
		for _, t := range e.InvalidTickers {
			sb.WriteString(fmt.Sprintf("  - %s\n", t))
		}
	}

	for _, p := range e.Problems {
		sb.WriteString(fmt.Sprintf("  - %s\n", p))
	}

	return sb.String()
}

// Validate checks tickers and the numeric analysis/source settings.
func Validate(cfg *Config) error {
	errs := &ValidationErrors{}

	for _, ticker := range cfg.Tickers {
		if !tickerPattern.MatchString(ticker) {
			errs.InvalidTickers = append(errs.InvalidTickers, ticker)
		}
	}
	if len(cfg.Tickers) == 0 {
		errs.Problems = append(errs.Problems, "tickers: at least one ticker is required")
	}

	if cfg.Analysis.GridPoints < 2 {
		errs.Problems = append(errs.Problems, fmt.Sprintf("analysis.grid_points: need at least 2 levels, got %d", cfg.Analysis.GridPoints))
	}
	if cfg.Analysis.RangePct <= 0 || cfg.Analysis.RangePct >= 1 {
		errs.Problems = append(errs.Problems, fmt.Sprintf("analysis.range_pct: must be in (0, 1), got %g", cfg.Analysis.RangePct))
	}
	if cfg.Analysis.TradingDaysPerYear <= 0 {
		errs.Problems = append(errs.Problems, fmt.Sprintf("analysis.trading_days_per_year: must be positive, got %d", cfg.Analysis.TradingDaysPerYear))
	}
	if cfg.Analysis.Workers < 1 {
		errs.Problems = append(errs.Problems, fmt.Sprintf("analysis.workers: need at least 1, got %d", cfg.Analysis.Workers))
	}

	if cfg.Source.BaseURL == "" {
		errs.Problems = append(errs.Problems, "source.base_url: required")
	}
	if cfg.Source.RatePerSecond < 1 {
		errs.Problems = append(errs.Problems, fmt.Sprintf("source.rate_per_second: need at least 1, got %d", cfg.Source.RatePerSecond))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
