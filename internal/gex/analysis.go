package gex

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gammaflip/internal/chain"
)

// Config controls the analysis run.
type Config struct {
	GridPoints         int     // spot levels in the profile grid
	RangePct           float64 // grid half-width as a fraction of spot
	TradingDaysPerYear int
	Workers            int // profile simulation fan-out
}

func DefaultConfig() Config {
	return Config{
		GridPoints:         30,
		RangePct:           0.20,
		TradingDaysPerYear: 262,
		Workers:            4,
	}
}

// Result is one complete positioning snapshot, computed once per run and
// never mutated afterwards.
type Result struct {
	ID         string            `json:"id"`
	Ticker     string            `json:"ticker"`
	Timestamp  time.Time         `json:"timestamp"`
	Spot       float64           `json:"spot"`
	Contracts  int               `json:"contracts"`
	TotalGamma float64           `json:"total_gamma_bn"`
	Strikes    []StrikeAggregate `json:"strikes"`
	Profile    Profile           `json:"profile"`
	// ZeroGamma is nil when the profile curve never changes sign inside
	// the grid. Consumers must treat that as a distinct outcome.
	ZeroGamma *float64 `json:"zero_gamma,omitempty"`
}

// Analyzer runs the full exposure computation over a chain snapshot.
// Stateless between runs and safe for concurrent use.
type Analyzer struct {
	cfg    Config
	cal    *MarketCalendar
	logger *zap.Logger
}

func NewAnalyzer(cfg Config, cal *MarketCalendar, logger *zap.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, cal: cal, logger: logger}
}

// pricedContract carries the per-run pricing inputs derived once per
// contract: the year fraction to expiry and the profile exclusion flags.
type pricedContract struct {
	chain.Contract
	years         float64
	isNext        bool
	isNextMonthly bool
}

// Analyze reconciles the snapshot's quote rows and computes the per-strike
// aggregation, the spot-level profile and the gamma flip point. Any decode
// or reconciliation failure aborts before pricing with no partial output.
func (a *Analyzer) Analyze(ch *chain.Chain, today time.Time) (*Result, error) {
	contracts, err := chain.Reconcile(ch.Quotes)
	if err != nil {
		return nil, err
	}

	priced := a.price(contracts, today)

	agg := a.aggregate(priced, ch.Spot)
	profile := a.simulate(priced, Grid(ch.Spot, a.cfg.GridPoints, a.cfg.RangePct))

	res := &Result{
		ID:         uuid.NewString(),
		Ticker:     ch.Ticker,
		Timestamp:  time.Now().UTC(),
		Spot:       ch.Spot,
		Contracts:  len(contracts),
		TotalGamma: agg.TotalGamma,
		Strikes:    agg.Strikes,
		Profile:    profile,
	}

	if flip, ok := FindFlip(profile.Levels, profile.All); ok {
		res.ZeroGamma = &flip
	}

	a.logger.Info("analysis complete",
		zap.String("ticker", ch.Ticker),
		zap.Int("contracts", len(contracts)),
		zap.Float64("spot", ch.Spot),
		zap.Float64("totalGammaBn", res.TotalGamma),
		zap.Bool("flipFound", res.ZeroGamma != nil),
	)

	return res, nil
}

// price derives years-to-expiry and the exclusion flags for every contract.
func (a *Analyzer) price(contracts []chain.Contract, today time.Time) []pricedContract {
	var nextExpiry, nextMonthly time.Time
	hasMonthly := false

	for _, c := range contracts {
		if nextExpiry.IsZero() || c.Expiry.Before(nextExpiry) {
			nextExpiry = c.Expiry
		}
		if IsMonthlyExpiry(c.Expiry) && (!hasMonthly || c.Expiry.Before(nextMonthly)) {
			nextMonthly = c.Expiry
			hasMonthly = true
		}
	}

	priced := make([]pricedContract, len(contracts))
	for i, c := range contracts {
		priced[i] = pricedContract{
			Contract:      c,
			years:         a.cal.YearsToExpiry(today, c.Expiry, a.cfg.TradingDaysPerYear),
			isNext:        c.Expiry.Equal(nextExpiry),
			isNextMonthly: hasMonthly && c.Expiry.Equal(nextMonthly),
		}
	}
	return priced
}
