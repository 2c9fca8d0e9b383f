package gex

import (
	"sort"

	"github.com/dgnsrekt/gammaflip/internal/chain"
)

const billion = 1e9

// StrikeAggregate sums exposure and open interest across every contract at
// one strike, regardless of expiry. Call/put exposures are in dollars per
// 1% move; NetExposure is their sum expressed in billions.
type StrikeAggregate struct {
	Strike       float64 `json:"strike"`
	CallExposure float64 `json:"call_exposure"`
	PutExposure  float64 `json:"put_exposure"`
	CallOI       int64   `json:"call_oi"`
	PutOI        int64   `json:"put_oi"`
	NetExposure  float64 `json:"net_exposure_bn"`
}

// Aggregation is the current-spot exposure snapshot: per-strike totals in
// ascending strike order plus the portfolio scalar in billions per 1% move.
type Aggregation struct {
	Strikes    []StrikeAggregate `json:"strikes"`
	TotalGamma float64           `json:"total_gamma_bn"`
}

// aggregate prices every contract at the actual spot and groups exposure by
// strike. Put exposure is negated: by dealer-positioning convention puts
// contribute offsetting gamma. Risk-free rate and dividend yield are pinned
// to zero here; this aggregation never prices with anything else.
func (a *Analyzer) aggregate(contracts []pricedContract, spot float64) Aggregation {
	byStrike := make(map[float64]*StrikeAggregate)
	var total float64

	for _, pc := range contracts {
		callEx := Exposure(spot, pc.Strike, pc.Call.IV, pc.years, 0, 0, chain.Call, pc.Call.OpenInterest)
		putEx := -Exposure(spot, pc.Strike, pc.Put.IV, pc.years, 0, 0, chain.Put, pc.Put.OpenInterest)

		agg := byStrike[pc.Strike]
		if agg == nil {
			agg = &StrikeAggregate{Strike: pc.Strike}
			byStrike[pc.Strike] = agg
		}
		agg.CallExposure += callEx
		agg.PutExposure += putEx
		agg.CallOI += pc.Call.OpenInterest
		agg.PutOI += pc.Put.OpenInterest
		agg.NetExposure += (callEx + putEx) / billion

		total += callEx + putEx
	}

	strikes := make([]StrikeAggregate, 0, len(byStrike))
	for _, agg := range byStrike {
		strikes = append(strikes, *agg)
	}
	sort.Slice(strikes, func(i, j int) bool { return strikes[i].Strike < strikes[j].Strike })

	return Aggregation{
		Strikes:    strikes,
		TotalGamma: total / billion,
	}
}
