// Package gex computes dealer gamma exposure from a reconciled option chain:
// per-strike aggregates at the current spot, a profile of aggregate exposure
// across hypothetical spot levels, and the zero-gamma flip point.
package gex

import (
	"math"

	"github.com/dgnsrekt/gammaflip/internal/chain"
)

// ContractMultiplier is the share deliverable per listed contract.
const ContractMultiplier = 100

// normPDF is the standard normal density.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / math.Sqrt(2*math.Pi)
}

// Exposure returns the dollar gamma exposure of one option leg:
// openInterest * 100 * spot^2 * 0.01 * gamma, i.e. the dealer hedge
// rebalancing quantity per 1% move in the underlying.
//
// Gamma follows Black-Scholes for a European option with continuous
// dividend yield q. The call path uses phi(d1); the put path keeps its own
// K*e^(-rT)*phi(d2) form. Both are the same number mathematically, so any
// drift between the two branches exposes an implementation bug.
//
// Zero yearsToExpiry or zero vol is a degenerate input, not an error, and
// prices to zero exposure.
func Exposure(spot, strike, vol, yearsToExpiry, riskFreeRate, dividendYield float64, side chain.Side, openInterest int64) float64 {
	if yearsToExpiry == 0 || vol == 0 {
		return 0
	}

	volSqrtT := vol * math.Sqrt(yearsToExpiry)
	d1 := (math.Log(spot/strike) + (riskFreeRate-dividendYield+0.5*vol*vol)*yearsToExpiry) / volSqrtT
	d2 := d1 - volSqrtT

	var gamma float64
	if side == chain.Call {
		gamma = math.Exp(-dividendYield*yearsToExpiry) * normPDF(d1) / (spot * volSqrtT)
	} else {
		gamma = strike * math.Exp(-riskFreeRate*yearsToExpiry) * normPDF(d2) / (spot * spot * volSqrtT)
	}

	return float64(openInterest) * ContractMultiplier * spot * spot * 0.01 * gamma
}
