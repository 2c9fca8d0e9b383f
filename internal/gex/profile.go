package gex

import (
	"sync"

	"github.com/dgnsrekt/gammaflip/internal/chain"
)

// Profile is aggregate gamma exposure re-priced across a grid of
// hypothetical spot levels. The three curves are index-aligned with Levels
// and expressed in billions per 1% move: every expiry, every expiry except
// the single nearest one, and every expiry except the nearest standard
// monthly (third-Friday) one.
type Profile struct {
	Levels        []float64 `json:"levels"`
	All           []float64 `json:"all"`
	ExNext        []float64 `json:"ex_next"`
	ExNextMonthly []float64 `json:"ex_next_monthly"`
}

// Grid returns points evenly spaced spot levels spanning
// [(1-rangePct)*spot, (1+rangePct)*spot], endpoints included.
func Grid(spot float64, points int, rangePct float64) []float64 {
	lo := (1 - rangePct) * spot
	hi := (1 + rangePct) * spot

	levels := make([]float64, points)
	step := (hi - lo) / float64(points-1)
	for i := range levels {
		levels[i] = lo + float64(i)*step
	}
	// Pin the endpoint against accumulated float error.
	levels[points-1] = hi
	return levels
}

// simulate re-prices every contract at every grid level, holding implied
// vols and open interest fixed while only the hypothetical spot moves.
// Each level is independent of the others, so levels are fanned out to a
// worker pool; every worker writes only its own grid slots.
//
// O(levels x contracts), the dominant cost of the whole run.
func (a *Analyzer) simulate(contracts []pricedContract, levels []float64) Profile {
	p := Profile{
		Levels:        levels,
		All:           make([]float64, len(levels)),
		ExNext:        make([]float64, len(levels)),
		ExNextMonthly: make([]float64, len(levels)),
	}

	workers := a.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, len(levels))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p.All[i], p.ExNext[i], p.ExNextMonthly[i] = levelTotals(contracts, levels[i])
			}
		}()
	}

	for i := range levels {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return p
}

// levelTotals sums net (call minus put) exposure for one hypothetical spot
// level, returning the all-expiries total and the two exclusion totals,
// each scaled to billions.
func levelTotals(contracts []pricedContract, level float64) (all, exNext, exNextMonthly float64) {
	for _, pc := range contracts {
		callEx := Exposure(level, pc.Strike, pc.Call.IV, pc.years, 0, 0, chain.Call, pc.Call.OpenInterest)
		putEx := Exposure(level, pc.Strike, pc.Put.IV, pc.years, 0, 0, chain.Put, pc.Put.OpenInterest)
		net := callEx - putEx

		all += net
		if !pc.isNext {
			exNext += net
		}
		if !pc.isNextMonthly {
			exNextMonthly += net
		}
	}
	return all / billion, exNext / billion, exNextMonthly / billion
}
