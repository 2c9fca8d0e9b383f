// Package report renders an analysis result as a plain-text summary for the
// CLI. Charting stays out of scope; tables are the terminal surface.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/dgnsrekt/gammaflip/internal/gex"
)

// Write prints the snapshot summary and the per-strike aggregate table.
// Strikes outside the profile window are skipped to keep the table focused
// on levels that matter for positioning.
func Write(w io.Writer, res *gex.Result) {
	fmt.Fprintf(w, "Ticker:      %s\n", res.Ticker)
	fmt.Fprintf(w, "Spot:        %.2f\n", res.Spot)
	fmt.Fprintf(w, "Contracts:   %d\n", res.Contracts)
	fmt.Fprintf(w, "Total Gamma: $%.2f Bn per 1%% move\n", res.TotalGamma)

	if res.ZeroGamma != nil {
		fmt.Fprintf(w, "Gamma Flip:  %.2f\n", *res.ZeroGamma)
	} else {
		fmt.Fprintln(w, "Gamma Flip:  no zero crossing inside the profile window")
	}
	fmt.Fprintln(w)

	lo := res.Profile.Levels[0]
	hi := res.Profile.Levels[len(res.Profile.Levels)-1]

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Strike", "Call OI", "Put OI", "Call GEX $Bn", "Put GEX $Bn", "Net GEX $Bn"})

	for _, agg := range res.Strikes {
		if agg.Strike < lo || agg.Strike > hi {
			continue
		}
		table.Append([]string{
			fmt.Sprintf("%.0f", agg.Strike),
			fmt.Sprintf("%d", agg.CallOI),
			fmt.Sprintf("%d", agg.PutOI),
			fmt.Sprintf("%.3f", agg.CallExposure/1e9),
			fmt.Sprintf("%.3f", agg.PutExposure/1e9),
			fmt.Sprintf("%.3f", agg.NetExposure),
		})
	}

	table.Render()
}
