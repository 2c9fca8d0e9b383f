package chain

import (
	"fmt"
	"strings"
)

// ReconciliationError means the call and put rows of a chain snapshot do not
// line up into (expiry, strike) pairs. This indicates a broken feed, so the
// run aborts before any pricing. No partial contracts are returned.
type ReconciliationError struct {
	Calls     int
	Puts      int
	Unmatched []string // symbols with no partner on the other side
}

func (e *ReconciliationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "call/put reconciliation failed: %d calls, %d puts", e.Calls, e.Puts)
	if len(e.Unmatched) > 0 {
		n := len(e.Unmatched)
		show := e.Unmatched
		if n > 5 {
			show = show[:5]
		}
		fmt.Fprintf(&sb, ", %d unmatched (%s", n, strings.Join(show, ", "))
		if n > 5 {
			sb.WriteString(", ...")
		}
		sb.WriteString(")")
	}
	return sb.String()
}

type pairKey struct {
	expiry string // YYMMDD, date only
	strike float64
}

// Reconcile decodes raw quote rows and pairs each call with the put sharing
// its (expiry, strike). Pairing is keyed on the decoded fields rather than
// row position, so a reordered feed still reconciles; any row without a
// partner is a fatal mismatch. Contracts come back in call-row order.
func Reconcile(quotes []Quote) ([]Contract, error) {
	calls := make([]Quote, 0, len(quotes)/2)
	puts := make(map[pairKey][]Quote)
	putIDs := make(map[pairKey][]Identifier)
	var putCount int

	for _, q := range quotes {
		id, err := ParseIdentifier(q.Option)
		if err != nil {
			return nil, err
		}
		if id.Side == Call {
			calls = append(calls, q)
			continue
		}
		k := pairKey{expiry: id.Expiry.Format("060102"), strike: id.Strike}
		puts[k] = append(puts[k], q)
		putIDs[k] = append(putIDs[k], id)
		putCount++
	}

	recErr := &ReconciliationError{Calls: len(calls), Puts: putCount}
	contracts := make([]Contract, 0, len(calls))

	for _, cq := range calls {
		// Already validated above.
		cid, err := ParseIdentifier(cq.Option)
		if err != nil {
			return nil, err
		}
		k := pairKey{expiry: cid.Expiry.Format("060102"), strike: cid.Strike}

		queue := puts[k]
		if len(queue) == 0 {
			recErr.Unmatched = append(recErr.Unmatched, cq.Option)
			continue
		}
		pq, pid := queue[0], putIDs[k][0]
		puts[k] = queue[1:]
		putIDs[k] = putIDs[k][1:]

		// Redundant with key-based pairing, kept as a safety net: a
		// mismatched pair here means the pairing itself is broken.
		if !cid.Expiry.Equal(pid.Expiry) || cid.Strike != pid.Strike {
			recErr.Unmatched = append(recErr.Unmatched, cq.Option, pq.Option)
			continue
		}

		contracts = append(contracts, Contract{
			Expiry: cid.Expiry,
			Strike: cid.Strike,
			Call: Leg{
				Expiry:       cid.Expiry,
				Strike:       cid.Strike,
				IV:           cq.IV,
				OpenInterest: cq.OpenInterest,
				QuotedGamma:  cq.Gamma,
			},
			Put: Leg{
				Expiry:       pid.Expiry,
				Strike:       pid.Strike,
				IV:           pq.IV,
				OpenInterest: pq.OpenInterest,
				QuotedGamma:  pq.Gamma,
			},
		})
	}

	// Leftover puts never found a call.
	for _, queue := range puts {
		for _, pq := range queue {
			recErr.Unmatched = append(recErr.Unmatched, pq.Option)
		}
	}

	if len(recErr.Unmatched) > 0 || len(calls) != putCount {
		return nil, recErr
	}

	return contracts, nil
}
