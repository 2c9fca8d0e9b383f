package gex

import (
	"math"
	"testing"

	"github.com/dgnsrekt/gammaflip/internal/chain"
)

func TestAggregate_GroupsByStrikeAcrossExpiries(t *testing.T) {
	a := testAnalyzer(DefaultConfig())
	today := date(2024, 3, 4)

	contracts := []chain.Contract{
		testContract(date(2024, 3, 8), 4500, 0.2, 0.22, 100, 50),
		testContract(date(2024, 3, 15), 4500, 0.18, 0.21, 70, 30),
		testContract(date(2024, 3, 15), 4600, 0.17, 0.20, 40, 60),
	}

	agg := a.aggregate(a.price(contracts, today), 4500)

	if len(agg.Strikes) != 2 {
		t.Fatalf("expected 2 strike groups, got %d", len(agg.Strikes))
	}

	first := agg.Strikes[0]
	if first.Strike != 4500 {
		t.Fatalf("expected first group at 4500, got %v", first.Strike)
	}
	if first.CallOI != 170 || first.PutOI != 80 {
		t.Errorf("open interest not summed across expiries: call %d, put %d", first.CallOI, first.PutOI)
	}
	if first.CallExposure <= 0 {
		t.Error("call exposure at the money should be positive")
	}
	if first.PutExposure >= 0 {
		t.Error("put exposure must be negated")
	}
}

func TestAggregate_OrderInvariant(t *testing.T) {
	a := testAnalyzer(DefaultConfig())
	today := date(2024, 3, 4)

	contracts := []chain.Contract{
		testContract(date(2024, 3, 8), 4400, 0.22, 0.25, 120, 300),
		testContract(date(2024, 3, 15), 4500, 0.18, 0.21, 700, 30),
		testContract(date(2024, 4, 19), 4600, 0.17, 0.20, 40, 460),
		testContract(date(2024, 3, 15), 4400, 0.19, 0.23, 55, 90),
	}

	reversed := make([]chain.Contract, len(contracts))
	for i, c := range contracts {
		reversed[len(contracts)-1-i] = c
	}

	agg := a.aggregate(a.price(contracts, today), 4500)
	aggRev := a.aggregate(a.price(reversed, today), 4500)

	if math.Abs(agg.TotalGamma-aggRev.TotalGamma) > 1e-12 {
		t.Errorf("TotalGamma changed with input order: %v vs %v", agg.TotalGamma, aggRev.TotalGamma)
	}
	if len(agg.Strikes) != len(aggRev.Strikes) {
		t.Fatalf("group counts differ: %d vs %d", len(agg.Strikes), len(aggRev.Strikes))
	}
	for i := range agg.Strikes {
		x, y := agg.Strikes[i], aggRev.Strikes[i]
		if x.Strike != y.Strike || x.CallOI != y.CallOI || x.PutOI != y.PutOI {
			t.Errorf("group %d differs: %+v vs %+v", i, x, y)
		}
		if math.Abs(x.NetExposure-y.NetExposure) > 1e-12 {
			t.Errorf("group %d net exposure differs: %v vs %v", i, x.NetExposure, y.NetExposure)
		}
	}
}

func TestAggregate_TotalIsSumOfGroups(t *testing.T) {
	a := testAnalyzer(DefaultConfig())
	today := date(2024, 3, 4)

	contracts := []chain.Contract{
		testContract(date(2024, 3, 8), 4400, 0.22, 0.25, 120, 300),
		testContract(date(2024, 3, 15), 4500, 0.18, 0.21, 700, 30),
	}

	agg := a.aggregate(a.price(contracts, today), 4500)

	var sum float64
	for _, s := range agg.Strikes {
		sum += s.NetExposure
	}
	if math.Abs(sum-agg.TotalGamma) > 1e-9 {
		t.Errorf("group net exposures (%v) do not sum to TotalGamma (%v)", sum, agg.TotalGamma)
	}
}

func TestAggregate_PutOnlyChainIsNetNegative(t *testing.T) {
	a := testAnalyzer(DefaultConfig())
	today := date(2024, 3, 4)

	contracts := []chain.Contract{
		testContract(date(2024, 3, 15), 4500, 0.18, 0.21, 0, 500),
	}

	agg := a.aggregate(a.price(contracts, today), 4500)
	if agg.TotalGamma >= 0 {
		t.Errorf("put-only chain must aggregate negative, got %v", agg.TotalGamma)
	}
}
