package chain

import "time"

// Quote is one raw option row as delivered by the delayed-quotes feed.
// The core only consumes the symbol, implied volatility and open interest;
// the remaining fields are parsed so callers can surface them unchanged.
type Quote struct {
	Option         string  `json:"option"`
	LastTradePrice float64 `json:"last_trade_price"`
	Change         float64 `json:"change"`
	Bid            float64 `json:"bid"`
	Ask            float64 `json:"ask"`
	Volume         int64   `json:"volume"`
	IV             float64 `json:"iv"`
	Delta          float64 `json:"delta"`
	Gamma          float64 `json:"gamma"`
	OpenInterest   int64   `json:"open_interest"`
}

// Leg is one side of a matched contract. Immutable once built.
// QuotedGamma is the per-unit gamma reported by the feed; the pricer
// recomputes gamma itself and never reads it.
type Leg struct {
	Expiry       time.Time `json:"expiry"`
	Strike       float64   `json:"strike"`
	IV           float64   `json:"iv"`
	OpenInterest int64     `json:"open_interest"`
	QuotedGamma  float64   `json:"quoted_gamma"`
}

// Contract is a call leg and a put leg sharing the same expiry and strike.
// Reconcile is the only constructor; it guarantees the legs agree.
type Contract struct {
	Expiry time.Time `json:"expiry"`
	Strike float64   `json:"strike"`
	Call   Leg       `json:"call"`
	Put    Leg       `json:"put"`
}

// Chain is a decoded option-chain snapshot: the current spot price and the
// unreconciled quote rows for one underlying.
type Chain struct {
	Ticker string  `json:"ticker"`
	Spot   float64 `json:"spot"`
	Quotes []Quote `json:"quotes"`
}
