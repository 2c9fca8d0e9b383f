package chain

import (
	"fmt"
	"strconv"
	"time"
)

// Side marks which half of a contract a quote row belongs to.
type Side int

const (
	Call Side = iota
	Put
)

func (s Side) String() string {
	if s == Call {
		return "call"
	}
	return "put"
}

// Identifier is a decoded option symbol.
//
// The wire format is <root><YYMMDD><C|P><strike*1000>, with the strike
// zero-padded to 8 digits. Only the root is variable width, so all fields
// are sliced from the end of the string:
//
//	CMG240621C00150000
//	   └─expiry┘│└strike┘
//	            side
type Identifier struct {
	Root   string
	Expiry time.Time
	Side   Side
	Strike float64
}

// DecodeError reports an option symbol that violates the fixed-width layout.
// Decoding is fail-fast: one bad symbol aborts the whole run, since a
// silently mis-decoded row would corrupt every downstream aggregate.
type DecodeError struct {
	Symbol string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding option symbol %q: %s", e.Symbol, e.Reason)
}

const (
	expiryWidth = 6
	strikeWidth = 8
	// expiry + side flag + strike
	suffixWidth = expiryWidth + 1 + strikeWidth
)

// ParseIdentifier decodes an option symbol into its root, expiration date,
// call/put side and strike price.
func ParseIdentifier(symbol string) (Identifier, error) {
	n := len(symbol)
	if n < suffixWidth+1 {
		return Identifier{}, &DecodeError{Symbol: symbol, Reason: "too short for root+expiry+side+strike layout"}
	}

	root := symbol[:n-suffixWidth]

	expiry, err := time.Parse("060102", symbol[n-suffixWidth:n-strikeWidth-1])
	if err != nil {
		return Identifier{}, &DecodeError{Symbol: symbol, Reason: "invalid expiry date"}
	}

	var side Side
	switch symbol[n-strikeWidth-1] {
	case 'C':
		side = Call
	case 'P':
		side = Put
	default:
		return Identifier{}, &DecodeError{Symbol: symbol, Reason: "side flag is not 'C' or 'P'"}
	}

	// Strike is quoted in thousandths: 00150000 -> 150.000
	raw, err := strconv.ParseUint(symbol[n-strikeWidth:], 10, 64)
	if err != nil {
		return Identifier{}, &DecodeError{Symbol: symbol, Reason: "non-numeric strike"}
	}
	if raw == 0 {
		return Identifier{}, &DecodeError{Symbol: symbol, Reason: "zero strike"}
	}

	return Identifier{
		Root:   root,
		Expiry: expiry,
		Side:   side,
		Strike: float64(raw) / 1000,
	}, nil
}
