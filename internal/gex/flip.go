package gex

// FindFlip scans the all-expiries profile curve for a sign change and
// linearly interpolates the spot level where aggregate gamma crosses zero.
// The grid is scanned in increasing-spot order and the first crossing wins;
// if the curve crosses more than once inside one grid step only the first
// detected bracket is reported.
//
// A curve with no sign change returns ok=false. Absence of a flip is a
// legitimate outcome, not an error.
func FindFlip(levels, gamma []float64) (flip float64, ok bool) {
	for i := 0; i+1 < len(gamma); i++ {
		if (gamma[i] < 0) == (gamma[i+1] < 0) {
			continue
		}
		negLevel, negGamma := levels[i], gamma[i]
		posLevel, posGamma := levels[i+1], gamma[i+1]
		return posLevel - (posLevel-negLevel)*posGamma/(posGamma-negGamma), true
	}
	return 0, false
}
