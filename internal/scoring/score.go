package scoring

import "math"

// Reverse flips a value around the item bounds for reverse-scored items.
// v is expected to be within [lo, hi]; out-of-range values are clamped first.
func Reverse(v, lo, hi float64) float64 {
	return lo + hi - clamp(v, lo, hi)
}

// Normalize maps raw linearly from [lo, hi] to [0, 100]. Raw values outside
// the bounds are clamped, and degenerate bounds (hi == lo) normalize to 0.
// Every instrument shares this function; results must match the client
// mirror bit for bit.
func Normalize(raw, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (clamp(raw, lo, hi) - lo) / (hi - lo) * 100
}

// Round1 rounds half-up to one decimal for display. The unrounded value is
// kept alongside it for any downstream composite math.
func Round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

// interpret walks ascending bands and returns the first label whose Max
// covers score, or fallback when the score exceeds every band.
func interpret(bands []Band, fallback string, score float64) string {
	for _, b := range bands {
		if score <= b.Max {
			return b.Label
		}
	}
	return fallback
}
