package pricing

import "math"

// RoundHalfUpCents rounds a fractional cent amount to the nearest whole cent,
// half away from zero. Applied after every multiplicative rule application
// and at aggregation, so totals never drift from the per-day figures.
func RoundHalfUpCents(v float64) int64 {
	if v >= 0 {
		return int64(math.Floor(v + 0.5))
	}
	return int64(math.Ceil(v - 0.5))
}

// ApplyPercent adjusts cents by a percentage (10 means +10%) and rounds
// half-up to the cent.
func ApplyPercent(cents int64, percent float64) int64 {
	return RoundHalfUpCents(float64(cents) * (1 + percent/100))
}

// PercentOf returns percent% of cents, rounded half-up.
func PercentOf(cents int64, percent float64) int64 {
	return RoundHalfUpCents(float64(cents) * percent / 100)
}

// ClampCents bounds v to [min, max].
func ClampCents(v, min, max int64) int64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
