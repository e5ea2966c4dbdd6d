package core

import "math"

const (
	// SettleEpsilon is the local cleanup tolerance: a remainder below it
	// settles the party, and a k-group whose sum is within it is zero-sum.
	SettleEpsilon = 0.001

	// ActiveThreshold is the global accounting tolerance: balances below it
	// are settled, and a balance sum beyond it violates integrity.
	ActiveThreshold = 0.01
)

// Round2 rounds x to two decimal places, half away from zero.
// Equal cent values always map to the identical float64, so rounded
// magnitudes are safe to use as map keys.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Abs2 returns |x| rounded to two decimals.
func Abs2(x float64) float64 {
	return Round2(math.Abs(x))
}
