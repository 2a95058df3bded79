package money

import (
	"fmt"
	"math"
)

// Amounts are decimal currency values kept as float64 and normalized to two
// decimal places at every calculation boundary via Round. All booking math in
// this codebase uses the same rounding mode so totals stay reproducible
// between the checkout and cancellation paths.

// Round rounds half away from zero to two decimal places.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundUp ceils to the next cent. Kept for compatibility with systems that
// ceil VAT; the calculators in this repo use Round exclusively.
func RoundUp(v float64) float64 {
	return math.Ceil(v*100) / 100
}

// Format renders an amount with two decimals, e.g. "10763.00".
func Format(v float64) string {
	return fmt.Sprintf("%.2f", Round(v))
}
