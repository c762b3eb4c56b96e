// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Peak returns max |x|, or 0 for an empty slice.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, math.Inf(1))
}

// Normalize returns x divided by its absolute peak. Silent input comes back
// as an all-zero copy.
func Normalize(x []float64) []float64 {
	out := make([]float64, len(x))
	peak := Peak(x)
	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return out
	}

	// division keeps peak/peak == 1 exact, so a second pass is a no-op
	for i, v := range x {
		out[i] = v / peak
	}
	return out
}
