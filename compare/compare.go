// SPDX-License-Identifier: EPL-2.0

package compare

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ik5/grooverider/utils"
)

// Result holds the score and the aligned signals it was computed from.
type Result struct {
	Score     float64
	Original  []float64
	Extracted []float64
	Plot      Plot
}

// Compare aligns original and extracted and scores their similarity. An
// empty input scores 0 and is not resampled. A constant signal has no
// defined correlation and also scores 0.
func Compare(original, extracted []float64) Result {
	if len(original) == 0 || len(extracted) == 0 {
		return Result{
			Original:  append([]float64(nil), original...),
			Extracted: append([]float64(nil), extracted...),
		}
	}

	n := max(len(original), len(extracted))
	a, b := Resample(original, n), Resample(extracted, n)

	score := stat.Correlation(a, b, nil)
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0
	}

	return Result{
		Score:     score,
		Original:  a,
		Extracted: b,
		Plot:      NewPlot(a, b),
	}
}

// Resample stretches x to n samples by linear interpolation. Output sample
// j is read at position j·len(x)/n, so both series cover the same span.
func Resample(x []float64, n int) []float64 {
	if n <= 0 || len(x) == 0 {
		return nil
	}

	out := make([]float64, n)
	if len(x) == n {
		copy(out, x)
		return out
	}

	last := len(x) - 1
	scale := float64(len(x)) / float64(n)
	for j := range out {
		pos := float64(j) * scale
		i := int(pos)
		if i >= last {
			out[j] = x[last]
			continue
		}
		out[j] = utils.LinearInterpolate(x[i], x[i+1], pos-float64(i))
	}
	return out
}
