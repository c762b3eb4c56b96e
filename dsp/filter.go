// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// ButterworthQ gives a maximally flat second-order response.
const ButterworthQ = math.Sqrt2 / 2

func checkCutoff(freq, sampleRate, q float64) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if freq <= 0 || freq >= sampleRate/2 || math.IsNaN(freq) {
		return ErrInvalidFrequency
	}
	if q <= 0 || math.IsNaN(q) {
		return ErrInvalidQ
	}
	return nil
}

// Lowpass designs a second-order low-pass section. design.Lowpass hands
// back zero coefficients for a bad cutoff, so the arguments are checked
// first.
func Lowpass(cutoff, sampleRate, q float64) (biquad.Coefficients, error) {
	if err := checkCutoff(cutoff, sampleRate, q); err != nil {
		return biquad.Coefficients{}, err
	}
	return design.Lowpass(cutoff, q, sampleRate), nil
}

// Highpass designs a second-order high-pass section.
func Highpass(cutoff, sampleRate, q float64) (biquad.Coefficients, error) {
	if err := checkCutoff(cutoff, sampleRate, q); err != nil {
		return biquad.Coefficients{}, err
	}
	return design.Highpass(cutoff, q, sampleRate), nil
}

// Stable reports whether both poles of c lie strictly inside the unit
// circle.
func Stable(c biquad.Coefficients) bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Magnitude is |H(freq)| for a single section.
func Magnitude(c biquad.Coefficients, freq, sampleRate float64) float64 {
	return math.Sqrt(c.MagnitudeSquared(freq, sampleRate))
}

// Apply runs x through a fresh chain of sections and returns the result in
// a new slice.
func Apply(x []float64, sections ...biquad.Coefficients) []float64 {
	out := slices.Clone(x)
	if len(sections) == 0 || len(out) == 0 {
		return out
	}
	biquad.NewChain(sections).ProcessBlock(out)
	return out
}
