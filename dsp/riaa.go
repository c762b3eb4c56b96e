// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"
	"github.com/cwbudde/algo-dsp/dsp/filter/design"
)

// RIAA time constants in seconds.
const (
	riaaT1 = 3180e-6 // 50.05 Hz
	riaaT2 = 318e-6  // 500.5 Hz
	riaaT3 = 75e-6   // 2122 Hz

	riaaReferenceHz = 1000.0
)

// InverseRIAA returns the RIAA playback curve,
//
//	H(s) = (1 + s*T2) / ((1 + s*T1)(1 + s*T3))
//
// as a single section with 0 dB gain at 1 kHz. Lows are boosted (about
// +17 dB at 50 Hz) and highs cut (about -14 dB at 10 kHz).
func InverseRIAA(sampleRate float64) (biquad.Coefficients, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return biquad.Coefficients{}, ErrInvalidSampleRate
	}

	// BilinearTransform takes descending powers of s and normalizes each
	// polynomial on its own; the lost gain is restored at the reference.
	num := design.BilinearTransform([3]float64{0, riaaT2, 1}, sampleRate)
	den := design.BilinearTransform([3]float64{riaaT1 * riaaT3, riaaT1 + riaaT3, 1}, sampleRate)

	c := biquad.Coefficients{
		B0: num[0],
		B1: num[1],
		B2: num[2],
		A1: den[1],
		A2: den[2],
	}
	if !Stable(c) {
		return biquad.Coefficients{}, ErrUnstableFilter
	}

	ref := riaaReferenceHz
	if ref >= sampleRate/2 {
		ref = sampleRate / 4
	}
	g := Magnitude(c, ref, sampleRate)
	if g == 0 || math.IsNaN(g) || math.IsInf(g, 0) {
		return biquad.Coefficients{}, ErrUnstableFilter
	}

	c.B0 /= g
	c.B1 /= g
	c.B2 /= g
	return c, nil
}
