// SPDX-License-Identifier: EPL-2.0

package compare

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
	"gonum.org/v1/gonum/floats"
)

const (
	// EnvelopePoints is the number of buckets in each envelope.
	EnvelopePoints = 1000
	// SpectrumSize caps how many leading samples go into a spectrum.
	SpectrumSize = 8192
)

// Series is the drawable summary of one signal.
type Series struct {
	// Min and Max bound the signal within each bucket.
	Min, Max []float64
	// Spectrum holds bin magnitudes from DC to Nyquist.
	Spectrum []float64
}

type Plot struct {
	Original  Series
	Extracted Series
}

// NewPlot summarizes two signals for display.
func NewPlot(original, extracted []float64) Plot {
	return Plot{
		Original:  NewSeries(original),
		Extracted: NewSeries(extracted),
	}
}

func NewSeries(x []float64) Series {
	lo, hi := Envelope(x, EnvelopePoints)
	return Series{Min: lo, Max: hi, Spectrum: Spectrum(x)}
}

// Envelope splits x into at most points buckets of equal length and
// returns the minimum and maximum of each.
func Envelope(x []float64, points int) (lo, hi []float64) {
	if len(x) == 0 || points <= 0 {
		return nil, nil
	}

	size := (len(x) + points - 1) / points
	for start := 0; start < len(x); start += size {
		bucket := x[start:min(start+size, len(x))]
		lo = append(lo, floats.Min(bucket))
		hi = append(hi, floats.Max(bucket))
	}
	return lo, hi
}

// Spectrum returns the magnitude spectrum of the first SpectrumSize
// samples of x after a Hann window, scaled by the window length.
func Spectrum(x []float64) []float64 {
	n := min(len(x), SpectrumSize)
	if n < 2 {
		return nil
	}

	seq := window.Hann(append([]float64(nil), x[:n]...))
	coeffs := fourier.NewFFT(n).Coefficients(nil, seq)

	mag := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mag[i] = cmplx.Abs(c) / float64(n)
	}
	return mag
}
