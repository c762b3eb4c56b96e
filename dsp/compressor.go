// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-dsp/dsp/effects"
)

// Parameter ranges accepted by effects.Compressor.
const (
	MinRatio     = 1.0
	MaxRatio     = 100.0
	MinAttackMs  = 0.1
	MaxAttackMs  = 1000.0
	MinReleaseMs = 1.0
	MaxReleaseMs = 5000.0
)

// CompressorParams configures a compressor.
type CompressorParams struct {
	ThresholdDB float64 // level above which gain reduction starts, dBFS
	Ratio       float64 // input dB over threshold per output dB
	AttackMs    float64
	ReleaseMs   float64
}

// Validate checks p against the ranges the compressor accepts.
func (p CompressorParams) Validate() error {
	if math.IsNaN(p.ThresholdDB) || math.IsInf(p.ThresholdDB, 0) {
		return fmt.Errorf("%w: threshold %v dB", ErrInvalidThreshold, p.ThresholdDB)
	}
	if p.Ratio < MinRatio || p.Ratio > MaxRatio || math.IsNaN(p.Ratio) {
		return fmt.Errorf("%w: %v", ErrInvalidRatio, p.Ratio)
	}
	if p.AttackMs < MinAttackMs || p.AttackMs > MaxAttackMs || math.IsNaN(p.AttackMs) {
		return fmt.Errorf("%w: attack %v ms", ErrInvalidTime, p.AttackMs)
	}
	if p.ReleaseMs < MinReleaseMs || p.ReleaseMs > MaxReleaseMs || math.IsNaN(p.ReleaseMs) {
		return fmt.Errorf("%w: release %v ms", ErrInvalidTime, p.ReleaseMs)
	}
	return nil
}

// NewCompressor returns a hard-knee compressor without makeup gain: an
// envelope below the threshold leaves samples untouched, and above it the
// level over the threshold is divided by Ratio.
func NewCompressor(p CompressorParams, sampleRate float64) (*effects.Compressor, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, ErrInvalidSampleRate
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c, err := effects.NewCompressor(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSampleRate, err)
	}

	setters := []func() error{
		func() error { return c.SetThreshold(p.ThresholdDB) },
		func() error { return c.SetRatio(p.Ratio) },
		func() error { return c.SetKnee(0) },
		func() error { return c.SetAttack(p.AttackMs) },
		func() error { return c.SetRelease(p.ReleaseMs) },
		// also turns auto makeup off
		func() error { return c.SetMakeupGain(0) },
	}
	for _, set := range setters {
		if err := set(); err != nil {
			return nil, fmt.Errorf("configuring compressor: %w", err)
		}
	}

	return c, nil
}

// Compress runs x through a fresh compressor and returns the result in a
// new slice.
func Compress(x []float64, p CompressorParams, sampleRate float64) ([]float64, error) {
	c, err := NewCompressor(p, sampleRate)
	if err != nil {
		return nil, err
	}

	out := slices.Clone(x)
	c.ProcessInPlace(out)
	return out, nil
}
