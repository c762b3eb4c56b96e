// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"errors"
	"math"
	"testing"
)

func TestCompress_BelowThresholdUnchanged(t *testing.T) {
	t.Parallel()

	in := sine(440, 8000, 4000)
	for i := range in {
		in[i] *= 0.25 // -12 dBFS peak
	}

	out, err := Compress(in, CompressorParams{ThresholdDB: -6, Ratio: 4, AttackMs: 5, ReleaseMs: 50}, 8000)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d changed: %v -> %v", i, in[i], out[i])
		}
	}
}

func TestCompress_ReducesPeaks(t *testing.T) {
	t.Parallel()

	out, err := Compress(sine(200, 8000, 8000), CompressorParams{ThresholdDB: -20, Ratio: 4, AttackMs: 1, ReleaseMs: 100}, 8000)
	if err != nil {
		t.Fatalf("Compress() error = %v", err)
	}

	// steady state: 0 dB in, threshold -20 dB, ratio 4 -> about -15 dB out
	peak := Peak(out[4000:])
	gotDB := 20 * math.Log10(peak)
	if gotDB > -10 || gotDB < -18 {
		t.Errorf("steady-state peak = %.2f dB, want about -15 dB", gotDB)
	}
}

func TestCompress_RatioOneIsTransparent(t *testing.T) {
	t.Parallel()

	in := sine(100, 8000, 800)
	out, err := Compress(in, CompressorParams{ThresholdDB: -40, Ratio: 1, AttackMs: 1, ReleaseMs: 10}, 8000)
	if err != nil {
		t.Fatal(err)
	}

	for i := range in {
		if math.Abs(out[i]-in[i]) > 1e-12 {
			t.Fatalf("sample %d: %v != %v", i, out[i], in[i])
		}
	}
}

func TestNewCompressor_Invalid(t *testing.T) {
	t.Parallel()

	valid := CompressorParams{ThresholdDB: -18, Ratio: 4, AttackMs: 5, ReleaseMs: 100}
	with := func(f func(*CompressorParams)) CompressorParams {
		p := valid
		f(&p)
		return p
	}

	tests := []struct {
		name string
		p    CompressorParams
		fs   float64
		want error
	}{
		{name: "ratio below one", p: with(func(p *CompressorParams) { p.Ratio = 0.5 }), fs: 8000, want: ErrInvalidRatio},
		{name: "ratio above range", p: with(func(p *CompressorParams) { p.Ratio = 200 }), fs: 8000, want: ErrInvalidRatio},
		{name: "negative attack", p: with(func(p *CompressorParams) { p.AttackMs = -1 }), fs: 8000, want: ErrInvalidTime},
		{name: "zero release", p: with(func(p *CompressorParams) { p.ReleaseMs = 0 }), fs: 8000, want: ErrInvalidTime},
		{name: "infinite threshold", p: with(func(p *CompressorParams) { p.ThresholdDB = math.Inf(1) }), fs: 8000, want: ErrInvalidThreshold},
		{name: "no sample rate", p: valid, fs: 0, want: ErrInvalidSampleRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewCompressor(tt.p, tt.fs); !errors.Is(err, tt.want) {
				t.Errorf("NewCompressor() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewCompressor_Settings(t *testing.T) {
	t.Parallel()

	p := CompressorParams{ThresholdDB: -18, Ratio: 4, AttackMs: 5, ReleaseMs: 100}
	c, err := NewCompressor(p, 44100)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	if c.Threshold() != p.ThresholdDB || c.Ratio() != p.Ratio {
		t.Errorf("threshold/ratio = %v/%v, want %v/%v", c.Threshold(), c.Ratio(), p.ThresholdDB, p.Ratio)
	}
	if c.Attack() != p.AttackMs || c.Release() != p.ReleaseMs {
		t.Errorf("attack/release = %v/%v, want %v/%v", c.Attack(), c.Release(), p.AttackMs, p.ReleaseMs)
	}
	if c.Knee() != 0 || c.MakeupGain() != 0 || c.AutoMakeup() {
		t.Errorf("knee/makeup/auto = %v/%v/%v, want hard knee without makeup", c.Knee(), c.MakeupGain(), c.AutoMakeup())
	}
}
