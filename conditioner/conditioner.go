// SPDX-License-Identifier: EPL-2.0

package conditioner

import (
	"fmt"

	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/dsp"
)

// Options selects the conditioning steps. Zero values skip a stage; the
// config package fills in every stage by default.
type Options struct {
	// TargetRate is the output sample rate in Hz.
	TargetRate int

	// HighpassHz removes rumble and DC below this frequency.
	HighpassHz float64
	// LowpassHz band-limits the signal; it must sit below TargetRate/2.
	LowpassHz float64

	// InverseRIAA applies the playback (de-emphasis) curve so a cut
	// groove reproduces flat through a standard phono preamp.
	InverseRIAA bool

	// Compressor is applied when Compressor.Ratio > 1. Attack and release
	// must then lie within the dsp.Min*/Max* ranges.
	Compressor dsp.CompressorParams

	LeadSilence  float64 // seconds
	TrailSilence float64 // seconds
}

// Validate checks the options against the target rate.
func (o Options) Validate() error {
	if o.TargetRate <= 0 {
		return ErrInvalidTargetRate
	}

	nyquist := float64(o.TargetRate) / 2
	for _, f := range []float64{o.HighpassHz, o.LowpassHz} {
		if f < 0 || f >= nyquist {
			return fmt.Errorf("%w: %g Hz at %d Hz", ErrInvalidCutoff, f, o.TargetRate)
		}
	}

	if o.Compressor.Ratio > 1 {
		if err := o.Compressor.Validate(); err != nil {
			return fmt.Errorf("compressor: %w", err)
		}
	}

	return nil
}

// Process runs the conditioning chain over src and returns the result.
// src is closed before Process returns.
func Process(src audio.Source, opts Options) (w audio.Waveform, err error) {
	if err := opts.Validate(); err != nil {
		return audio.Waveform{}, err
	}

	if src.Channels() <= 0 {
		_ = src.Close()
		return audio.Waveform{}, fmt.Errorf("%w: %d", audio.ErrInvalidChannels, src.Channels())
	}

	var stream audio.Source = audio.NewMonoMixer(src)
	defer func() {
		if cerr := stream.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing source: %w", cerr)
		}
	}()

	rate := src.SampleRate()
	if opts.LeadSilence > 0 || opts.TrailSilence > 0 {
		stream = audio.NewPadder(stream, audio.FramesFor(opts.LeadSilence, rate), audio.FramesFor(opts.TrailSilence, rate))
	}

	rs, err := audio.NewResampler(stream, opts.TargetRate)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("resampling: %w", err)
	}
	stream = rs

	collected, err := audio.Collect(stream)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("reading source: %w", err)
	}

	out, err := Filter(collected.Samples(), opts)
	if err != nil {
		return audio.Waveform{}, err
	}

	return audio.NewWaveform(out, opts.TargetRate)
}

// Filter applies steps 4 to 8 to mono samples already at opts.TargetRate.
func Filter(x []float64, opts Options) ([]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	fs := float64(opts.TargetRate)

	if opts.HighpassHz > 0 {
		c, err := dsp.Highpass(opts.HighpassHz, fs, dsp.ButterworthQ)
		if err != nil {
			return nil, fmt.Errorf("high-pass: %w", err)
		}
		x = dsp.Apply(x, c)
	}

	if opts.InverseRIAA {
		c, err := dsp.InverseRIAA(fs)
		if err != nil {
			return nil, fmt.Errorf("inverse RIAA: %w", err)
		}
		x = dsp.Apply(x, c)
	}

	if opts.Compressor.Ratio > 1 {
		out, err := dsp.Compress(x, opts.Compressor, fs)
		if err != nil {
			return nil, fmt.Errorf("compressor: %w", err)
		}
		x = out
	}

	if opts.LowpassHz > 0 {
		c, err := dsp.Lowpass(opts.LowpassHz, fs, dsp.ButterworthQ)
		if err != nil {
			return nil, fmt.Errorf("low-pass: %w", err)
		}
		x = dsp.Apply(x, c)
	}

	return Normalize(x), nil
}

// Normalize scales x so its largest magnitude is 1. Silence stays silent
// and a second pass leaves the result unchanged.
func Normalize(x []float64) []float64 {
	return dsp.Normalize(x)
}
