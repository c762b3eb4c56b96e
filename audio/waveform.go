// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// Waveform is an immutable mono signal with float64 samples, normally in
// [-1, 1], at a known sample rate.
type Waveform struct {
	samples    []float64
	sampleRate int
}

// NewWaveform copies samples into a new Waveform.
func NewWaveform(samples []float64, sampleRate int) (Waveform, error) {
	if sampleRate <= 0 {
		return Waveform{}, ErrInvalidSampleRate
	}

	return Waveform{
		samples:    append([]float64(nil), samples...),
		sampleRate: sampleRate,
	}, nil
}

// Samples returns a copy of the sample data.
func (w Waveform) Samples() []float64 {
	return append([]float64(nil), w.samples...)
}

func (w Waveform) Len() int         { return len(w.samples) }
func (w Waveform) At(i int) float64 { return w.samples[i] }
func (w Waveform) SampleRate() int  { return w.sampleRate }

func (w Waveform) Duration() time.Duration {
	if w.sampleRate == 0 {
		return 0
	}
	return time.Duration(float64(len(w.samples)) / float64(w.sampleRate) * float64(time.Second))
}

// Source returns a mono Source replaying the waveform.
func (w Waveform) Source() Source {
	return &waveformSource{w: w}
}

type waveformSource struct {
	w   Waveform
	pos int
}

func (s *waveformSource) SampleRate() int { return s.w.sampleRate }
func (s *waveformSource) Channels() int   { return 1 }
func (s *waveformSource) Close() error    { return nil }

func (s *waveformSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.w.samples) {
		return 0, io.EOF
	}

	n := min(len(dst), len(s.w.samples)-s.pos)
	for i := range n {
		dst[i] = float32(s.w.samples[s.pos+i])
	}
	s.pos += n

	if s.pos >= len(s.w.samples) {
		return n, io.EOF
	}
	return n, nil
}

// Collect drains a mono source into a Waveform. It does not close src.
func Collect(src Source) (Waveform, error) {
	if src.Channels() != 1 {
		return Waveform{}, ErrNotMono
	}
	if src.SampleRate() <= 0 {
		return Waveform{}, ErrInvalidSampleRate
	}

	buf := make([]float32, 4096)
	var samples []float64
	idle := 0

	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			samples = append(samples, float64(v))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Waveform{}, fmt.Errorf("%w", err)
		}

		// a source that keeps returning nothing is treated as finished
		if n == 0 {
			idle++
			if idle > 64 {
				break
			}
			continue
		}
		idle = 0
	}

	return Waveform{samples: samples, sampleRate: src.SampleRate()}, nil
}
