// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/filter/biquad"

	"github.com/ik5/grooverider/dsp"
	"github.com/ik5/grooverider/utils"
)

// antiAliasRatio places the anti-alias cutoff just below the destination
// Nyquist frequency.
const antiAliasRatio = 0.45

// Resampler streams from src to a target sample rate using Catmull-Rom
// cubic interpolation. Works on interleaved samples; preserves channel
// count. When downsampling, input frames first pass a 4th-order
// Butterworth low-pass at 0.45 × the destination rate.
//
// Output frame j sits at source position j·srcRate/dstRate; the stream ends
// once that position reaches the end of the source, so n source frames
// give ceil(n·dstRate/srcRate) output frames.
type Resampler struct {
	src      Source
	srcRate  int
	dstRate  int
	step     float64 // source frames per output frame
	channels int

	filters []*biquad.Chain // per channel, nil unless downsampling

	hist  []float64 // interleaved frames [base, avail)
	base  int
	avail int
	out   int // output frames emitted
	eof   bool
	err   error
	rdBuf []float32
}

func NewResampler(src Source, dstRate int) (*Resampler, error) {
	if dstRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	r := &Resampler{
		src:      src,
		srcRate:  src.SampleRate(),
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		rdBuf:    make([]float32, 4096/channels*channels),
	}

	if dstRate < r.srcRate {
		c, err := dsp.Lowpass(antiAliasRatio*float64(dstRate), float64(r.srcRate), dsp.ButterworthQ)
		if err != nil {
			return nil, fmt.Errorf("anti-alias filter: %w", err)
		}
		// two Butterworth sections in series give a 4th-order response
		// with -6 dB at the cutoff; good enough ahead of cubic interpolation
		r.filters = make([]*biquad.Chain, channels)
		for i := range r.filters {
			r.filters[i] = biquad.NewChain([]biquad.Coefficients{c, c})
		}
	}

	return r, nil
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// fill reads one buffer from the source into the history.
func (r *Resampler) fill() error {
	n, err := r.src.ReadSamples(r.rdBuf)
	frames := n / r.channels

	for f := range frames {
		for c := range r.channels {
			v := float64(r.rdBuf[f*r.channels+c])
			if r.filters != nil {
				v = r.filters[c].ProcessSample(v)
			}
			r.hist = append(r.hist, v)
		}
	}
	r.avail += frames

	if errors.Is(err, io.EOF) {
		r.eof = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	return nil
}

// frame returns channel c of absolute frame i, clamped to the known range.
func (r *Resampler) frame(i, c int) float64 {
	i = max(r.base, min(i, r.avail-1))
	return r.hist[(i-r.base)*r.channels+c]
}

// trim drops history the interpolator can no longer reach.
func (r *Resampler) trim(keepFrom int) {
	drop := keepFrom - r.base
	if drop < 4096 {
		return
	}
	drop = min(drop, r.avail-r.base)
	n := copy(r.hist, r.hist[drop*r.channels:])
	r.hist = r.hist[:n]
	r.base += drop
}

// ReadSamples produces interleaved samples at the destination rate.
// dst length must be a multiple of Channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.err != nil {
		return 0, r.err
	}

	want := len(dst) / r.channels
	written := 0

	for written < want {
		pos := float64(r.out) * r.step
		i := int(math.Floor(pos))

		if !r.eof && i+2 >= r.avail {
			if err := r.fill(); err != nil {
				r.err = err
				return written * r.channels, err
			}
			continue
		}
		if pos >= float64(r.avail) {
			break
		}

		x := pos - float64(i)
		for c := range r.channels {
			v := utils.CubicInterpolate(r.frame(i-1, c), r.frame(i, c), r.frame(i+1, c), r.frame(i+2, c), x)
			dst[written*r.channels+c] = float32(v)
		}
		written++
		r.out++
	}

	r.trim(int(float64(r.out)*r.step) - 1)

	if r.eof && float64(r.out)*r.step >= float64(r.avail) {
		return written * r.channels, io.EOF
	}
	return written * r.channels, nil
}
