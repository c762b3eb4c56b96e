// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Padder surrounds src with runs of silent frames.
type Padder struct {
	src      Source
	head     int // frames of leading silence left
	tail     int // frames of trailing silence left
	channels int
	srcDone  bool
}

// NewPadder emits head frames of silence, then src, then tail frames of
// silence. Negative counts are treated as zero.
func NewPadder(src Source, head, tail int) *Padder {
	return &Padder{
		src:      src,
		head:     max(head, 0),
		tail:     max(tail, 0),
		channels: src.Channels(),
	}
}

// FramesFor converts a duration in seconds into a frame count at sampleRate.
func FramesFor(seconds float64, sampleRate int) int {
	if seconds <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(seconds*float64(sampleRate) + 0.5)
}

func (p *Padder) SampleRate() int { return p.src.SampleRate() }
func (p *Padder) Channels() int   { return p.channels }

func (p *Padder) Close() error {
	if err := p.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (p *Padder) ReadSamples(dst []float32) (int, error) {
	if p.channels <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannels, p.channels)
	}
	if len(dst)%p.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		switch {
		case p.head > 0:
			k := min(p.head*p.channels, len(dst)-written)
			clear(dst[written : written+k])
			written += k
			p.head -= k / p.channels

		case !p.srcDone:
			n, err := p.src.ReadSamples(dst[written:])
			written += n
			if errors.Is(err, io.EOF) {
				p.srcDone = true
				continue
			}
			if err != nil {
				return written, fmt.Errorf("%w", err)
			}
			if n == 0 {
				return written, nil
			}

		case p.tail > 0:
			k := min(p.tail*p.channels, len(dst)-written)
			clear(dst[written : written+k])
			written += k
			p.tail -= k / p.channels

		default:
			return written, io.EOF
		}
	}

	if p.srcDone && p.head == 0 && p.tail == 0 {
		return written, io.EOF
	}
	return written, nil
}
