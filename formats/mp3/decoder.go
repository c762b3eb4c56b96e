// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/utils"
)

// go-mp3 always produces interleaved stereo, 16-bit little-endian.
const (
	channels       = 2
	bytesPerSample = 2
)

// pcmReader is the part of gomp3.Decoder the source needs; tests swap it.
type pcmReader interface {
	Read([]byte) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	buf        []byte
	carry      []byte // bytes of a sample split across reads
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) / channels * channels
	if want == 0 {
		return 0, nil
	}

	need := want*bytesPerSample - len(s.carry)
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf)
	data := append(s.carry, s.buf[:n]...)

	// only whole frames go out; the remainder waits for the next read
	whole := len(data) / (channels * bytesPerSample) * channels
	for i := range whole {
		dst[i] = float32(utils.Int16ToFloat(int16(binary.LittleEndian.Uint16(data[2*i:]))))
	}
	s.carry = append(s.carry[:0:0], data[whole*bytesPerSample:]...)

	if err == io.EOF {
		return whole, io.EOF
	}
	if err != nil {
		return whole, fmt.Errorf("%w", err)
	}
	return whole, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
	}, nil
}
