// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"

	"github.com/ik5/grooverider/internal/audiotest"
)

var errBoom = errors.New("boom")

func newMockSource(sampleRate, channels, totalSamples int, waveform func(sample, channel int) float32) *audiotest.MockSource {
	return audiotest.NewMockSource(sampleRate, channels, totalSamples, waveform)
}

func newConstantSource(sampleRate, channels, totalSamples int, value float32) *audiotest.MockSource {
	return audiotest.NewConstantSource(sampleRate, channels, totalSamples, value)
}

func newSineSource(sampleRate, channels, totalSamples int, frequency float64) *audiotest.MockSource {
	return audiotest.NewSineSource(sampleRate, channels, totalSamples, frequency)
}

// failingSource returns err on the first read.
type failingSource struct {
	err    error
	closed bool
}

func (f *failingSource) SampleRate() int                    { return 8000 }
func (f *failingSource) Channels() int                      { return 1 }
func (f *failingSource) ReadSamples([]float32) (int, error) { return 0, f.err }
func (f *failingSource) Close() error {
	f.closed = true
	return f.err
}

func readAll(t interface{ Fatalf(string, ...any) }, src Source, chunk int) []float32 {
	var out []float32
	buf := make([]float32, chunk)
	for range 1 << 20 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatalf("source never reached EOF")
	return nil
}
