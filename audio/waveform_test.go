// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
	"time"
)

func TestNewWaveform_Copies(t *testing.T) {
	t.Parallel()

	in := []float64{0.1, 0.2, 0.3}
	w, err := NewWaveform(in, 8000)
	if err != nil {
		t.Fatalf("NewWaveform() error = %v", err)
	}

	in[0] = 9
	if w.At(0) != 0.1 {
		t.Errorf("At(0) = %v after mutating input, want 0.1", w.At(0))
	}

	out := w.Samples()
	out[1] = 9
	if w.At(1) != 0.2 {
		t.Errorf("At(1) = %v after mutating Samples(), want 0.2", w.At(1))
	}
}

func TestNewWaveform_InvalidRate(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{0, -8000} {
		if _, err := NewWaveform(nil, rate); !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("NewWaveform(rate %d) error = %v, want ErrInvalidSampleRate", rate, err)
		}
	}
}

func TestWaveform_Duration(t *testing.T) {
	t.Parallel()

	w, _ := NewWaveform(make([]float64, 12000), 8000)
	if got := w.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", got)
	}
	if (Waveform{}).Duration() != 0 {
		t.Error("zero Waveform should have zero duration")
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	w, err := Collect(newSineSource(8000, 1, 10000, 100))
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if w.Len() != 10000 || w.SampleRate() != 8000 {
		t.Errorf("Collect() = %d samples at %d Hz, want 10000 at 8000", w.Len(), w.SampleRate())
	}
}

func TestCollect_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Collect(newConstantSource(8000, 2, 10, 0)); !errors.Is(err, ErrNotMono) {
		t.Errorf("Collect(stereo) error = %v, want ErrNotMono", err)
	}
	if _, err := Collect(&failingSource{err: errBoom}); !errors.Is(err, errBoom) {
		t.Errorf("Collect(failing) error = %v, want errBoom", err)
	}
}

func TestWaveform_SourceRoundTrip(t *testing.T) {
	t.Parallel()

	w, _ := NewWaveform([]float64{0.5, -0.25, 0, 1}, 16000)
	got, err := Collect(w.Source())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	if got.SampleRate() != 16000 || got.Len() != 4 {
		t.Fatalf("round trip = %d samples at %d Hz", got.Len(), got.SampleRate())
	}
	for i := range 4 {
		if got.At(i) != w.At(i) {
			t.Errorf("sample %d = %v, want %v", i, got.At(i), w.At(i))
		}
	}
}
