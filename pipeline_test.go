// SPDX-License-Identifier: EPL-2.0

package grooverider

import (
	"bytes"
	"context"
	"errors"
	"math"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/config"
	"github.com/ik5/grooverider/formats/stl"
	"github.com/ik5/grooverider/formats/wav"
	"github.com/ik5/grooverider/groove"
)

// testConfig describes a small, coarse disc that builds quickly.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.AudioProcessing.SampleRate = 8000
	cfg.AudioProcessing.LowpassHz = 3000
	cfg.RecordDimensions = config.RecordDimensions{
		DiameterMM:     40,
		ThicknessMM:    2,
		HoleDiameterMM: 7.24,
		LeadInMM:       2,
		ClearanceMM:    2,
	}
	cfg.GrooveGeometry = config.GrooveGeometry{
		PitchMM:        0.2,
		WidthMM:        0.16,
		DepthMM:        0.1,
		AmplitudeScale: 0.5,
	}
	cfg.PrinterProfile = config.PrinterProfile{
		AngularSteps:        2048,
		RadialStepsPerPitch: 4,
		StylusDecimation:    1,
	}
	cfg.Padding = config.Padding{LeadSeconds: 0.05}
	return cfg
}

func toneWAV(t *testing.T, rate int, seconds, hz float64) []byte {
	t.Helper()

	s := make([]float64, int(seconds*float64(rate)))
	for i := range s {
		s[i] = 0.7 * math.Sin(2*math.Pi*hz*float64(i)/float64(rate))
	}
	return samplesWAV(t, rate, s)
}

func samplesWAV(t *testing.T, rate int, s []float64) []byte {
	t.Helper()

	w, err := audio.NewWaveform(s, rate)
	if err != nil {
		t.Fatal(err)
	}
	data, err := wav.Encode(w)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func newPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()

	p, err := New(testConfig(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.GrooveGeometry.PitchMM = 0

	_, err := New(cfg)
	if !errors.Is(err, ErrConfiguration) || !errors.Is(err, groove.ErrInvalidProfile) {
		t.Errorf("New() = %v, want %v wrapping %v", err, ErrConfiguration, groove.ErrInvalidProfile)
	}
}

func TestPipeline_RoundTrip(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	seen := make(map[Stage]float64)
	core, logs := observer.New(zap.InfoLevel)

	p := newPipeline(t,
		WithLogger(zap.New(core)),
		WithProgress(func(s Stage, f float64) {
			mu.Lock()
			defer mu.Unlock()
			seen[s] = math.Max(seen[s], f)
		}),
	)
	ctx := context.Background()

	// resampled from 16 kHz to the configured 8 kHz
	w, err := p.ProcessAudio(ctx, bytes.NewReader(toneWAV(t, 16000, 0.5, 25)), "wav")
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	if w.SampleRate() != 8000 {
		t.Fatalf("rate = %d, want 8000", w.SampleRate())
	}
	if want := 4400; w.Len() < want-2 || w.Len() > want+2 {
		t.Errorf("len = %d, want about %d", w.Len(), want)
	}

	m, err := p.BuildRecordMesh(ctx, w)
	if err != nil {
		t.Fatalf("BuildRecordMesh: %v", err)
	}
	if err := m.Check(); err != nil {
		t.Fatalf("mesh check: %v", err)
	}

	path := filepath.Join(t.TempDir(), "record.stl")
	if err := p.SaveMesh(m, path); err != nil {
		t.Fatalf("SaveMesh: %v", err)
	}

	res, err := p.Validate(ctx, path, w)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if res.Score < 0.9 {
		t.Errorf("score = %.3f, want at least 0.9", res.Score)
	}
	if len(res.Original) != w.Len() || len(res.Extracted) != w.Len() {
		t.Errorf("aligned lengths = %d, %d, want %d", len(res.Original), len(res.Extracted), w.Len())
	}
	for name, data := range map[string][]byte{"original": res.OriginalWAV, "extracted": res.ExtractedWAV} {
		if len(data) != 44+2*w.Len() || !bytes.HasPrefix(data, []byte("RIFF")) {
			t.Errorf("%s WAV: %d bytes", name, len(data))
		}
	}
	if len(res.Plot.Original.Spectrum) == 0 || len(res.Plot.Extracted.Max) == 0 {
		t.Error("plot data missing")
	}

	for _, s := range []Stage{StageDecode, StageMesh, StageSave, StageExtract, StageCompare} {
		if seen[s] != 1 {
			t.Errorf("stage %s reached %v, want 1", s, seen[s])
		}
	}
	for _, msg := range []string{"audio processed", "mesh built", "mesh saved", "audio extracted", "waveforms compared"} {
		if logs.FilterMessage(msg).Len() != 1 {
			t.Errorf("log %q written %d times, want once", msg, logs.FilterMessage(msg).Len())
		}
	}
}

func TestPipeline_SilenceRoundTrip(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	ctx := context.Background()

	w, err := p.ProcessAudio(ctx, bytes.NewReader(samplesWAV(t, 8000, make([]float64, 2000))), "wav")
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	for i := range w.Len() {
		if w.At(i) != 0 {
			t.Fatalf("conditioned sample %d = %v, want 0", i, w.At(i))
		}
	}

	m, err := p.BuildRecordMesh(ctx, w)
	if err != nil {
		t.Fatalf("BuildRecordMesh: %v", err)
	}
	path := filepath.Join(t.TempDir(), "silence.stl")
	if err := p.SaveMesh(m, path); err != nil {
		t.Fatalf("SaveMesh: %v", err)
	}

	res, err := p.Validate(ctx, path, w)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(res.Extracted) != w.Len() {
		t.Fatalf("extracted %d samples, want %d", len(res.Extracted), w.Len())
	}
	for i, v := range res.Extracted {
		if math.Abs(v) > 1e-3 {
			t.Fatalf("extracted sample %d = %v, want ≈0", i, v)
		}
	}
	// a constant original has no correlation to speak of
	if res.Score != 0 {
		t.Errorf("score = %v, want 0", res.Score)
	}
}

func TestPipeline_DefaultConditioning(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	if !cfg.AudioProcessing.InverseRIAA || !cfg.Compressor.Enabled {
		t.Fatalf("defaults skip a stage: inverse RIAA %v, compressor %v", cfg.AudioProcessing.InverseRIAA, cfg.Compressor.Enabled)
	}

	s := make([]float64, 4000)
	for i := range s {
		x := float64(i) / 8000
		s[i] = 0.4*math.Sin(2*math.Pi*100*x) + 0.3*math.Sin(2*math.Pi*1500*x)
	}
	data := samplesWAV(t, 8000, s)
	ctx := context.Background()

	run := func(t *testing.T, cfg config.Config) []float64 {
		t.Helper()

		p, err := New(cfg)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		w, err := p.ProcessAudio(ctx, bytes.NewReader(data), "wav")
		if err != nil {
			t.Fatalf("ProcessAudio: %v", err)
		}
		return w.Samples()
	}
	full := run(t, cfg)

	tests := []struct {
		name    string
		disable func(*config.Config)
	}{
		{name: "inverse RIAA", disable: func(c *config.Config) { c.AudioProcessing.InverseRIAA = false }},
		{name: "compressor", disable: func(c *config.Config) { c.Compressor.Enabled = false }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := testConfig()
			tt.disable(&c)
			without := run(t, c)

			if len(without) != len(full) {
				t.Fatalf("len = %d, want %d", len(without), len(full))
			}
			var diff float64
			for i := range full {
				diff = math.Max(diff, math.Abs(full[i]-without[i]))
			}
			if diff < 0.05 {
				t.Errorf("disabling %s changed the output by at most %v; the default chain does not apply it", tt.name, diff)
			}
		})
	}
}

func TestPipeline_ExtractDetectsLength(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	ctx := context.Background()

	w, err := p.ProcessAudio(ctx, bytes.NewReader(toneWAV(t, 8000, 0.25, 40)), "WAV")
	if err != nil {
		t.Fatalf("ProcessAudio: %v", err)
	}
	m, err := p.BuildRecordMesh(ctx, w)
	if err != nil {
		t.Fatalf("BuildRecordMesh: %v", err)
	}

	path := filepath.Join(t.TempDir(), stl.FileName(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	if err := p.SaveMesh(m, path); err != nil {
		t.Fatalf("SaveMesh: %v", err)
	}

	got, err := p.ExtractAudioFromMesh(ctx, path, 0)
	if err != nil {
		t.Fatalf("ExtractAudioFromMesh: %v", err)
	}
	if got.Len() < w.Len() || got.Len() > w.Len()+30 {
		t.Errorf("detected %d samples, cut %d", got.Len(), w.Len())
	}
}

func TestPipeline_Errors(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	ctx := context.Background()

	if _, err := p.ProcessAudio(ctx, bytes.NewReader(nil), "flac"); !errors.Is(err, ErrDecode) || !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("unknown format: %v", err)
	}

	if _, err := p.ProcessAudio(ctx, bytes.NewReader([]byte("definitely not audio data at all....")), "wav"); !errors.Is(err, ErrDecode) || !errors.Is(err, wav.ErrNotWavFile) {
		t.Errorf("corrupt WAV: %v", err)
	}

	if _, err := p.ExtractAudioFromMesh(ctx, filepath.Join(t.TempDir(), "missing.stl"), 0); !errors.Is(err, ErrMeshRead) {
		t.Errorf("missing STL: %v", err)
	}

	n, err := groove.Capacity(p.Profile(), p.RPM(), 8000)
	if err != nil {
		t.Fatal(err)
	}
	long, err := audio.NewWaveform(make([]float64, n+1), 8000)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.BuildRecordMesh(ctx, long); !errors.Is(err, ErrConfiguration) || !errors.Is(err, groove.ErrTrackTooShort) {
		t.Errorf("audio too long: %v", err)
	}
}

func TestPipeline_Canceled(t *testing.T) {
	t.Parallel()

	p := newPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.ProcessAudio(ctx, bytes.NewReader(toneWAV(t, 8000, 0.1, 100)), "wav"); !errors.Is(err, context.Canceled) {
		t.Errorf("ProcessAudio() = %v, want %v", err, context.Canceled)
	}
	if _, err := p.BuildRecordMesh(ctx, audio.Waveform{}); !errors.Is(err, context.Canceled) {
		t.Errorf("BuildRecordMesh() = %v, want %v", err, context.Canceled)
	}
	if _, err := p.Validate(ctx, "unused.stl", audio.Waveform{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Validate() = %v, want %v", err, context.Canceled)
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()
	for _, f := range []string{"wav", "mp3", "ogg", "oga", "aiff", "aif"} {
		if _, ok := reg.Get(f); !ok {
			t.Errorf("no decoder for %q", f)
		}
	}
}
