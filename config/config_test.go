// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/grooverider/conditioner"
	"github.com/ik5/grooverider/dsp"
	"github.com/ik5/grooverider/groove"
	"github.com/ik5/grooverider/mesh"
	"github.com/ik5/grooverider/stylus"
)

func TestDefault_Validates(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	n, err := groove.Capacity(cfg.Profile(), cfg.AudioProcessing.RPM, cfg.AudioProcessing.SampleRate)
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	// a 12-inch side holds well over ten minutes at these settings
	if minutes := float64(n) / float64(cfg.AudioProcessing.SampleRate) / 60; minutes < 10 {
		t.Errorf("default side holds %.1f minutes", minutes)
	}
}

func TestDefault_FullChain(t *testing.T) {
	t.Parallel()

	cfg := Default()
	opts := cfg.Conditioning()

	if !opts.InverseRIAA {
		t.Error("default chain skips the inverse RIAA curve")
	}
	want := dsp.CompressorParams{ThresholdDB: -18, Ratio: 4, AttackMs: 5, ReleaseMs: 100}
	if opts.Compressor != want {
		t.Errorf("Compressor = %+v, want %+v", opts.Compressor, want)
	}
	if opts.HighpassHz != 20 || opts.LowpassHz != MaxAutoLowpassHz {
		t.Errorf("high/low-pass = %v/%v, want 20/%v", opts.HighpassHz, opts.LowpassHz, MaxAutoLowpassHz)
	}
}

func TestAudioProcessing_Lowpass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ap   AudioProcessing
		want float64
	}{
		{name: "capped at 44.1k", ap: AudioProcessing{SampleRate: 44100}, want: 16000},
		{name: "follows 32k", ap: AudioProcessing{SampleRate: 32000}, want: 14400},
		{name: "follows 8k", ap: AudioProcessing{SampleRate: 8000}, want: 3600},
		{name: "explicit", ap: AudioProcessing{SampleRate: 8000, LowpassHz: 3000}, want: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.ap.Lowpass(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Lowpass() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(mustRead(t, filepath.Join("testdata", "seven_inch.yaml")))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.AudioProcessing.RPM != 45 || cfg.AudioProcessing.SampleRate != 22050 {
		t.Errorf("audio_processing = %+v", cfg.AudioProcessing)
	}

	p := cfg.Profile()
	if p.OuterDiameter != 175 || p.LeadIn != 4 || p.Pitch != 0.25 {
		t.Errorf("profile = %+v", p)
	}
	// untouched fields keep their defaults
	if p.Thickness != 2 || p.HoleDiameter != 7.24 || p.GrooveWidth != 0.2 {
		t.Errorf("defaults lost: %+v", p)
	}

	opts := cfg.Conditioning()
	if !opts.InverseRIAA || opts.Compressor.Ratio != 3 || opts.Compressor.ThresholdDB != -18 {
		t.Errorf("conditioning = %+v", opts)
	}
	if opts.LeadSilence != 0.5 || opts.TrailSilence != 1.5 {
		t.Errorf("padding = %v, %v", opts.LeadSilence, opts.TrailSilence)
	}
}

func TestLoad_Path(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("printer_profile:\n  angular_steps: 360\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Resolution(); got != (mesh.Resolution{AngularSteps: 360, RadialStepsPerPitch: 4, BodyRingSpacing: 5}) {
		t.Errorf("Resolution() = %+v", got)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) = %v, want %v", err, os.ErrNotExist)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) = %v", err)
	}
	if *cfg != Default() {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"unknown field", "audio_processing:\n  sample_rat: 8000\n"},
		{"bad yaml", "record_dimensions: [\n"},
		{"wrong type", "audio_processing:\n  sample_rate: fast\n"},
		{"log level", "log_level: loud\n"},
		{"rpm", "audio_processing:\n  rpm: 0\n"},
		{"lowpass above nyquist", "audio_processing:\n  sample_rate: 8000\n  lowpass_hz: 4000\n"},
		{"pitch", "groove_geometry:\n  groove_pitch_mm: 0\n"},
		{"groove wider than pitch", "groove_geometry:\n  groove_width_mm: 0.5\n"},
		{"angular steps", "printer_profile:\n  angular_steps: 2\n"},
		{"stylus decimation", "printer_profile:\n  stylus_decimation: -1\n"},
		{"compressor ratio", "compressor:\n  enabled: true\n  ratio: 0.5\n"},
		{"compressor attack", "compressor:\n  attack_ms: 0\n"},
		{"padding", "padding:\n  lead_seconds: -1\n"},
		{"hole too big", "record_dimensions:\n  center_hole_diameter_mm: 400\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(tt.doc)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse() = %v, want %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestValidate_WrapsCause(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.GrooveGeometry.PitchMM = -1
	if err := cfg.Validate(); !errors.Is(err, groove.ErrInvalidProfile) {
		t.Errorf("Validate() = %v, want %v", err, groove.ErrInvalidProfile)
	}

	cfg = Default()
	cfg.AudioProcessing.SampleRate = 0
	if err := cfg.Validate(); !errors.Is(err, conditioner.ErrInvalidTargetRate) {
		t.Errorf("Validate() = %v, want %v", err, conditioner.ErrInvalidTargetRate)
	}

	cfg = Default()
	cfg.PrinterProfile.StylusRadiusMM = -0.1
	if err := cfg.Validate(); !errors.Is(err, stylus.ErrInvalidOptions) {
		t.Errorf("Validate() = %v, want %v", err, stylus.ErrInvalidOptions)
	}
}

// Environment tests mutate process state and cannot run in parallel.

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvRPM, "45")
	t.Setenv(EnvSampleRate, "32000")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AudioProcessing.RPM != 45 {
		t.Errorf("RPM = %v, want 45", cfg.AudioProcessing.RPM)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if got := cfg.Extraction(); got != (stylus.Options{SampleRate: 32000, Decimation: 1}) {
		t.Errorf("Extraction() = %+v", got)
	}
	if got := cfg.Conditioning().LowpassHz; math.Abs(got-14400) > 1e-9 {
		t.Errorf("low-pass = %v, want 14400", got)
	}
}

func TestLoad_EnvLowSampleRate(t *testing.T) {
	t.Setenv(EnvSampleRate, "8000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Conditioning().LowpassHz; math.Abs(got-3600) > 1e-9 {
		t.Errorf("low-pass = %v, want 3600", got)
	}
}

func TestLoad_EnvErrors(t *testing.T) {
	tests := []struct {
		key, val string
		want     error
	}{
		{EnvRPM, "fast", ErrInvalidEnv},
		{EnvSampleRate, "44.1k", ErrInvalidEnv},
		{EnvSampleRate, "-8000", ErrInvalidConfig},
		{EnvLogLevel, "verbose", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			if _, err := Load(""); !errors.Is(err, tt.want) {
				t.Errorf("Load() = %v, want %v", err, tt.want)
			}
		})
	}
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
