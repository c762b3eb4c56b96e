// SPDX-License-Identifier: EPL-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ik5/grooverider/conditioner"
	"github.com/ik5/grooverider/dsp"
	"github.com/ik5/grooverider/groove"
	"github.com/ik5/grooverider/mesh"
	"github.com/ik5/grooverider/stylus"
)

// Environment variables read by Load.
const (
	EnvRPM        = "GROOVERIDER_RPM"
	EnvSampleRate = "GROOVERIDER_SAMPLE_RATE"
	EnvLogLevel   = "GROOVERIDER_LOG_LEVEL"
)

// A zero lowpass_hz follows the sample rate: AutoLowpassRatio of the rate,
// capped at MaxAutoLowpassHz.
const (
	MaxAutoLowpassHz = 16000.0
	AutoLowpassRatio = 0.45
)

// Config is the settings document.
type Config struct {
	LogLevel         string           `yaml:"log_level"`
	AudioProcessing  AudioProcessing  `yaml:"audio_processing"`
	GrooveGeometry   GrooveGeometry   `yaml:"groove_geometry"`
	RecordDimensions RecordDimensions `yaml:"record_dimensions"`
	PrinterProfile   PrinterProfile   `yaml:"printer_profile"`
	Compressor       Compressor       `yaml:"compressor"`
	Padding          Padding          `yaml:"padding"`
}

// AudioProcessing covers conditioning and playback speed.
type AudioProcessing struct {
	SampleRate  int     `yaml:"sample_rate"`  // Hz of the waveform cut into the groove
	RPM         float64 `yaml:"rpm"`          // turntable speed
	HighpassHz  float64 `yaml:"highpass_hz"`  // 0 disables
	LowpassHz   float64 `yaml:"lowpass_hz"`   // 0 follows the sample rate
	InverseRIAA bool    `yaml:"inverse_riaa"` // apply the playback curve before cutting
}

type GrooveGeometry struct {
	PitchMM        float64 `yaml:"groove_pitch_mm"`
	WidthMM        float64 `yaml:"groove_width_mm"`
	DepthMM        float64 `yaml:"groove_depth_mm"`
	AmplitudeScale float64 `yaml:"amplitude_scale"`
}

type RecordDimensions struct {
	DiameterMM     float64 `yaml:"record_diameter_mm"`
	ThicknessMM    float64 `yaml:"thickness_mm"`
	HoleDiameterMM float64 `yaml:"center_hole_diameter_mm"`
	LeadInMM       float64 `yaml:"lead_in_groove_mm"`
	ClearanceMM    float64 `yaml:"inner_clearance_mm"`
}

// PrinterProfile sets how finely the disc is meshed and read back.
type PrinterProfile struct {
	AngularSteps        int     `yaml:"angular_steps"`
	RadialStepsPerPitch int     `yaml:"radial_steps_per_pitch"`
	BodyRingSpacingMM   float64 `yaml:"body_ring_spacing_mm"`
	StylusRadiusMM      float64 `yaml:"stylus_radius_mm"` // 0 means half the pitch
	StylusDecimation    int     `yaml:"stylus_decimation"`
}

type Compressor struct {
	Enabled     bool    `yaml:"enabled"`
	ThresholdDB float64 `yaml:"threshold_db"`
	Ratio       float64 `yaml:"ratio"`
	AttackMs    float64 `yaml:"attack_ms"`
	ReleaseMs   float64 `yaml:"release_ms"`
}

// Padding adds silence around the program, in seconds.
type Padding struct {
	LeadSeconds  float64 `yaml:"lead_seconds"`
	TrailSeconds float64 `yaml:"trail_seconds"`
}

// Default returns the settings for a 12-inch record at 33⅓ rpm.
func Default() Config {
	return Config{
		LogLevel: "info",
		AudioProcessing: AudioProcessing{
			SampleRate:  44100,
			RPM:         100.0 / 3,
			HighpassHz:  20,
			InverseRIAA: true,
		},
		GrooveGeometry: GrooveGeometry{
			PitchMM:        0.3,
			WidthMM:        0.2,
			DepthMM:        0.1,
			AmplitudeScale: 0.5,
		},
		RecordDimensions: RecordDimensions{
			DiameterMM:     300,
			ThicknessMM:    2,
			HoleDiameterMM: 7.24,
			LeadInMM:       5,
			ClearanceMM:    2,
		},
		PrinterProfile: PrinterProfile{
			AngularSteps:        7200,
			RadialStepsPerPitch: 4,
			BodyRingSpacingMM:   5,
			StylusDecimation:    1,
		},
		Compressor: Compressor{
			Enabled:     true,
			ThresholdDB: -18,
			Ratio:       4,
			AttackMs:    5,
			ReleaseMs:   100,
		},
		Padding: Padding{
			LeadSeconds:  0.5,
			TrailSeconds: 0.5,
		},
	}
}

// Load reads the YAML file at path over the defaults. An empty path uses
// the defaults alone. Environment overrides apply in both cases, and the
// result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Parse reads a YAML document over the defaults without consulting the
// environment.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if val, ok := os.LookupEnv(EnvRPM); ok {
		rpm, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidEnv, EnvRPM, err)
		}
		c.AudioProcessing.RPM = rpm
	}

	if val, ok := os.LookupEnv(EnvSampleRate); ok {
		rate, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidEnv, EnvSampleRate, err)
		}
		c.AudioProcessing.SampleRate = rate
	}

	if val, ok := os.LookupEnv(EnvLogLevel); ok {
		c.LogLevel = val
	}

	return nil
}

// Validate checks every group and the way they combine.
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalidConfig, err)
	}

	ap := c.AudioProcessing
	if ap.RPM <= 0 {
		return fmt.Errorf("%w: audio_processing.rpm must be positive, got %v", ErrInvalidConfig, ap.RPM)
	}

	if c.Compressor.Enabled {
		if err := c.Compressor.params().Validate(); err != nil {
			return fmt.Errorf("%w: compressor: %w", ErrInvalidConfig, err)
		}
	}

	if c.Padding.LeadSeconds < 0 || c.Padding.TrailSeconds < 0 {
		return fmt.Errorf("%w: padding must not be negative", ErrInvalidConfig)
	}

	checks := []struct {
		group string
		err   error
	}{
		{"audio_processing", c.Conditioning().Validate()},
		{"record_dimensions/groove_geometry", c.Profile().Validate()},
		{"printer_profile", c.Resolution().Validate()},
		{"printer_profile", c.Extraction().Validate()},
	}
	for _, ch := range checks {
		if ch.err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, ch.group, ch.err)
		}
	}

	return nil
}

// Profile returns the record geometry.
func (c *Config) Profile() groove.Profile {
	return groove.Profile{
		OuterDiameter:  c.RecordDimensions.DiameterMM,
		Thickness:      c.RecordDimensions.ThicknessMM,
		HoleDiameter:   c.RecordDimensions.HoleDiameterMM,
		LeadIn:         c.RecordDimensions.LeadInMM,
		Clearance:      c.RecordDimensions.ClearanceMM,
		Pitch:          c.GrooveGeometry.PitchMM,
		GrooveWidth:    c.GrooveGeometry.WidthMM,
		GrooveDepth:    c.GrooveGeometry.DepthMM,
		AmplitudeScale: c.GrooveGeometry.AmplitudeScale,
	}
}

// Conditioning returns the signal chain settings. A disabled compressor
// leaves the ratio at zero.
func (c *Config) Conditioning() conditioner.Options {
	opts := conditioner.Options{
		TargetRate:   c.AudioProcessing.SampleRate,
		HighpassHz:   c.AudioProcessing.HighpassHz,
		LowpassHz:    c.AudioProcessing.Lowpass(),
		InverseRIAA:  c.AudioProcessing.InverseRIAA,
		LeadSilence:  c.Padding.LeadSeconds,
		TrailSilence: c.Padding.TrailSeconds,
	}
	if c.Compressor.Enabled {
		opts.Compressor = c.Compressor.params()
	}
	return opts
}

// Lowpass is the effective low-pass cutoff in Hz.
func (a AudioProcessing) Lowpass() float64 {
	if a.LowpassHz != 0 {
		return a.LowpassHz
	}
	return min(MaxAutoLowpassHz, AutoLowpassRatio*float64(a.SampleRate))
}

func (c Compressor) params() dsp.CompressorParams {
	return dsp.CompressorParams{
		ThresholdDB: c.ThresholdDB,
		Ratio:       c.Ratio,
		AttackMs:    c.AttackMs,
		ReleaseMs:   c.ReleaseMs,
	}
}

func (c *Config) Resolution() mesh.Resolution {
	return mesh.Resolution{
		AngularSteps:        c.PrinterProfile.AngularSteps,
		RadialStepsPerPitch: c.PrinterProfile.RadialStepsPerPitch,
		BodyRingSpacing:     c.PrinterProfile.BodyRingSpacingMM,
	}
}

// Extraction returns the stylus settings. The sample count is left for
// the caller.
func (c *Config) Extraction() stylus.Options {
	return stylus.Options{
		SampleRate:   c.AudioProcessing.SampleRate,
		Decimation:   c.PrinterProfile.StylusDecimation,
		SearchRadius: c.PrinterProfile.StylusRadiusMM,
	}
}
