// SPDX-License-Identifier: EPL-2.0

package grooverider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/compare"
	"github.com/ik5/grooverider/conditioner"
	"github.com/ik5/grooverider/config"
	"github.com/ik5/grooverider/formats/aiff"
	"github.com/ik5/grooverider/formats/mp3"
	"github.com/ik5/grooverider/formats/stl"
	"github.com/ik5/grooverider/formats/vorbis"
	"github.com/ik5/grooverider/formats/wav"
	"github.com/ik5/grooverider/groove"
	"github.com/ik5/grooverider/mesh"
	"github.com/ik5/grooverider/stylus"
)

// Pipeline runs the record cutting and playback stages with one set of
// settings.
type Pipeline struct {
	rpm        float64
	profile    groove.Profile
	condition  conditioner.Options
	resolution mesh.Resolution
	extraction stylus.Options

	registry *audio.Registry
	log      *zap.Logger
	progress ProgressFunc
}

// DefaultRegistry knows every decoder in formats/.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

// New validates cfg and returns a Pipeline for it.
func New(cfg config.Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	p := &Pipeline{
		rpm:        cfg.AudioProcessing.RPM,
		profile:    cfg.Profile(),
		condition:  cfg.Conditioning(),
		resolution: cfg.Resolution(),
		extraction: cfg.Extraction(),
		registry:   DefaultRegistry(),
		log:        zap.NewNop(),
		progress:   func(Stage, float64) {},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Profile returns the record geometry the pipeline cuts.
func (p *Pipeline) Profile() groove.Profile { return p.profile }

// RPM returns the playback speed.
func (p *Pipeline) RPM() float64 { return p.rpm }

func (p *Pipeline) stage(s Stage) mesh.ProgressFunc {
	return func(f float64) { p.progress(s, f) }
}

// ProcessAudio decodes r with the decoder registered for format and
// conditions it into the waveform to cut.
func (p *Pipeline) ProcessAudio(ctx context.Context, r io.Reader, format string) (audio.Waveform, error) {
	if err := ctx.Err(); err != nil {
		return audio.Waveform{}, err
	}

	start := time.Now()
	p.progress(StageDecode, 0)

	src, err := p.registry.Decode(r, format)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	p.log.Debug("decoding audio",
		zap.String("format", format),
		zap.Int("sample_rate", src.SampleRate()),
		zap.Int("channels", src.Channels()))

	w, err := conditioner.Process(src, p.condition)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	p.progress(StageDecode, 1)
	p.log.Info("audio processed",
		zap.Int("samples", w.Len()),
		zap.Int("sample_rate", w.SampleRate()),
		zap.Duration("length", w.Duration()),
		zap.Duration("took", time.Since(start)))

	return w, nil
}

// BuildRecordMesh cuts w into a disc. Audio longer than the track is a
// configuration error wrapping groove.ErrTrackTooShort.
func (p *Pipeline) BuildRecordMesh(ctx context.Context, w audio.Waveform) (*mesh.Mesh, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	m, err := mesh.Build(w, p.profile, p.rpm, p.resolution, p.stage(StageMesh))
	if err != nil {
		if errors.Is(err, groove.ErrTrackTooShort) || errors.Is(err, groove.ErrInvalidSampleRate) {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return nil, err
	}

	p.log.Info("mesh built",
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("faces", len(m.Faces)),
		zap.Float64("volume_mm3", m.SignedVolume()),
		zap.Duration("took", time.Since(start)))

	return m, nil
}

// SaveMesh writes m to path as binary STL.
func (p *Pipeline) SaveMesh(m *mesh.Mesh, path string) error {
	p.progress(StageSave, 0)
	if err := stl.Write(path, m); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	p.progress(StageSave, 1)

	p.log.Info("mesh saved", zap.String("path", path), zap.Int("faces", len(m.Faces)))
	return nil
}

// ExtractAudioFromMesh plays back the STL file at path. samples is the
// number of track points to read at the configured sample rate; 0 finds
// the end of the groove.
func (p *Pipeline) ExtractAudioFromMesh(ctx context.Context, path string, samples int) (audio.Waveform, error) {
	if err := ctx.Err(); err != nil {
		return audio.Waveform{}, err
	}

	m, err := stl.Read(path)
	if err != nil {
		return audio.Waveform{}, fmt.Errorf("%w: %s: %w", ErrMeshRead, path, err)
	}

	if err := ctx.Err(); err != nil {
		return audio.Waveform{}, err
	}

	start := time.Now()
	opts := p.extraction
	opts.Samples = samples

	w, err := stylus.Extract(m, p.profile, p.rpm, opts, p.stage(StageExtract))
	if err != nil {
		if errors.Is(err, stylus.ErrNoSurface) {
			return audio.Waveform{}, fmt.Errorf("%w: %s: %w", ErrMeshRead, path, err)
		}
		if errors.Is(err, groove.ErrTrackTooShort) {
			return audio.Waveform{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		return audio.Waveform{}, err
	}

	p.log.Info("audio extracted",
		zap.String("path", path),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int("samples", w.Len()),
		zap.Int("sample_rate", w.SampleRate()),
		zap.Duration("took", time.Since(start)))

	return w, nil
}

// CompareWaveforms scores how closely extracted follows original.
func (p *Pipeline) CompareWaveforms(original, extracted audio.Waveform) compare.Result {
	p.progress(StageCompare, 0)
	r := compare.Compare(original.Samples(), extracted.Samples())
	p.progress(StageCompare, 1)

	p.log.Info("waveforms compared",
		zap.Float64("score", r.Score),
		zap.Int("original", original.Len()),
		zap.Int("extracted", extracted.Len()))

	return r
}

// samplesFor converts the length of w to track points at the extraction
// rate.
func (p *Pipeline) samplesFor(w audio.Waveform) int {
	if w.Len() == 0 || w.SampleRate() == p.extraction.SampleRate {
		return w.Len()
	}
	return int(math.Round(float64(w.Len()) * float64(p.extraction.SampleRate) / float64(w.SampleRate())))
}
