// SPDX-License-Identifier: EPL-2.0

package grooverider

import (
	"context"
	"fmt"

	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/compare"
	"github.com/ik5/grooverider/formats/wav"
)

// ValidationResult is the outcome of playing a saved record back against
// the waveform it was cut from.
type ValidationResult struct {
	Score float64

	// Original and Extracted are aligned to the same length.
	Original  []float64
	Extracted []float64
	Plot      compare.Plot

	// OriginalWAV and ExtractedWAV are mono 16-bit WAV files at the
	// original sample rate, ready for playback. The extracted signal is
	// stretched to the original length.
	OriginalWAV  []byte
	ExtractedWAV []byte
}

// Validate reads the STL file at path, plays it back over as many samples
// as original holds and compares the two.
func (p *Pipeline) Validate(ctx context.Context, path string, original audio.Waveform) (*ValidationResult, error) {
	extracted, err := p.ExtractAudioFromMesh(ctx, path, p.samplesFor(original))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := p.CompareWaveforms(original, extracted)

	res := &ValidationResult{
		Score:     r.Score,
		Original:  r.Original,
		Extracted: r.Extracted,
		Plot:      r.Plot,
	}

	if res.OriginalWAV, err = wav.Encode(original); err != nil {
		return nil, fmt.Errorf("encoding original: %w", err)
	}

	stretched, err := audio.NewWaveform(compare.Resample(extracted.Samples(), original.Len()), original.SampleRate())
	if err != nil {
		return nil, fmt.Errorf("encoding extracted: %w", err)
	}
	if res.ExtractedWAV, err = wav.Encode(stretched); err != nil {
		return nil, fmt.Errorf("encoding extracted: %w", err)
	}

	return res, nil
}
