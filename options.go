// SPDX-License-Identifier: EPL-2.0

package grooverider

import (
	"go.uber.org/zap"

	"github.com/ik5/grooverider/audio"
)

// Stage names a pipeline step in progress reports.
type Stage string

const (
	StageDecode  Stage = "decode"
	StageMesh    Stage = "mesh"
	StageSave    Stage = "save"
	StageExtract Stage = "extract"
	StageCompare Stage = "compare"
)

// ProgressFunc receives the completed share of a stage in [0, 1].
type ProgressFunc func(stage Stage, fraction float64)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger logs stage boundaries to l.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithProgress reports stage progress to fn.
func WithProgress(fn ProgressFunc) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.progress = fn
		}
	}
}

// WithRegistry replaces the decoders ProcessAudio can use.
func WithRegistry(r *audio.Registry) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.registry = r
		}
	}
}
