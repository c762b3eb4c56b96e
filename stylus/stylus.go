// SPDX-License-Identifier: EPL-2.0

package stylus

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/groove"
	"github.com/ik5/grooverider/internal/spatial"
	"github.com/ik5/grooverider/mesh"
)

const (
	// levelSlack admits vertices stored as float32 just below the deepest
	// groove level.
	levelSlack = 1e-3
	// cutDepth is how far below the top surface a vertex must be to count
	// as part of the groove.
	cutDepth = 1e-4
	// progressEvery is how many points pass between progress reports.
	progressEvery = 1024
)

// Options controls where the stylus samples the track.
type Options struct {
	// SampleRate places track points the way groove.Map placed samples.
	SampleRate int
	// Decimation visits every n-th track point; 0 means 1. The output rate
	// is SampleRate/Decimation.
	Decimation int
	// Samples is the number of track points to cover; 0 detects the end of
	// the cut groove.
	Samples int
	// SearchRadius around each point, in mm; 0 means half the pitch.
	SearchRadius float64
}

func (o Options) Validate() error {
	switch {
	case o.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidOptions, o.SampleRate)
	case o.Decimation < 0:
		return fmt.Errorf("%w: decimation %d", ErrInvalidOptions, o.Decimation)
	case o.Decimation > o.SampleRate:
		return fmt.Errorf("%w: decimation %d leaves no output rate", ErrInvalidOptions, o.Decimation)
	case o.Samples < 0:
		return fmt.Errorf("%w: samples %d", ErrInvalidOptions, o.Samples)
	case o.SearchRadius < 0 || math.IsNaN(o.SearchRadius) || math.IsInf(o.SearchRadius, 0):
		return fmt.Errorf("%w: search radius %v", ErrInvalidOptions, o.SearchRadius)
	}
	return nil
}

func (o Options) decimation() int {
	return max(1, o.Decimation)
}

// OutputRate is the sample rate of the extracted waveform.
func (o Options) OutputRate() int {
	return max(1, int(math.Round(float64(o.SampleRate)/float64(o.decimation()))))
}

// surface is the part of a mesh the stylus can touch.
type surface struct {
	index *spatial.Index
	z     []float64
}

func newSurface(m *mesh.Mesh, p groove.Profile) (*surface, error) {
	floor := -p.MaxDepth() - levelSlack

	seen := make(map[r3.Vec]struct{}, len(m.Vertices))
	s := &surface{}
	var pts []spatial.Point

	for _, v := range m.Vertices {
		if v.Z < floor {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}

		pts = append(pts, spatial.Point{X: v.X, Y: v.Y, Index: len(s.z)})
		s.z = append(s.z, v.Z)
	}

	if len(pts) == 0 {
		return nil, ErrNoSurface
	}
	s.index = spatial.New(pts)
	return s, nil
}

// deepest returns the lowest z within r of (x, y).
func (s *surface) deepest(x, y, r float64) (z float64, ok bool) {
	z = math.Inf(1)
	for _, pt := range s.index.Within(x, y, r) {
		z = math.Min(z, s.z[pt.Index])
		ok = true
	}
	return z, ok
}

// cut reports whether the vertex nearest to (x, y) lies below the top
// surface.
func (s *surface) cut(x, y float64) bool {
	pt, _, ok := s.index.Nearest(x, y)
	return ok && s.z[pt.Index] < -cutDepth
}

// TrackLength returns how many track points at rate are cut into m,
// searching between zero and the track capacity. It assumes the groove is
// cut continuously from the start of the track.
func TrackLength(m *mesh.Mesh, p groove.Profile, rpm float64, rate int) (int, error) {
	if m == nil {
		return 0, mesh.ErrEmptyMesh
	}
	capacity, err := groove.Capacity(p, rpm, rate)
	if err != nil {
		return 0, err
	}

	s, err := newSurface(m, p)
	if err != nil {
		return 0, err
	}
	return s.trackLength(p, rpm, rate, capacity), nil
}

func (s *surface) trackLength(p groove.Profile, rpm float64, rate, capacity int) int {
	return sort.Search(capacity, func(i int) bool {
		x, y := groove.PointAt(p, rpm, rate, i).XY()
		return !s.cut(x, y)
	})
}

// Extract plays back m along the track of p at rpm. progress may be nil.
func Extract(m *mesh.Mesh, p groove.Profile, rpm float64, opts Options, progress mesh.ProgressFunc) (audio.Waveform, error) {
	if m == nil {
		return audio.Waveform{}, mesh.ErrEmptyMesh
	}
	if err := opts.Validate(); err != nil {
		return audio.Waveform{}, err
	}
	capacity, err := groove.Capacity(p, rpm, opts.SampleRate)
	if err != nil {
		return audio.Waveform{}, err
	}

	if progress == nil {
		progress = func(float64) {}
	}

	s, err := newSurface(m, p)
	if err != nil {
		return audio.Waveform{}, err
	}

	n := opts.Samples
	if n == 0 {
		n = s.trackLength(p, rpm, opts.SampleRate, capacity)
	}

	path, err := groove.Spiral(p, rpm, opts.SampleRate, n)
	if err != nil {
		return audio.Waveform{}, err
	}

	step := opts.decimation()
	out := make([]float64, 0, (len(path)+step-1)/step)

	radius := opts.SearchRadius
	if radius == 0 {
		radius = p.Pitch / 2
	}
	flat := p.ModulationRange() == 0

	for i := 0; i < len(path); i += step {
		var amp float64
		if !flat {
			x, y := path[i].XY()
			if z, ok := s.deepest(x, y, radius); ok {
				amp = p.Amplitude(z)
			}
		}
		out = append(out, amp)

		if len(out)%progressEvery == 0 {
			progress(float64(i) / float64(len(path)))
		}
	}
	progress(1)

	return audio.NewWaveform(out, opts.OutputRate())
}
