// SPDX-License-Identifier: EPL-2.0

package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ik5/grooverider/audio"
	"github.com/ik5/grooverider/groove"
	"github.com/ik5/grooverider/internal/spatial"
)

// Resolution controls how finely the top surface is sampled.
type Resolution struct {
	// AngularSteps is the number of radial columns around the disc.
	AngularSteps int
	// RadialStepsPerPitch is the number of band vertices per pitch in
	// each column.
	RadialStepsPerPitch int
	// BodyRingSpacing adds flat rings every so many millimeters outside
	// the groove band; 0 leaves only the hole and outer rings.
	BodyRingSpacing float64
}

func (r Resolution) Validate() error {
	switch {
	case r.AngularSteps < 3:
		return fmt.Errorf("%w: need at least 3 angular steps, got %d", ErrInvalidResolution, r.AngularSteps)
	case r.RadialStepsPerPitch < 1:
		return fmt.Errorf("%w: need at least 1 radial step per pitch, got %d", ErrInvalidResolution, r.RadialStepsPerPitch)
	case r.BodyRingSpacing < 0 || math.IsNaN(r.BodyRingSpacing):
		return fmt.Errorf("%w: body ring spacing %v", ErrInvalidResolution, r.BodyRingSpacing)
	}
	return nil
}

// ProgressFunc receives the completed share of a build in [0, 1].
type ProgressFunc func(fraction float64)

// progressEvery is how many columns pass between progress reports.
const progressEvery = 256

// Build cuts w into a record described by p at rpm and returns the closed
// solid. progress may be nil.
func Build(w audio.Waveform, p groove.Profile, rpm float64, res Resolution, progress ProgressFunc) (*Mesh, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	path, err := groove.Map(w, p, rpm)
	if err != nil {
		return nil, err
	}

	if progress == nil {
		progress = func(float64) {}
	}

	b := newBuilder(path, p, res)
	b.vertices(progress)
	b.faces(progress)
	progress(1)

	return &Mesh{Vertices: b.verts, Faces: b.tris}, nil
}

type builder struct {
	p     groove.Profile
	path  groove.Path
	steps int
	step  float64 // radial lattice spacing
	rings []float64

	bandLo, bandHi float64
	index          *spatial.Index

	verts    []r3.Vec
	tris     []Face
	colStart []int // first top vertex of each column, plus a final end marker
	bottom   int   // first bottom vertex
}

func newBuilder(path groove.Path, p groove.Profile, res Resolution) *builder {
	b := &builder{
		p:     p,
		path:  path,
		steps: res.AngularSteps,
		step:  p.Pitch / float64(res.RadialStepsPerPitch),
	}

	hole, outer := p.HoleRadius(), p.OuterRadius()

	if len(path) > 0 {
		half := p.GrooveWidth / 2
		b.bandLo = max(path[len(path)-1].R-half-b.step, hole+b.step/2)
		b.bandHi = min(p.StartRadius()+half+b.step, outer-b.step/2)

		pts := make([]spatial.Point, len(path))
		for i, pt := range path {
			x, y := pt.XY()
			pts[i] = spatial.Point{X: x, Y: y, Index: i}
		}
		b.index = spatial.New(pts)
	} else {
		// no groove: an empty band
		b.bandLo, b.bandHi = outer, outer
	}

	if res.BodyRingSpacing > 0 {
		gap := b.step / 4
		for r := hole + res.BodyRingSpacing; r < outer-gap; r += res.BodyRingSpacing {
			if r < b.bandLo-gap || r > b.bandHi+gap {
				b.rings = append(b.rings, r)
			}
		}
	}

	return b
}

// column returns the strictly increasing radii of column k.
func (b *builder) column(k int, dst []float64) []float64 {
	dst = append(dst[:0], b.p.HoleRadius())

	i := 0
	for ; i < len(b.rings) && b.rings[i] < b.bandLo; i++ {
		dst = append(dst, b.rings[i])
	}

	if b.index != nil {
		base := b.p.RadiusAt(float64(k) / float64(b.steps))
		lo, hi := b.bandLo+b.step/4, b.bandHi-b.step/4
		mLo := int(math.Ceil((lo - base) / b.step))
		mHi := int(math.Floor((hi - base) / b.step))
		for m := mLo; m <= mHi; m++ {
			dst = append(dst, base+float64(m)*b.step)
		}
	}

	for ; i < len(b.rings); i++ {
		if b.rings[i] > b.bandHi {
			dst = append(dst, b.rings[i])
		}
	}

	return append(dst, b.p.OuterRadius())
}

func (b *builder) angle(k int) (sin, cos float64) {
	return math.Sincos(2 * math.Pi * float64(k) / float64(b.steps))
}

// vertices lays out the top columns, then the two bottom rings.
func (b *builder) vertices(progress ProgressFunc) {
	b.colStart = make([]int, b.steps+1)
	var radii []float64

	for k := range b.steps {
		b.colStart[k] = len(b.verts)
		sin, cos := b.angle(k)

		radii = b.column(k, radii)
		for _, r := range radii {
			v := r3.Vec{X: r * cos, Y: r * sin}
			if r > b.bandLo && r < b.bandHi {
				v.Z = b.depthAt(v.X, v.Y)
			}
			b.verts = append(b.verts, v)
		}

		if k%progressEvery == 0 {
			progress(0.5 * float64(k) / float64(b.steps))
		}
	}
	b.colStart[b.steps] = len(b.verts)

	b.bottom = len(b.verts)
	z := -b.p.Thickness
	for _, r := range []float64{b.p.HoleRadius(), b.p.OuterRadius()} {
		for k := range b.steps {
			sin, cos := b.angle(k)
			b.verts = append(b.verts, r3.Vec{X: r * cos, Y: r * sin, Z: z})
		}
	}
}

// depthAt returns the displaced height of a top vertex at (x, y).
func (b *builder) depthAt(x, y float64) float64 {
	nearest, _, ok := b.index.Nearest(x, y)
	if !ok {
		return 0
	}

	d, zs := b.closestOnTrack(nearest.Index, x, y)
	a := 1 - 2*d/b.p.GrooveWidth
	if a <= 0 {
		return 0
	}
	return a * zs
}

// closestOnTrack measures the distance from (x, y) to the centerline
// segments around sample i and interpolates the groove floor there.
func (b *builder) closestOnTrack(i int, x, y float64) (dist, z float64) {
	px, py := b.path[i].XY()
	dist, z = math.Hypot(x-px, y-py), b.path[i].Z

	for _, j := range [2]int{i - 1, i + 1} {
		if j < 0 || j >= len(b.path) {
			continue
		}
		qx, qy := b.path[j].XY()

		ex, ey := qx-px, qy-py
		l2 := ex*ex + ey*ey
		if l2 == 0 {
			continue
		}
		t := max(0, min(1, ((x-px)*ex+(y-py)*ey)/l2))
		if d := math.Hypot(x-(px+t*ex), y-(py+t*ey)); d < dist {
			dist = d
			z = b.path[i].Z + t*(b.path[j].Z-b.path[i].Z)
		}
	}

	return dist, z
}

func (b *builder) faces(progress ProgressFunc) {
	n := b.steps
	b.tris = make([]Face, 0, 2*len(b.verts)+4*n)

	for k := range n {
		next := (k + 1) % n
		b.zipper(k, next)

		if k%progressEvery == 0 {
			progress(0.5 + 0.5*float64(k)/float64(n))
		}
	}

	holeB, outerB := b.bottom, b.bottom+n
	for k := range n {
		next := (k + 1) % n

		tHole0, tHole1 := b.colStart[k], b.colStart[next]
		tOuter0, tOuter1 := b.colStart[k+1]-1, b.colStart[next+1]-1
		bHole0, bHole1 := holeB+k, holeB+next
		bOuter0, bOuter1 := outerB+k, outerB+next

		b.tris = append(b.tris,
			// bottom, facing -z
			Face{bHole0, bOuter1, bOuter0},
			Face{bHole0, bHole1, bOuter1},
			// outer wall, facing away from the axis
			Face{tOuter0, bOuter0, bOuter1},
			Face{tOuter0, bOuter1, tOuter1},
			// hole wall, facing the axis
			Face{tHole0, bHole1, bHole0},
			Face{tHole0, tHole1, bHole1},
		)
	}
}

// zipper stitches column k to column next with triangles facing +z,
// always advancing along the column whose next radius is smaller.
func (b *builder) zipper(k, next int) {
	a0, aEnd := b.colStart[k], b.colStart[k+1]-1
	b0, bEnd := b.colStart[next], b.colStart[next+1]-1

	radius := func(i int) float64 { return math.Hypot(b.verts[i].X, b.verts[i].Y) }

	i, j := a0, b0
	for i < aEnd || j < bEnd {
		advanceA := j == bEnd || (i < aEnd && radius(i+1) < radius(j+1))
		if advanceA {
			b.tris = append(b.tris, Face{i, i + 1, j})
			i++
		} else {
			b.tris = append(b.tris, Face{i, j + 1, j})
			j++
		}
	}
}
