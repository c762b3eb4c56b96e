// SPDX-License-Identifier: EPL-2.0

package mesh

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Face indexes three vertices in counter-clockwise order seen from
// outside the solid.
type Face [3]int

// Mesh is an indexed triangle mesh in millimeters.
type Mesh struct {
	Vertices []r3.Vec
	Faces    []Face
}

func (m *Mesh) corners(f Face) (a, b, c r3.Vec) {
	return m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
}

// Normal returns the unit normal of f, or the zero vector for a
// degenerate face.
func (m *Mesh) Normal(f Face) r3.Vec {
	a, b, c := m.corners(f)
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	if l := r3.Norm(n); l > 0 {
		return r3.Scale(1/l, n)
	}
	return r3.Vec{}
}

// Area returns the area of f.
func (m *Mesh) Area(f Face) float64 {
	a, b, c := m.corners(f)
	return r3.Norm(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) / 2
}

// SignedVolume sums the signed tetrahedra spanned by every face and the
// origin. It is positive for a closed mesh with outward winding.
func (m *Mesh) SignedVolume() float64 {
	var v float64
	for _, f := range m.Faces {
		a, b, c := m.corners(f)
		v += r3.Dot(a, r3.Cross(b, c))
	}
	return v / 6
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (m *Mesh) Bounds() (lo, hi r3.Vec) {
	if len(m.Vertices) == 0 {
		return r3.Vec{}, r3.Vec{}
	}

	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	return lo, hi
}

// minFaceArea is the smallest face area in mm² Check accepts.
const minFaceArea = 1e-12

// Check verifies that m is a closed, consistently wound solid: every face
// references existing distinct vertices and has non-zero area, every
// directed edge occurs once with its reverse also present, and the signed
// volume is positive.
func (m *Mesh) Check() error {
	if len(m.Faces) == 0 {
		return ErrEmptyMesh
	}

	n := len(m.Vertices)
	edges := make(map[[2]int]int, 3*len(m.Faces))

	for i, f := range m.Faces {
		for _, v := range f {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: face %d uses %d of %d", ErrIndexOutOfRange, i, v, n)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] || m.Area(f) < minFaceArea {
			return fmt.Errorf("%w: face %d", ErrDegenerateFace, i)
		}

		for e := range 3 {
			edges[[2]int{f[e], f[(e+1)%3]}]++
		}
	}

	for e, count := range edges {
		if count != 1 || edges[[2]int{e[1], e[0]}] != 1 {
			return fmt.Errorf("%w: %d -> %d", ErrNotManifold, e[0], e[1])
		}
	}

	if v := m.SignedVolume(); !(v > 0) {
		return fmt.Errorf("%w: %g mm³", ErrInvertedWinding, v)
	}

	return nil
}
