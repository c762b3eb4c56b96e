// SPDX-License-Identifier: EPL-2.0

// Package spatial indexes 2-D points for nearest and radius queries on
// top of gonum's k-d tree.
package spatial

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// Point is a position on the disc plane tagged with the index of the
// record it came from.
type Point struct {
	X, Y  float64
	Index int
}

// Compare returns the signed distance of p from the plane passing through
// c and perpendicular to dimension d.
func (p Point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(Point)
	if d == 0 {
		return p.X - q.X
	}
	return p.Y - q.Y
}

func (p Point) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between p and c.
func (p Point) Distance(c kdtree.Comparable) float64 {
	q := c.(Point)
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

// points satisfies kdtree.Interface.
type points []Point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Pivot(d kdtree.Dim) int                { return plane{points: p, Dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along one dimension for median selection.
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool {
	if p.Dim == 0 {
		return p.points[i].X < p.points[j].X
	}
	return p.points[i].Y < p.points[j].Y
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// Index is an immutable 2-D k-d tree.
type Index struct {
	tree *kdtree.Tree
	n    int
}

// New builds an index over a copy of pts.
func New(pts []Point) *Index {
	if len(pts) == 0 {
		return &Index{}
	}

	own := make(points, len(pts))
	copy(own, pts)

	return &Index{
		tree: kdtree.New(own, false),
		n:    len(own),
	}
}

func (ix *Index) Len() int { return ix.n }

// Nearest returns the closest point to (x, y) and its Euclidean distance.
// ok is false when the index is empty.
func (ix *Index) Nearest(x, y float64) (p Point, dist float64, ok bool) {
	if ix.tree == nil {
		return Point{}, math.Inf(1), false
	}

	c, d := ix.tree.Nearest(Point{X: x, Y: y})
	if c == nil {
		return Point{}, math.Inf(1), false
	}
	return c.(Point), math.Sqrt(d), true
}

// Within returns every point at Euclidean distance <= r from (x, y), in no
// particular order.
func (ix *Index) Within(x, y, r float64) []Point {
	if ix.tree == nil || r < 0 {
		return nil
	}

	keep := kdtree.NewDistKeeper(r * r)
	ix.tree.NearestSet(keep, Point{X: x, Y: y})

	out := make([]Point, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		// the keeper seeds its heap with a nil sentinel
		if c.Comparable == nil {
			continue
		}
		out = append(out, c.Comparable.(Point))
	}
	return out
}
