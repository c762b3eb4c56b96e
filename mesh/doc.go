// SPDX-License-Identifier: EPL-2.0

// Package mesh builds the printable solid of a record.
//
// The disc is a closed triangle mesh: a top surface carrying the groove, a
// flat bottom, and cylindrical walls at the center hole and the outer
// edge. The top surface is a polar grid of AngularSteps columns. Each
// column holds the hole radius, optional body rings, a band of radii
// aligned with the spiral, and the outer radius:
//
//	r = StartRadius − Pitch·φ/2π + m·Pitch/RadialStepsPerPitch
//
// so every crossing of the groove centerline with a column is a vertex.
// Neighboring columns are joined by a monotone zipper, which keeps the
// surface a single sheet however their radii interleave.
//
// Band vertices are pushed down toward the groove floor. The nearest
// spiral sample comes from a k-d tree; the distance to the centerline is
// measured to the sampled polyline and the floor depth is interpolated
// along the closest segment. Depth is full on the centerline and falls
// linearly to zero at half the groove width.
//
// Faces wind counter-clockwise seen from outside, so SignedVolume is
// positive for every mesh Build returns.
package mesh
