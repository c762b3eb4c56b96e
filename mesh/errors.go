// SPDX-License-Identifier: EPL-2.0

package mesh

import "errors"

var (
	ErrInvalidResolution = errors.New("invalid mesh resolution")
	ErrEmptyMesh         = errors.New("mesh has no faces")
	ErrIndexOutOfRange   = errors.New("face references a missing vertex")
	ErrDegenerateFace    = errors.New("face has zero area")
	ErrNotManifold       = errors.New("mesh edge is not shared by exactly two opposite faces")
	ErrInvertedWinding   = errors.New("mesh signed volume is not positive")
)
