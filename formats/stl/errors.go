// SPDX-License-Identifier: EPL-2.0

package stl

import "errors"

var ErrEmptyMesh = errors.New("mesh has no triangles")
