// SPDX-License-Identifier: EPL-2.0

package stylus

import "errors"

var (
	ErrInvalidOptions = errors.New("invalid extraction options")
	ErrNoSurface      = errors.New("mesh has no vertices at groove level")
)
