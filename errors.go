// SPDX-License-Identifier: EPL-2.0

package grooverider

import "errors"

var (
	ErrDecode        = errors.New("cannot decode audio")
	ErrConfiguration = errors.New("configuration error")
	ErrMeshRead      = errors.New("cannot read mesh")
)
