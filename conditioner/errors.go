// SPDX-License-Identifier: EPL-2.0

package conditioner

import "errors"

var (
	ErrInvalidTargetRate = errors.New("target sample rate must be positive")
	ErrInvalidCutoff     = errors.New("filter cutoff must be between 0 and the target Nyquist frequency")
)
