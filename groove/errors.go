// SPDX-License-Identifier: EPL-2.0

package groove

import "errors"

var (
	ErrInvalidProfile    = errors.New("invalid record profile")
	ErrInvalidRPM        = errors.New("rpm must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrTrackTooShort     = errors.New("audio does not fit between lead-in and lead-out")
)
