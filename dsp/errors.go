// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidFrequency  = errors.New("frequency must be between 0 and Nyquist")
	ErrInvalidQ          = errors.New("q must be positive")
	ErrUnstableFilter    = errors.New("filter poles outside the unit circle")
	ErrInvalidThreshold  = errors.New("compressor threshold must be finite")
	ErrInvalidRatio      = errors.New("compressor ratio must be between 1 and 100")
	ErrInvalidTime       = errors.New("compressor attack must be 0.1 to 1000 ms and release 1 to 5000 ms")
)
