// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FloatToInt16 converts a normalized sample to 16-bit PCM. Values outside
// [-1, 1] are clipped; NaN maps to 0.
func FloatToInt16[T Float](x T) int16 {
	v := float64(x)
	if math.IsNaN(v) {
		return 0
	}

	// 32767 on both sides keeps the conversion symmetric
	return int16(Clamp(v, -1, 1) * math.MaxInt16)
}

// Int16ToFloat maps a 16-bit PCM sample to [-1, 1).
func Int16ToFloat(v int16) float64 {
	return float64(v) / 32768.0
}
