// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the audio, groove and
// compare packages: interpolation kernels, clamping and PCM conversion.
//
// The helpers are generic over float32 and float64 so the streaming audio
// stages (float32) and the batch stages (float64) use the same code.
package utils
