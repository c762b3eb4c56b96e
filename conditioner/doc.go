// SPDX-License-Identifier: EPL-2.0

// Package conditioner turns a decoded audio stream into the mono,
// band-limited, peak-normalized Waveform that groove synthesis expects.
//
// Process always runs the same chain, in this order:
//
//  1. downmix to mono (channel average)
//  2. head/tail silence padding
//  3. resampling to the target rate
//  4. high-pass
//  5. inverse RIAA equalization
//  6. dynamic range compression
//  7. low-pass
//  8. peak normalization
//
// Steps 2 and 4 to 7 are skipped when their options are zero. A silent or
// empty input comes out silent or empty; it is not an error.
package conditioner
