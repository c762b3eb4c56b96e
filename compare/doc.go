// SPDX-License-Identifier: EPL-2.0

// Package compare scores how closely a waveform played back from a mesh
// follows the one that was cut.
//
// The two signals usually differ in length, since extraction may visit the
// track at another rate. Compare stretches the shorter one to the length of
// the longer by linear interpolation, then reports their Pearson
// correlation: 1 for identical shapes, 0 for unrelated ones, -1 for an
// inverted copy. Scale does not matter, so an extraction that recovers the
// waveform at half amplitude still scores 1.
//
// Result.Plot carries what a caller needs to draw both signals: per-bucket
// min/max envelopes and Hann-windowed magnitude spectra.
package compare
