// SPDX-License-Identifier: EPL-2.0

// Package dsp provides the filters and dynamics processors used to shape a
// signal before it is cut into a groove. Filter sections and the
// compressor come from github.com/cwbudde/algo-dsp; this package picks
// their settings and checks arguments the library would silently accept.
//
// # Filters
//
// All filters are second-order sections. Higher orders are built by
// chaining sections instead of expanding a single high-order polynomial,
// which keeps the filters numerically stable at low sample rates:
//
//	hp, _ := dsp.Highpass(20, 8000, dsp.ButterworthQ)
//	lp, _ := dsp.Lowpass(3500, 8000, dsp.ButterworthQ)
//	out := dsp.Apply(samples, hp, lp)
//
// InverseRIAA builds the phono playback curve (turnovers at 50 Hz, 500 Hz
// and 2122 Hz) through the bilinear transform as one section normalized
// to 0 dB at 1 kHz.
//
// # Dynamics
//
// NewCompressor configures a hard-knee compressor with no makeup gain.
// Signals whose envelope stays below the threshold pass through bit for
// bit.
//
// # Normalization
//
// Normalize divides by the absolute peak, so the result spans [-1, 1]
// exactly. Silence stays silent and a second pass changes nothing.
package dsp
