// SPDX-License-Identifier: EPL-2.0

// Package stylus plays a record mesh back into a waveform.
//
// Extract walks the ideal spiral of a profile, the same track groove.Map
// cut into the disc, and at every visited point looks at the mesh vertices
// within a search radius. The deepest of them is where a stylus resting in
// the groove would sit, and its height converts back to an amplitude with
// groove.Profile.Amplitude. A point with no vertices nearby reads as
// silence.
//
// When Options.Samples is zero the length of the cut track is found by a
// binary search over the track capacity, so a mesh read back from an STL
// file can be played without knowing how much audio it holds.
package stylus
