// SPDX-License-Identifier: EPL-2.0

// Package groove maps a waveform onto the spiral track of a record.
//
// A Profile holds the physical dimensions of the disc and its groove. The
// track starts LeadIn millimeters inside the outer edge and winds inward
// by Pitch per rotation at constant angular velocity, so sample i sits at
//
//	rotations(i) = i / (sampleRate · 60/rpm)
//	θ(i) = 2π · rotations(i)
//	r(i) = StartRadius − Pitch · rotations(i)
//
// and is cut to depth
//
//	z = −GrooveDepth + s · GrooveDepth · AmplitudeScale
//
// below the top surface (z = 0). Silence rests at −GrooveDepth; full
// positive amplitude rises toward the surface and full negative amplitude
// reaches −GrooveDepth·(1+AmplitudeScale). Profile.Amplitude inverts the
// mapping.
//
// Spiral and Map evaluate the same point function, so a reader that knows
// the profile, speed, sample rate and count recomputes bit-identical
// positions to the ones used when cutting.
package groove
