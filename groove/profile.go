// SPDX-License-Identifier: EPL-2.0

package groove

import (
	"fmt"
	"math"

	"github.com/ik5/grooverider/utils"
)

// Profile describes the disc and groove geometry. Lengths are in
// millimeters.
type Profile struct {
	OuterDiameter float64
	Thickness     float64
	HoleDiameter  float64

	// LeadIn is the unmodulated margin between the outer edge and the
	// first groove turn.
	LeadIn float64
	// Clearance is the lead-out margin kept between the last turn and the
	// center hole.
	Clearance float64

	// Pitch is the radial distance between adjacent turns.
	Pitch float64
	// GrooveWidth is the full width of the groove cross-section.
	GrooveWidth float64
	// GrooveDepth is the resting depth of an unmodulated groove.
	GrooveDepth float64
	// AmplitudeScale is the share of GrooveDepth a full-scale sample moves
	// the groove floor, in [0, 1].
	AmplitudeScale float64
}

func (p Profile) OuterRadius() float64 { return p.OuterDiameter / 2 }
func (p Profile) HoleRadius() float64  { return p.HoleDiameter / 2 }

// StartRadius is where the first sample is cut.
func (p Profile) StartRadius() float64 { return p.OuterRadius() - p.LeadIn }

// FloorRadius is the smallest radius a sample may be cut at.
func (p Profile) FloorRadius() float64 { return p.HoleRadius() + p.Clearance }

// ModulationRange is the depth change produced by a full-scale sample.
func (p Profile) ModulationRange() float64 { return p.GrooveDepth * p.AmplitudeScale }

// MaxDepth is the deepest point any sample in [-1, 1] can reach.
func (p Profile) MaxDepth() float64 { return p.GrooveDepth + p.ModulationRange() }

// RadiusAt returns the centerline radius after the given number of
// rotations.
func (p Profile) RadiusAt(rotations float64) float64 {
	return p.StartRadius() - p.Pitch*rotations
}

// Depth maps a sample to the z coordinate of the groove floor. Samples are
// clipped to [-1, 1] first, so the result lies in [-MaxDepth, 0].
func (p Profile) Depth(sample float64) float64 {
	if math.IsNaN(sample) {
		sample = 0
	}
	s := utils.Clamp(sample, -1, 1)
	return -p.GrooveDepth + s*p.ModulationRange()
}

// Amplitude inverts Depth, clipped to [-1, 1]. It returns 0 when the
// profile has no modulation range.
func (p Profile) Amplitude(z float64) float64 {
	rng := p.ModulationRange()
	if rng == 0 {
		return 0
	}
	return utils.Clamp((z+p.GrooveDepth)/rng, -1, 1)
}

// Validate checks that the profile describes a printable disc with room
// for at least one sample.
func (p Profile) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{p.OuterDiameter > 0, "outer diameter must be positive"},
		{p.HoleDiameter > 0, "hole diameter must be positive"},
		{p.Pitch > 0, "pitch must be positive"},
		{p.GrooveDepth >= 0, "groove depth must not be negative"},
		{p.AmplitudeScale >= 0 && p.AmplitudeScale <= 1, "amplitude scale must be within [0, 1]"},
		{p.GrooveWidth > 0 && p.GrooveWidth <= p.Pitch, "groove width must be positive and not exceed the pitch"},
		{p.LeadIn >= p.GrooveWidth, "lead-in must be at least one groove width"},
		{p.Clearance >= p.GrooveWidth, "clearance must be at least one groove width"},
		{p.Thickness > p.MaxDepth(), "thickness must exceed the deepest groove"},
		{p.OuterRadius() > p.StartRadius(), "start radius must lie inside the outer edge"},
		{p.StartRadius() > p.FloorRadius(), "lead-in and clearance leave no track"},
		{p.FloorRadius() > p.HoleRadius(), "floor radius must lie outside the hole"},
	}

	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidProfile, c.msg)
		}
	}

	for _, v := range []float64{
		p.OuterDiameter, p.Thickness, p.HoleDiameter, p.LeadIn, p.Clearance,
		p.Pitch, p.GrooveWidth, p.GrooveDepth, p.AmplitudeScale,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: values must be finite", ErrInvalidProfile)
		}
	}

	return nil
}
