// SPDX-License-Identifier: EPL-2.0

package groove

import (
	"fmt"
	"math"

	"github.com/ik5/grooverider/audio"
)

// Point is one sample position on the track. Theta is in radians, R and Z
// in millimeters.
type Point struct {
	Theta float64
	R     float64
	Z     float64
}

// XY returns the Cartesian position of p on the disc.
func (p Point) XY() (x, y float64) {
	sin, cos := math.Sincos(p.Theta)
	return p.R * cos, p.R * sin
}

// Path is a spiral sampled once per audio sample, outside-in.
type Path []Point

// SecondsPerRotation is the time one turn takes at rpm.
func SecondsPerRotation(rpm float64) float64 {
	return 60 / rpm
}

// rotationsAt is the single source of sample positions for both Spiral and
// Map.
func rotationsAt(i int, rpm float64, sampleRate int) float64 {
	return float64(i) / (float64(sampleRate) * SecondsPerRotation(rpm))
}

// PointAt returns the position of sample i without validating its
// arguments. Spiral, Map and Capacity all place samples through it.
func PointAt(p Profile, rpm float64, sampleRate, i int) Point {
	rot := rotationsAt(i, rpm, sampleRate)
	return Point{
		Theta: 2 * math.Pi * rot,
		R:     p.RadiusAt(rot),
	}
}

func checkArgs(p Profile, rpm float64, sampleRate int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if !(rpm > 0) || math.IsInf(rpm, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidRPM, rpm)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	return nil
}

// Capacity returns how many samples at sampleRate fit on the track.
func Capacity(p Profile, rpm float64, sampleRate int) (int, error) {
	if err := checkArgs(p, rpm, sampleRate); err != nil {
		return 0, err
	}

	floor := p.FloorRadius()
	turns := (p.StartRadius() - floor) / p.Pitch
	n := int(turns*float64(sampleRate)*SecondsPerRotation(rpm)) + 1

	// settle rounding at the boundary against the exact point function
	for n > 0 && PointAt(p, rpm, sampleRate, n-1).R < floor {
		n--
	}
	for PointAt(p, rpm, sampleRate, n).R >= floor {
		n++
	}

	return n, nil
}

// Spiral returns the first n track positions with Z left at zero. It fails
// with ErrTrackTooShort when the n-th sample would fall inside the floor
// radius.
func Spiral(p Profile, rpm float64, sampleRate, n int) (Path, error) {
	if err := checkArgs(p, rpm, sampleRate); err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}

	if n > 0 {
		if last := PointAt(p, rpm, sampleRate, n-1); last.R < p.FloorRadius() {
			return nil, fmt.Errorf("%w: %d samples reach radius %.3f mm, floor is %.3f mm",
				ErrTrackTooShort, n, last.R, p.FloorRadius())
		}
	}

	path := make(Path, n)
	for i := range path {
		path[i] = PointAt(p, rpm, sampleRate, i)
	}
	return path, nil
}

// Map places every sample of w on the track and sets its cut depth.
func Map(w audio.Waveform, p Profile, rpm float64) (Path, error) {
	path, err := Spiral(p, rpm, w.SampleRate(), w.Len())
	if err != nil {
		return nil, err
	}

	for i := range path {
		path[i].Z = p.Depth(w.At(i))
	}
	return path, nil
}
