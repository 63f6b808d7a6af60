package rings

import (
	"fmt"
	"math"
)

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 { return deg * math.Pi / 180 }

// point returns the Cartesian position of a polar coordinate. Angles are
// degrees clockwise from 12 o'clock; SVG's y axis points down, so the top
// of the board is negative y.
func point(angleDeg, radius float64) (x, y float64) {
	rad := degToRad(angleDeg)
	return radius * math.Sin(rad), -radius * math.Cos(rad)
}

// arcPath builds an SVG path for a circular arc at the given radius from
// startDeg to endDeg (clockwise, degrees). The caller guarantees
// endDeg > startDeg and endDeg − startDeg < 360.
func arcPath(radius, startDeg, endDeg float64) string {
	x1, y1 := point(startDeg, radius)
	x2, y2 := point(endDeg, radius)
	largeArc := 0
	if endDeg-startDeg > 180 {
		largeArc = 1
	}
	// Sweep flag 1: clockwise in SVG's y-down coordinate system.
	return fmt.Sprintf("M %.3f %.3f A %.3f %.3f 0 %d 1 %.3f %.3f",
		x1, y1, radius, radius, largeArc, x2, y2)
}

// mmToDeg converts an arc length in millimetres at the given radius to
// degrees. Degenerate radii at or below epsilon yield 0 rather than a
// division blowup: a near-zero radius is a valid (if visually trivial)
// case, not a configuration mistake.
func mmToDeg(mm, radius float64) float64 {
	const epsilon = 1e-6
	if radius <= epsilon {
		return 0
	}
	return mm / radius * 180 / math.Pi
}
