package xodrqc

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/paulmach/orb"
)

// Point3D Representation of a point in map-global coordinates
type Point3D = r3.Vector

// euclideanDistance returns distance between two points in map units
func euclideanDistance(p, q Point3D) float64 {
	return p.Sub(q).Norm()
}

// Cubic is a cubic polynomial a + b*t + c*t^2 + d*t^3
type Cubic struct {
	A float64
	B float64
	C float64
	D float64
}

// At evaluates the polynomial at t
func (poly Cubic) At(t float64) float64 {
	return poly.A + t*(poly.B+t*(poly.C+t*poly.D))
}

// Derivative evaluates the first derivative at t
func (poly Cubic) Derivative(t float64) float64 {
	return poly.B + t*(2.0*poly.C+t*3.0*poly.D)
}

// IsZero reports whether all coefficients are exactly zero
func (poly Cubic) IsZero() bool {
	return poly.A == 0 && poly.B == 0 && poly.C == 0 && poly.D == 0
}

// localToWorld converts local (u, v) coordinates of a geometry segment into
// world coordinates given the segment origin and heading
func localToWorld(origin orb.Point, hdg, u, v float64) orb.Point {
	sinHdg := math.Sin(hdg)
	cosHdg := math.Cos(hdg)
	return orb.Point{
		origin[0] + u*cosHdg - v*sinHdg,
		origin[1] + u*sinHdg + v*cosHdg,
	}
}

// integrateHeading advances a curve whose heading grows linearly in curvature
// (clothoid) from curvStart to curvEnd over total length, returning the
// position after ds. Composite Simpson quadrature over the heading integral.
func integrateHeading(origin orb.Point, hdg, curvStart, curvEnd, total, ds float64) orb.Point {
	if ds == 0 {
		return origin
	}
	curvRate := 0.0
	if total > 0 {
		curvRate = (curvEnd - curvStart) / total
	}
	heading := func(u float64) float64 {
		return hdg + curvStart*u + 0.5*curvRate*u*u
	}
	steps := clampSteps(int(math.Ceil(ds / 0.05)))
	h := ds / float64(steps)
	sumX := math.Cos(heading(0)) + math.Cos(heading(ds))
	sumY := math.Sin(heading(0)) + math.Sin(heading(ds))
	for i := 1; i < steps; i++ {
		u := float64(i) * h
		weight := 2.0
		if i%2 == 1 {
			weight = 4.0
		}
		sumX += weight * math.Cos(heading(u))
		sumY += weight * math.Sin(heading(u))
	}
	return orb.Point{
		origin[0] + sumX*h/3.0,
		origin[1] + sumY*h/3.0,
	}
}

// clampSteps keeps quadrature step counts even and bounded
func clampSteps(steps int) int {
	if steps < 16 {
		steps = 16
	}
	if steps > 4096 {
		steps = 4096
	}
	if steps%2 == 1 {
		steps++
	}
	return steps
}

// walkCurveToArcLength samples a parametric planar curve with the given
// parameter bound and returns the point at the requested arc length measured
// along chords. The target is clamped to the sampled curve length.
func walkCurveToArcLength(eval func(p float64) orb.Point, pMax, target float64) orb.Point {
	const samples = 1024
	previous := eval(0)
	if target <= 0 || pMax <= 0 {
		return previous
	}
	walked := 0.0
	for i := 1; i <= samples; i++ {
		p := pMax * float64(i) / float64(samples)
		current := eval(p)
		chord := planarDistance(previous, current)
		if chord > 0 && walked+chord >= target {
			fraction := (target - walked) / chord
			return orb.Point{
				previous[0] + fraction*(current[0]-previous[0]),
				previous[1] + fraction*(current[1]-previous[1]),
			}
		}
		walked += chord
		previous = current
	}
	return previous
}

// planarDistance returns Euclidean distance between two plan-view points
func planarDistance(p, q orb.Point) float64 {
	dx := p[0] - q[0]
	dy := p[1] - q[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// isFinite reports whether the value is neither NaN nor infinite
func isFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
