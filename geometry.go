package xodrqc

import (
	"math"

	"github.com/paulmach/orb"
)

// GeometryKind discriminates the shape of a plan-view geometry segment
type GeometryKind uint8

const (
	GEOMETRY_LINE = GeometryKind(iota + 1)
	GEOMETRY_ARC
	GEOMETRY_SPIRAL
	GEOMETRY_POLY3
	GEOMETRY_PARAM_POLY3
)

func (iotaIdx GeometryKind) String() string {
	return [...]string{"line", "arc", "spiral", "poly3", "paramPoly3"}[iotaIdx-1]
}

// GeometrySegment is one piece of a road's reference line. S, X, Y, Hdg and
// Length come from the geometry header; the shape parameters depend on Kind.
type GeometrySegment struct {
	S      float64
	X      float64
	Y      float64
	Hdg    float64
	Length float64
	Kind   GeometryKind

	Curvature float64 // arc
	CurvStart float64 // spiral
	CurvEnd   float64 // spiral
	Poly      Cubic   // poly3: v as cubic of u
	PolyU     Cubic   // paramPoly3
	PolyV     Cubic   // paramPoly3
	PRange    float64 // paramPoly3 parameter bound: 1 when normalized, Length otherwise

	Location Location
}

// evalAt returns the plan-view position after walking ds along the segment
// from its origin. ds is clamped into [0, Length].
func (segment *GeometrySegment) evalAt(ds float64) orb.Point {
	if ds < 0 {
		ds = 0
	}
	if ds > segment.Length {
		ds = segment.Length
	}
	origin := orb.Point{segment.X, segment.Y}
	switch segment.Kind {
	case GEOMETRY_LINE:
		return localToWorld(origin, segment.Hdg, ds, 0)
	case GEOMETRY_ARC:
		if segment.Curvature == 0 {
			return localToWorld(origin, segment.Hdg, ds, 0)
		}
		k := segment.Curvature
		angle := segment.Hdg + k*ds
		return orb.Point{
			origin[0] + (math.Sin(angle)-math.Sin(segment.Hdg))/k,
			origin[1] - (math.Cos(angle)-math.Cos(segment.Hdg))/k,
		}
	case GEOMETRY_SPIRAL:
		return integrateHeading(origin, segment.Hdg, segment.CurvStart, segment.CurvEnd, segment.Length, ds)
	case GEOMETRY_POLY3:
		eval := func(u float64) orb.Point {
			return localToWorld(origin, segment.Hdg, u, segment.Poly.At(u))
		}
		return walkCurveToArcLength(eval, segment.Length, ds)
	case GEOMETRY_PARAM_POLY3:
		pMax := segment.PRange
		if pMax <= 0 {
			pMax = segment.Length
		}
		eval := func(p float64) orb.Point {
			return localToWorld(origin, segment.Hdg, segment.PolyU.At(p), segment.PolyV.At(p))
		}
		if ds >= segment.Length {
			// The parameter bound maps onto the full segment, so the tail end
			// is exact without chord sampling.
			return eval(pMax)
		}
		return walkCurveToArcLength(eval, pMax, ds)
	}
	return origin
}

// ElevationRecord is one cubic piece of the road elevation profile, valid
// from arc-length S until the next record
type ElevationRecord struct {
	S        float64
	Poly     Cubic
	Location Location
}

// TotalLength returns the road's reference-line length as the sum of all
// geometry segment lengths
func (road *Road) TotalLength() float64 {
	total := 0.0
	for i := range road.PlanView {
		total += road.PlanView[i].Length
	}
	return total
}

// Endpoints evaluates the reference line at arc-length zero and at the total
// length. The boolean is false when the road carries no usable geometry;
// degenerate zero-length geometry is valid and yields start == end.
func (road *Road) Endpoints() (Point3D, Point3D, bool) {
	if !road.geometryOK || len(road.PlanView) == 0 {
		return Point3D{}, Point3D{}, false
	}
	start, _ := road.PointAt(0)
	end, _ := road.PointAt(road.TotalLength())
	return start, end, true
}

// PointAt evaluates the reference line position at the given arc-length,
// clamped into [0, TotalLength]. The boolean is false when the road carries
// no usable geometry.
func (road *Road) PointAt(s float64) (Point3D, bool) {
	if !road.geometryOK || len(road.PlanView) == 0 {
		return Point3D{}, false
	}
	if s < 0 {
		s = 0
	}
	total := road.TotalLength()
	if s > total {
		s = total
	}
	// Locate the owning segment by cumulative length so that sloppy s
	// attributes in the input cannot skew evaluation.
	walked := 0.0
	segment := &road.PlanView[len(road.PlanView)-1]
	ds := segment.Length
	for i := range road.PlanView {
		candidate := &road.PlanView[i]
		if s <= walked+candidate.Length || i == len(road.PlanView)-1 {
			segment = candidate
			ds = s - walked
			break
		}
		walked += candidate.Length
	}
	planar := segment.evalAt(ds)
	return Point3D{X: planar[0], Y: planar[1], Z: road.elevationAt(s)}, true
}

// elevationAt evaluates the elevation profile at the given road arc-length.
// Roads without elevation records are flat at z = 0.
func (road *Road) elevationAt(s float64) float64 {
	var record *ElevationRecord
	for i := range road.Elevations {
		candidate := &road.Elevations[i]
		if candidate.S <= s && (record == nil || candidate.S >= record.S) {
			record = candidate
		}
	}
	if record == nil {
		return 0
	}
	return record.Poly.At(s - record.S)
}

// HasZeroElevation reports whether every elevation record is the zero cubic.
// Roads without any record count as zero-elevation.
func (road *Road) HasZeroElevation() bool {
	for i := range road.Elevations {
		if !road.Elevations[i].Poly.IsZero() {
			return false
		}
	}
	return true
}

// SampleReferenceLine walks the reference line with at most the given step
// between samples and returns the plan-view polyline including both endpoints
func (road *Road) SampleReferenceLine(maxStep float64) orb.LineString {
	if !road.geometryOK || len(road.PlanView) == 0 {
		return nil
	}
	total := road.TotalLength()
	if maxStep <= 0 {
		maxStep = 1.0
	}
	steps := int(math.Ceil(total / maxStep))
	if steps < 1 {
		steps = 1
	}
	line := make(orb.LineString, 0, steps+1)
	for i := 0; i <= steps; i++ {
		s := total * float64(i) / float64(steps)
		point, ok := road.PointAt(s)
		if !ok {
			return nil
		}
		line = append(line, orb.Point{point.X, point.Y})
	}
	return line
}
