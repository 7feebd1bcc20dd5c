package xodrqc

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKTPoint returns WKT representation of an inertial point, plan view only
func PrepareWKTPoint(pt Point3D) string {
	return wkt.MarshalString(orb.Point{pt.X, pt.Y})
}

// PrepareWKTReferenceLine returns WKT representation of a road's sampled
// reference line, with at most maxStep map units between samples. Roads
// without usable geometry render as an empty linestring.
func PrepareWKTReferenceLine(road *Road, maxStep float64) string {
	line := road.SampleReferenceLine(maxStep)
	if line == nil {
		line = orb.LineString{}
	}
	return wkt.MarshalString(line)
}
