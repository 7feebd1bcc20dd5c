package xodrqc

import (
	"fmt"
)

// Document is a parsed OpenDRIVE map: the roads and junctions of one .xodr
// file together with the header metadata the checkers care about.
type Document struct {
	FileName string
	// Version is "major.minor" from the header, e.g. "1.6". Empty when the
	// header carries no usable revision numbers.
	Version string

	Roads     []*Road
	Junctions []*Junction

	roadIndex     map[RoadID]*Road
	junctionIndex map[JunctionID]*Junction
}

// buildIndexes prepares the by-identifier lookups. Duplicate identifiers keep
// the first occurrence; the duplicates themselves are reported by the basic
// checkers, not here.
func (document *Document) buildIndexes() {
	document.roadIndex = make(map[RoadID]*Road, len(document.Roads))
	for _, road := range document.Roads {
		if _, ok := document.roadIndex[road.ID]; !ok {
			document.roadIndex[road.ID] = road
		}
	}
	document.junctionIndex = make(map[JunctionID]*Junction, len(document.Junctions))
	for _, junction := range document.Junctions {
		if _, ok := document.junctionIndex[junction.ID]; !ok {
			document.junctionIndex[junction.ID] = junction
		}
	}
}

// RoadByID returns the road with the given identifier
func (document *Document) RoadByID(id RoadID) (*Road, bool) {
	road, ok := document.roadIndex[id]
	return road, ok
}

// JunctionByID returns the junction with the given identifier
func (document *Document) JunctionByID(id JunctionID) (*Junction, bool) {
	junction, ok := document.junctionIndex[id]
	return junction, ok
}

// SchemaLocation returns the schema file name matching the document version,
// e.g. "opendrive_16.xsd" for version 1.6. Empty when the version is unknown.
func (document *Document) SchemaLocation() string {
	if document.Version == "" {
		return ""
	}
	major, minor := 0, 0
	if _, err := fmt.Sscanf(document.Version, "%d.%d", &major, &minor); err != nil {
		return ""
	}
	return fmt.Sprintf("opendrive_%d%d.xsd", major, minor)
}
