package xodrqc

import "strconv"

/* Roads stuff */

// RoadID is the numeric identity of a road element
type RoadID int

// JunctionID is the numeric identity of a junction element
type JunctionID int

// LaneID is the signed numeric identity of a lane within its lane section.
// Negative ids travel in the direction of increasing arc-length (exit at the
// successor end), positive ids the opposite, id 0 is the center lane.
type LaneID int

// NoJunction marks a road which is not a connecting road inside any junction
const NoJunction = JunctionID(-1)

// LinkDirection describes which end of a road a linkage is attached to
type LinkDirection uint8

const (
	DIRECTION_PREDECESSOR = LinkDirection(iota + 1)
	DIRECTION_SUCCESSOR
)

func (iotaIdx LinkDirection) String() string {
	return [...]string{"predecessor", "successor"}[iotaIdx-1]
}

// LinkageKind describes the variant of a declared road linkage
type LinkageKind uint8

const (
	LINKAGE_NONE = LinkageKind(iota)
	LINKAGE_ROAD
	LINKAGE_JUNCTION
)

func (iotaIdx LinkageKind) String() string {
	return [...]string{"none", "road", "junction"}[iotaIdx]
}

// ContactPoint describes at which end of the target element a linkage or a
// junction connection touches
type ContactPoint uint8

const (
	CONTACT_POINT_NONE = ContactPoint(iota)
	CONTACT_POINT_START
	CONTACT_POINT_END
)

func (iotaIdx ContactPoint) String() string {
	return [...]string{"none", "start", "end"}[iotaIdx]
}

// Linkage is a road's declared predecessor or successor target. Kind tells
// whether the target is a road, a junction or absent; ElementID is only
// meaningful for the road and junction variants.
type Linkage struct {
	Kind         LinkageKind
	ElementID    int
	ContactPoint ContactPoint
	Location     Location
}

// Road is a single road element with its reference-line geometry, lane
// sections ordered by increasing arc-length and declared linkage
type Road struct {
	ID           RoadID
	Junction     JunctionID
	PlanView     []GeometrySegment
	Elevations   []ElevationRecord
	LaneSections []*LaneSection
	Predecessor  Linkage
	Successor    Linkage
	Location     Location
	// ElevationLocation points at the elevationProfile element when the road
	// has one, at the road element otherwise.
	ElevationLocation Location
	// geometryOK is cleared by the loader when any plan-view attribute failed
	// strict parsing; such roads are excluded from every geometric comparison
	// but stay resolvable by id.
	geometryOK bool
}

// BelongsToJunction reports whether the road is a connecting road inside a junction
func (road *Road) BelongsToJunction() bool {
	return road.Junction != NoJunction
}

// DisplayName returns the road id annotated when the road is junction-interior
func (road *Road) DisplayName() string {
	if road.BelongsToJunction() {
		return strconv.Itoa(int(road.ID)) + " (Connecting)"
	}
	return strconv.Itoa(int(road.ID))
}

// LinkageAt returns the declared linkage for the given direction, reporting
// absence explicitly so callers cannot mistake "not linked" for a zero value
func (road *Road) LinkageAt(direction LinkDirection) (Linkage, bool) {
	var linkage Linkage
	if direction == DIRECTION_PREDECESSOR {
		linkage = road.Predecessor
	} else {
		linkage = road.Successor
	}
	if linkage.Kind == LINKAGE_NONE {
		return Linkage{}, false
	}
	return linkage, true
}

// GeometryUsable reports whether every numeric attribute of the road's plan
// view parsed as a finite value
func (road *Road) GeometryUsable() bool {
	return road.geometryOK
}

// FirstLaneSection returns the predecessor-side boundary section
func (road *Road) FirstLaneSection() (*LaneSection, bool) {
	if len(road.LaneSections) == 0 {
		return nil, false
	}
	return road.LaneSections[0], true
}

// LastLaneSection returns the successor-side boundary section
func (road *Road) LastLaneSection() (*LaneSection, bool) {
	if len(road.LaneSections) == 0 {
		return nil, false
	}
	return road.LaneSections[len(road.LaneSections)-1], true
}

// BoundarySection returns the lane section that faces the given end of the
// road: last section for the successor end, first for the predecessor end
func (road *Road) BoundarySection(direction LinkDirection) (*LaneSection, bool) {
	if direction == DIRECTION_SUCCESSOR {
		return road.LastLaneSection()
	}
	return road.FirstLaneSection()
}

// LaneSection groups the lanes which are valid over one contiguous
// arc-length interval of the road
type LaneSection struct {
	S        float64
	Lanes    []*Lane
	Location Location
}

// LaneByID returns the lane with the given signed id, if present. Lane ids
// are unique within a section.
func (section *LaneSection) LaneByID(id LaneID) (*Lane, bool) {
	for _, lane := range section.Lanes {
		if lane.ID == id {
			return lane, true
		}
	}
	return nil, false
}

// Lane is a single lane with its signed id and the optional per-direction
// link into an adjacent road's lane
type Lane struct {
	ID          LaneID
	Predecessor *LaneID
	Successor   *LaneID
	Location    Location
}

// LinkAt returns the lane-level link id for the given direction if declared
func (lane *Lane) LinkAt(direction LinkDirection) (LaneID, bool) {
	var target *LaneID
	if direction == DIRECTION_PREDECESSOR {
		target = lane.Predecessor
	} else {
		target = lane.Successor
	}
	if target == nil {
		return 0, false
	}
	return *target, true
}
