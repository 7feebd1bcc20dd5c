package xodrqc

// ConnectedLane is one lane of another road reachable from a boundary lane,
// together with the road that carries it
type ConnectedLane struct {
	Lane *Lane
	Road *Road
}

// LaneDirection derives the travel-direction linkage end from the lane id
// sign. Negative-id lanes run with increasing s and exit at the successor
// end, positive-id lanes the opposite. The center lane has no direction.
func LaneDirection(lane *Lane) (LinkDirection, bool) {
	switch {
	case lane.ID < 0:
		return DIRECTION_SUCCESSOR, true
	case lane.ID > 0:
		return DIRECTION_PREDECESSOR, true
	}
	return 0, false
}

// BoundaryLanes returns the lanes that face the given end of the road:
// negative-id lanes of the last section for the successor end, positive-id
// lanes of the first section for the predecessor end
func (road *Road) BoundaryLanes(direction LinkDirection) []*Lane {
	section, ok := road.BoundarySection(direction)
	if !ok {
		return nil
	}
	var lanes []*Lane
	for _, lane := range section.Lanes {
		if direction == DIRECTION_SUCCESSOR && lane.ID < 0 {
			lanes = append(lanes, lane)
		}
		if direction == DIRECTION_PREDECESSOR && lane.ID > 0 {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}

// PairedRoad resolves the road-kind linkage at the given end. Junction
// linkage, absent linkage and dangling ids all report false.
func (document *Document) PairedRoad(road *Road, direction LinkDirection) (*Road, bool) {
	linkage, ok := road.LinkageAt(direction)
	if !ok || linkage.Kind != LINKAGE_ROAD {
		return nil, false
	}
	return document.RoadByID(RoadID(linkage.ElementID))
}

// linkedJunction resolves the junction-kind linkage at the given end
func (document *Document) linkedJunction(road *Road, direction LinkDirection) (*Junction, bool) {
	linkage, ok := road.LinkageAt(direction)
	if !ok || linkage.Kind != LINKAGE_JUNCTION {
		return nil, false
	}
	return document.JunctionByID(JunctionID(linkage.ElementID))
}

// counterpartSection picks the section of the paired road that touches the
// shared end. The declared contact point wins; without one, a successor is
// entered at its first section and a predecessor left at its last.
func counterpartSection(paired *Road, contactPoint ContactPoint, direction LinkDirection) (*LaneSection, bool) {
	switch contactPoint {
	case CONTACT_POINT_START:
		return paired.FirstLaneSection()
	case CONTACT_POINT_END:
		return paired.LastLaneSection()
	}
	if direction == DIRECTION_SUCCESSOR {
		return paired.FirstLaneSection()
	}
	return paired.LastLaneSection()
}

// ConnectedLanes collects every lane the given boundary lane connects to in
// its travel direction. Both sources contribute and neither short-circuits
// the other: the lane's own link into the directly paired road, and the
// junction connection table when the road ends at a junction. Dangling ids
// resolve to nothing. Fan-out through several junction connections yields
// one entry per match.
func (document *Document) ConnectedLanes(road *Road, lane *Lane) []ConnectedLane {
	direction, ok := LaneDirection(lane)
	if !ok {
		return nil
	}
	var connected []ConnectedLane

	if paired, ok := document.PairedRoad(road, direction); ok {
		if linkID, ok := lane.LinkAt(direction); ok {
			linkage, _ := road.LinkageAt(direction)
			if section, ok := counterpartSection(paired, linkage.ContactPoint, direction); ok {
				if counterpart, ok := section.LaneByID(linkID); ok {
					connected = append(connected, ConnectedLane{Lane: counterpart, Road: paired})
				}
			}
		}
	}

	if junction, ok := document.linkedJunction(road, direction); ok {
		for _, connection := range junction.ConnectionsFromRoad(road.ID) {
			connecting, ok := document.RoadByID(connection.ConnectingRoad)
			if !ok {
				continue
			}
			section, ok := connecting.FirstLaneSection()
			if !ok {
				continue
			}
			for _, laneLink := range connection.LaneLinks {
				if laneLink.From != lane.ID {
					continue
				}
				if counterpart, ok := section.LaneByID(laneLink.To); ok {
					connected = append(connected, ConnectedLane{Lane: counterpart, Road: connecting})
				}
			}
		}
	}

	return connected
}
