package xodrqc

/* Junctions stuff */

// ConnectionID is the numeric identity of a connection within a junction
type ConnectionID int

// Junction aggregates the connections between incoming roads and the
// connecting roads routed through the junction area
type Junction struct {
	ID          JunctionID
	Connections []*Connection
	Location    Location
}

// Connection pairs one incoming road with one connecting road and enumerates
// which incoming lane ids continue into which connecting lane ids
type Connection struct {
	ID             ConnectionID
	IncomingRoad   RoadID
	ConnectingRoad RoadID
	ContactPoint   ContactPoint
	LaneLinks      []LaneLink
	Location       Location
}

// LaneLink maps a lane of the incoming road onto a lane of the connecting road
type LaneLink struct {
	From     LaneID
	To       LaneID
	Location Location
}

// ConnectionsFromRoad returns the junction connections whose incoming road is
// the given road, in declaration order
func (junction *Junction) ConnectionsFromRoad(id RoadID) []*Connection {
	connections := []*Connection{}
	for _, connection := range junction.Connections {
		if connection.IncomingRoad == id {
			connections = append(connections, connection)
		}
	}
	return connections
}

// IncomingRoads returns the distinct incoming road ids over all connections
func (junction *Junction) IncomingRoads() map[RoadID]struct{} {
	incoming := make(map[RoadID]struct{})
	for _, connection := range junction.Connections {
		incoming[connection.IncomingRoad] = struct{}{}
	}
	return incoming
}
