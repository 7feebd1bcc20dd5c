package xodrqc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBytesMinimalMap(t *testing.T) {
	document, report := NewLoader("test.xodr").LoadBytes([]byte(minimalMap))
	require.NotNil(t, document)
	require.NoError(t, report.XMLError)
	assert.Equal(t, "OpenDRIVE", report.RootTag)
	assert.True(t, report.HeaderFound)
	assert.True(t, report.VersionOK)
	assert.Equal(t, "1.6", document.Version)
	assert.Empty(t, report.Malformed)

	require.Len(t, document.Roads, 2)
	road, ok := document.RoadByID(1)
	require.True(t, ok)
	assert.False(t, road.BelongsToJunction())
	assert.Equal(t, LINKAGE_ROAD, road.Successor.Kind)
	assert.Equal(t, 2, road.Successor.ElementID)
	assert.Equal(t, LINKAGE_NONE, road.Predecessor.Kind)
	require.Len(t, road.LaneSections, 1)
	assert.Len(t, road.LaneSections[0].Lanes, 3)

	lane, ok := road.LaneSections[0].LaneByID(-1)
	require.True(t, ok)
	require.NotNil(t, lane.Successor)
	assert.Equal(t, LaneID(-1), *lane.Successor)

	start, end, ok := road.Endpoints()
	require.True(t, ok)
	assert.Equal(t, Point3D{X: 0.0, Y: 0.0, Z: 0.0}, start)
	assert.InDelta(t, 10.0, end.X, 1e-9)
}

func TestLoadBytesJunction(t *testing.T) {
	content := `<?xml version="1.0"?>
<OpenDRIVE>
    <header revMajor="1" revMinor="6"/>
    <junction id="10">
        <connection id="0" incomingRoad="1" connectingRoad="2" contactPoint="start">
            <laneLink from="-1" to="1"/>
            <laneLink from="-2" to="2"/>
        </connection>
    </junction>
</OpenDRIVE>`
	document, report := NewLoader("test.xodr").LoadBytes([]byte(content))
	require.NotNil(t, document)
	assert.Empty(t, report.Malformed)
	junction, ok := document.JunctionByID(10)
	require.True(t, ok)
	require.Len(t, junction.Connections, 1)
	connection := junction.Connections[0]
	assert.Equal(t, RoadID(1), connection.IncomingRoad)
	assert.Equal(t, RoadID(2), connection.ConnectingRoad)
	assert.Equal(t, CONTACT_POINT_START, connection.ContactPoint)
	require.Len(t, connection.LaneLinks, 2)
	assert.Equal(t, LaneID(-1), connection.LaneLinks[0].From)
	assert.Equal(t, LaneID(1), connection.LaneLinks[0].To)
}

func TestLoadBytesMalformedValues(t *testing.T) {
	content := `<?xml version="1.0"?>
<OpenDRIVE>
    <header revMajor="1" revMinor="6"/>
    <road id="1" junction="-1">
        <planView>
            <geometry s="0" x="zero" y="0" hdg="0" length="10">
                <line/>
            </geometry>
        </planView>
        <lanes>
            <laneSection s="0">
                <right>
                    <lane id="abc"/>
                    <lane id="-1"/>
                </right>
            </laneSection>
        </lanes>
    </road>
</OpenDRIVE>`
	document, report := NewLoader("test.xodr").LoadBytes([]byte(content))
	require.NotNil(t, document)
	assert.Len(t, report.Malformed, 2, "One malformed coordinate and one malformed lane id")

	road, ok := document.RoadByID(1)
	require.True(t, ok)
	assert.False(t, road.GeometryUsable(), "Malformed geometry excludes the road from geometric comparisons")
	_, _, usable := road.Endpoints()
	assert.False(t, usable)
	require.Len(t, road.LaneSections, 1)
	assert.Len(t, road.LaneSections[0].Lanes, 1, "The unparsable lane is dropped, the valid one stays")
}

func TestLoadBytesNonFiniteCoordinate(t *testing.T) {
	content := `<?xml version="1.0"?>
<OpenDRIVE>
    <header revMajor="1" revMinor="6"/>
    <road id="1" junction="-1">
        <planView>
            <geometry s="0" x="NaN" y="0" hdg="0" length="10">
                <line/>
            </geometry>
        </planView>
    </road>
</OpenDRIVE>`
	_, report := NewLoader("test.xodr").LoadBytes([]byte(content))
	assert.Len(t, report.Malformed, 1, "NaN parses as a float but is rejected as non-finite")
}

func TestLoadBytesBrokenXML(t *testing.T) {
	document, report := NewLoader("test.xodr").LoadBytes([]byte("<OpenDRIVE><road"))
	assert.Nil(t, document)
	assert.Error(t, report.XMLError)
}

func TestLoadBytesLocations(t *testing.T) {
	content := "<OpenDRIVE>\n" +
		"    <header revMajor=\"1\" revMinor=\"6\"/>\n" +
		"    <road id=\"1\" junction=\"-1\"/>\n" +
		"    <road id=\"2\" junction=\"-1\"/>\n" +
		"</OpenDRIVE>"
	document, _ := NewLoader("test.xodr").LoadBytes([]byte(content))
	require.NotNil(t, document)
	require.Len(t, document.Roads, 2)
	assert.Equal(t, "/OpenDRIVE/road[1]", document.Roads[0].Location.XPath)
	assert.Equal(t, "/OpenDRIVE/road[2]", document.Roads[1].Location.XPath)
	assert.Equal(t, 3, document.Roads[0].Location.Row)
	assert.Equal(t, 4, document.Roads[1].Location.Row)
}

func TestSchemaLocation(t *testing.T) {
	document := &Document{Version: "1.6"}
	assert.Equal(t, "opendrive_16.xsd", document.SchemaLocation())
	document.Version = ""
	assert.Equal(t, "", document.SchemaLocation())
}
