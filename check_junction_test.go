package xodrqc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncomingRoadsNumber(t *testing.T) {
	single := &Junction{ID: 1, Connections: []*Connection{
		{ID: 1, IncomingRoad: 1, ConnectingRoad: 5},
		{ID: 2, IncomingRoad: 1, ConnectingRoad: 6},
	}}
	pair := &Junction{ID: 2, Connections: []*Connection{
		{ID: 1, IncomingRoad: 1, ConnectingRoad: 5},
		{ID: 2, IncomingRoad: 2, ConnectingRoad: 6},
	}}
	document := newTestDocument(nil, []*Junction{single, pair})

	outcome := runSingleChecker(t, checkerIncomingRoadsNumber(), document)
	require.Equal(t, 1, outcome.IssueCount())
	issue := outcome.Issues()[0]
	assert.Equal(t, SEVERITY_INFORMATION, issue.Severity)
	assert.Equal(t, "Junction does not contain at least 2 incoming roads.", issue.Description)
}

func junctionContactDocument(contactPoint ContactPoint, connecting *Road) *Document {
	incoming := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	junction := &Junction{ID: 10, Connections: []*Connection{
		{ID: 1, IncomingRoad: 1, ConnectingRoad: connecting.ID, ContactPoint: contactPoint},
	}}
	return newTestDocument([]*Road{incoming, connecting}, []*Junction{junction})
}

func TestConnectionStartAlongLinkage(t *testing.T) {
	connecting := lineRoad(2, 10.0, 0.0, 0.0, 5.0)
	connecting.Junction = 10
	connecting.Predecessor = Linkage{Kind: LINKAGE_ROAD, ElementID: 1}
	document := junctionContactDocument(CONTACT_POINT_START, connecting)
	outcome := runSingleChecker(t, checkerConnectionStartAlongLinkage(), document)
	assert.Zero(t, outcome.IssueCount(), "Predecessor naming the incoming road matches contactPoint start")

	connecting.Predecessor = Linkage{Kind: LINKAGE_ROAD, ElementID: 7}
	outcome = runSingleChecker(t, checkerConnectionStartAlongLinkage(), document)
	require.Equal(t, 1, outcome.IssueCount())
	issue := outcome.Issues()[0]
	assert.Equal(t, SEVERITY_ERROR, issue.Severity)
	require.NotNil(t, issue.Inertial)
	assert.InDelta(t, 10.0, issue.Inertial.X, 1e-9, "Issue points at the connecting road's start")
}

func TestConnectionEndOppositeLinkage(t *testing.T) {
	connecting := lineRoad(2, 10.0, 0.0, 0.0, 5.0)
	connecting.Junction = 10
	connecting.Successor = Linkage{Kind: LINKAGE_ROAD, ElementID: 1}
	document := junctionContactDocument(CONTACT_POINT_END, connecting)
	outcome := runSingleChecker(t, checkerConnectionEndOppositeLinkage(), document)
	assert.Zero(t, outcome.IssueCount(), "Successor naming the incoming road matches contactPoint end")

	connecting.Successor = Linkage{Kind: LINKAGE_ROAD, ElementID: 7}
	outcome = runSingleChecker(t, checkerConnectionEndOppositeLinkage(), document)
	require.Equal(t, 1, outcome.IssueCount())
	issue := outcome.Issues()[0]
	assert.Equal(t, SEVERITY_ERROR, issue.Severity)
	require.NotNil(t, issue.Inertial)
	assert.InDelta(t, 15.0, issue.Inertial.X, 1e-9, "Issue points at the connecting road's end")
}

func TestConnectionChecksSkipUnresolvedAndUnlinked(t *testing.T) {
	// Dangling connecting road and missing linkage both stay silent
	incoming := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	unlinked := lineRoad(2, 10.0, 0.0, 0.0, 5.0)
	unlinked.Junction = 10
	junction := &Junction{ID: 10, Connections: []*Connection{
		{ID: 1, IncomingRoad: 1, ConnectingRoad: 99, ContactPoint: CONTACT_POINT_END},
		{ID: 2, IncomingRoad: 1, ConnectingRoad: 2, ContactPoint: CONTACT_POINT_END},
	}}
	document := newTestDocument([]*Road{incoming, unlinked}, []*Junction{junction})
	outcome := runSingleChecker(t, checkerConnectionEndOppositeLinkage(), document)
	assert.Zero(t, outcome.IssueCount())
}

func TestReferencedRoadIDExists(t *testing.T) {
	road := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	road.Successor = Linkage{Kind: LINKAGE_ROAD, ElementID: 99}
	road.Predecessor = Linkage{Kind: LINKAGE_JUNCTION, ElementID: 42}
	junction := &Junction{ID: 10, Connections: []*Connection{
		{ID: 1, IncomingRoad: 1, ConnectingRoad: 77},
	}}
	document := newTestDocument([]*Road{road}, []*Junction{junction})

	outcome := runSingleChecker(t, checkerReferencedRoadIDExists(), document)
	require.Equal(t, 3, outcome.IssueCount())
	descriptions := map[string]bool{}
	for _, issue := range outcome.Issues() {
		assert.Equal(t, SEVERITY_WARNING, issue.Severity)
		descriptions[issue.Description] = true
	}
	assert.True(t, descriptions["Referenced SUCCESSOR road id does not exist."])
	assert.True(t, descriptions["Referenced PREDECESSOR junction id does not exist."])
	assert.True(t, descriptions["Referenced connectingRoad does not exist."])
}

func TestReferencedJunctionIDExists(t *testing.T) {
	inside := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	inside.Junction = 10
	dangling := lineRoad(2, 0.0, 0.0, 0.0, 10.0)
	dangling.Junction = 99
	standalone := lineRoad(3, 0.0, 0.0, 0.0, 10.0)
	junction := &Junction{ID: 10}
	document := newTestDocument([]*Road{inside, dangling, standalone}, []*Junction{junction})

	outcome := runSingleChecker(t, checkerReferencedJunctionIDExists(), document)
	require.Equal(t, 1, outcome.IssueCount())
	assert.Equal(t, "Referenced junction does not exist.", outcome.Issues()[0].Description)
}
