package xodrqc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSingleChecker(t *testing.T, checker Checker, document *Document) *CheckerOutcome {
	t.Helper()
	result := NewResult("test.xodr", document.Version, BundleName, BundleVersion)
	outcome := result.RegisterChecker(checker.ID, checker.Description)
	data := &CheckerData{
		Document: document,
		Report:   &ParseReport{},
		Config:   DefaultConfig(),
		Outcome:  outcome,
		Logger:   nopLogger(),
	}
	require.NoError(t, checker.Run(data))
	return outcome
}

// linkRoads declares road as predecessor/successor pair in both directions
func linkRoads(first, second *Road) {
	first.Successor = Linkage{Kind: LINKAGE_ROAD, ElementID: int(second.ID)}
	second.Predecessor = Linkage{Kind: LINKAGE_ROAD, ElementID: int(first.ID)}
}

func TestReferenceLinesConnectTouching(t *testing.T) {
	first := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	second := lineRoad(2, 10.0, 0.0, 0.0, 10.0)
	linkRoads(first, second)
	document := newTestDocument([]*Road{first, second}, nil)

	outcome := runSingleChecker(t, checkerReferenceLinesConnect(), document)
	assert.Zero(t, outcome.IssueCount(), "Touching reference lines must not raise")
}

func TestReferenceLinesConnectToleranceBoundary(t *testing.T) {
	// Gap of exactly the tolerance passes
	first := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	second := lineRoad(2, 10.001, 0.0, 0.0, 10.0)
	linkRoads(first, second)
	document := newTestDocument([]*Road{first, second}, nil)
	outcome := runSingleChecker(t, checkerReferenceLinesConnect(), document)
	assert.Zero(t, outcome.IssueCount(), "A gap of exactly 0.001 must not raise")

	// A gap barely above it fails, once per declaring road
	first = lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	second = lineRoad(2, 10.0011, 0.0, 0.0, 10.0)
	linkRoads(first, second)
	document = newTestDocument([]*Road{first, second}, nil)
	outcome = runSingleChecker(t, checkerReferenceLinesConnect(), document)
	assert.Equal(t, 2, outcome.IssueCount(), "A gap of 0.0011 must raise for both declaring sides")
	for _, issue := range outcome.Issues() {
		assert.Equal(t, SEVERITY_ERROR, issue.Severity)
	}
}

func TestReferenceLinesConnectFarApart(t *testing.T) {
	first := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	second := lineRoad(2, 500.0, 500.0, 0.0, 10.0)
	first.Successor = Linkage{Kind: LINKAGE_ROAD, ElementID: 2}
	document := newTestDocument([]*Road{first, second}, nil)

	outcome := runSingleChecker(t, checkerReferenceLinesConnect(), document)
	assert.Equal(t, 1, outcome.IssueCount())
	issue := outcome.Issues()[0]
	assert.Contains(t, issue.Description, "road 1")
	assert.Contains(t, issue.Description, "SUCCESSOR road 2")
}

func TestReferenceLinesConnectSkipsJunctionInterior(t *testing.T) {
	first := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	second := lineRoad(2, 500.0, 500.0, 0.0, 10.0)
	linkRoads(first, second)
	second.Junction = 7
	document := newTestDocument([]*Road{first, second}, nil)

	outcome := runSingleChecker(t, checkerReferenceLinesConnect(), document)
	assert.Zero(t, outcome.IssueCount(),
		"Pairs with a junction-interior side are out of scope in both directions")
}

func TestReferenceLinesConnectDanglingLinkage(t *testing.T) {
	first := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	first.Successor = Linkage{Kind: LINKAGE_ROAD, ElementID: 99}
	document := newTestDocument([]*Road{first}, nil)

	outcome := runSingleChecker(t, checkerReferenceLinesConnect(), document)
	assert.Zero(t, outcome.IssueCount(), "Dangling linkage is silently absent here")
}

func TestReferenceLinesConnectSkipsMalformedGeometry(t *testing.T) {
	first := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	second := lineRoad(2, 500.0, 500.0, 0.0, 10.0)
	second.geometryOK = false
	linkRoads(first, second)
	document := newTestDocument([]*Road{first, second}, nil)

	outcome := runSingleChecker(t, checkerReferenceLinesConnect(), document)
	assert.Zero(t, outcome.IssueCount(), "Roads with malformed geometry are excluded from comparisons")
}
