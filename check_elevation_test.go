package xodrqc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func elevatedRoad(id RoadID, z float64) *Road {
	road := lineRoad(id, 0.0, 0.0, 0.0, 10.0)
	road.Elevations = []ElevationRecord{{S: 0.0, Poly: Cubic{A: z}}}
	return road
}

func TestVerticalVarianceSkippedForSingleRoad(t *testing.T) {
	document := newTestDocument([]*Road{elevatedRoad(1, 5.0)}, nil)
	outcome := runSingleChecker(t, checkerVerticalVariance(), document)
	assert.Equal(t, STATUS_SKIPPED, outcome.Status)
	assert.Zero(t, outcome.IssueCount())
}

func TestVerticalVarianceMixedNullElevations(t *testing.T) {
	flat1 := lineRoad(1, 0.0, 0.0, 0.0, 10.0)
	flat2 := lineRoad(2, 0.0, 0.0, 0.0, 10.0)
	raised := elevatedRoad(3, 20.0)
	document := newTestDocument([]*Road{flat1, flat2, raised}, nil)

	outcome := runSingleChecker(t, checkerVerticalVariance(), document)
	// One issue for a road with real elevation plus one per flat road
	assert.Equal(t, 3, outcome.IssueCount())
	for _, issue := range outcome.Issues() {
		assert.Equal(t, SEVERITY_WARNING, issue.Severity)
		assert.Contains(t, issue.Description, "null elevation")
	}
}

func TestVerticalVarianceAllFlat(t *testing.T) {
	document := newTestDocument([]*Road{
		lineRoad(1, 0.0, 0.0, 0.0, 10.0),
		lineRoad(2, 0.0, 0.0, 0.0, 10.0),
	}, nil)
	outcome := runSingleChecker(t, checkerVerticalVariance(), document)
	assert.Zero(t, outcome.IssueCount())
}

func TestVerticalVarianceMidElevationGap(t *testing.T) {
	document := newTestDocument([]*Road{
		elevatedRoad(1, 1.0),
		elevatedRoad(2, 40.0),
		elevatedRoad(3, 400.0),
	}, nil)

	outcome := runSingleChecker(t, checkerVerticalVariance(), document)
	// One gap above 150 between roads 2 and 3, reported on both sides
	require.Equal(t, 2, outcome.IssueCount())
	for _, issue := range outcome.Issues() {
		assert.Contains(t, issue.Description, "large gaps")
		assert.Contains(t, issue.Description, "lower road 2")
		assert.Contains(t, issue.Description, "higher road 3")
		require.NotNil(t, issue.Inertial)
	}
}

func TestVerticalVarianceConfigurableGap(t *testing.T) {
	document := newTestDocument([]*Road{
		elevatedRoad(1, 1.0),
		elevatedRoad(2, 400.0),
	}, nil)

	result := NewResult("test.xodr", "1.6", BundleName, BundleVersion)
	outcome := result.RegisterChecker(CHECKER_VERTICAL_VARIANCE, "")
	config := DefaultConfig()
	config.MaxVerticalRoadGap = 1000.0
	data := &CheckerData{
		Document: document,
		Report:   &ParseReport{},
		Config:   config,
		Outcome:  outcome,
		Logger:   nopLogger(),
	}
	require.NoError(t, runVerticalVariance(data))
	assert.Zero(t, outcome.IssueCount(), "Raising the allowed gap silences the check")
}
