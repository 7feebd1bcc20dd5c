package xodrqc

import (
	"fmt"
	"sort"
)

func checkerVerticalVariance() Checker {
	return Checker{
		ID:                CHECKER_VERTICAL_VARIANCE,
		Description:       "The central elevations of the roads must not vary in a suspicious way.",
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run:               runVerticalVariance,
	}
}

func runVerticalVariance(data *CheckerData) error {
	document := data.Document
	if len(document.Roads) < 2 {
		data.Outcome.Status = STATUS_SKIPPED
		data.Outcome.StatusDetail = "Map has less than 2 roads."
		return nil
	}
	checkPartlyEmptyElevations(data)
	checkMidElevationGaps(data)
	return nil
}

func elevationIssue(data *CheckerData, road *Road, description string) {
	issue := Issue{
		RuleUID:     FormatRuleUID("mobileye.com", "1.4.0", "road_smoothness_vertical_variance"),
		Description: description,
		Severity:    SEVERITY_WARNING,
		Location:    road.ElevationLocation,
	}
	if midpoint, ok := road.PointAt(road.TotalLength() / 2.0); ok {
		issue.Inertial = &midpoint
	}
	data.Outcome.AddIssue(issue)
}

// checkPartlyEmptyElevations warns when a map mixes roads that carry an
// elevation profile with roads that are flat at zero. One issue points at a
// road with real elevation, one more at every flat road.
func checkPartlyEmptyElevations(data *CheckerData) {
	var nonEmpty []*Road
	var empty []*Road
	for _, road := range data.Document.Roads {
		if road.HasZeroElevation() {
			empty = append(empty, road)
		} else {
			nonEmpty = append(nonEmpty, road)
		}
	}
	if len(nonEmpty) == 0 || len(empty) == 0 {
		return
	}
	data.Logger.Debugf("%d roads with null elevation next to %d roads with real elevation", len(empty), len(nonEmpty))
	elevationIssue(data, nonEmpty[0],
		"Should not have roads with null elevation in a map that has non-zero elevations (nonzero elevation road).")
	for _, road := range empty {
		elevationIssue(data, road,
			"Should not have roads with null elevation in a map that has non-zero elevations (null elevation road).")
	}
}

// checkMidElevationGaps sorts the road mid-point elevations and warns for
// every adjacent gap larger than the configured maximum
func checkMidElevationGaps(data *CheckerData) {
	type midElevation struct {
		road *Road
		z    float64
	}
	elevations := make([]midElevation, 0, len(data.Document.Roads))
	for _, road := range data.Document.Roads {
		elevations = append(elevations, midElevation{
			road: road,
			z:    road.elevationAt(road.TotalLength() / 2.0),
		})
	}
	sort.Slice(elevations, func(i, j int) bool { return elevations[i].z < elevations[j].z })
	for i := 1; i < len(elevations); i++ {
		lower, higher := elevations[i-1], elevations[i]
		gap := higher.z - lower.z
		if gap <= data.Config.MaxVerticalRoadGap {
			continue
		}
		description := fmt.Sprintf(
			"Should not have large gaps between elevations of different roads (gap=%g between lower road %d and higher road %d).",
			gap, lower.road.ID, higher.road.ID)
		elevationIssue(data, lower.road, description)
		elevationIssue(data, higher.road, description)
	}
}
