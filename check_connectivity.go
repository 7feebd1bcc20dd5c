package xodrqc

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// connectivityTolerance is the largest accepted distance, in map length
// units, between the closest reference-line endpoints of two declaredly
// linked roads
const connectivityTolerance = 0.001

func checkerReferenceLinesConnect() Checker {
	return Checker{
		ID:                CHECKER_REFERENCE_LINES_CONNECT,
		Description:       "When roads connect as successors/predecessors their reference lines must connect as well.",
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run:               runReferenceLinesConnect,
	}
}

// endpointDistances returns the four pairwise distances between the
// reference-line endpoints of two roads: heads (start-start), tails
// (end-end) and the two crossed pairings. The boolean is false when either
// road carries no usable geometry.
func endpointDistances(road, other *Road) (heads, tails, startToEnd, endToStart float64, ok bool) {
	roadStart, roadEnd, okRoad := road.Endpoints()
	otherStart, otherEnd, okOther := other.Endpoints()
	if !okRoad || !okOther {
		return 0, 0, 0, 0, false
	}
	heads = euclideanDistance(roadStart, otherStart)
	tails = euclideanDistance(roadEnd, otherEnd)
	startToEnd = euclideanDistance(roadStart, otherEnd)
	endToStart = euclideanDistance(roadEnd, otherStart)
	return heads, tails, startToEnd, endToStart, true
}

func runReferenceLinesConnect(data *CheckerData) error {
	document := data.Document
	group := errgroup.Group{}
	group.SetLimit(data.Config.Workers)
	for _, road := range document.Roads {
		road := road
		group.Go(func() error {
			for _, direction := range []LinkDirection{DIRECTION_PREDECESSOR, DIRECTION_SUCCESSOR} {
				paired, ok := document.PairedRoad(road, direction)
				if !ok {
					continue
				}
				// Junction-interior roads meet the junction's own connecting
				// geometry, not the reference line directly. The pair is out
				// of scope whichever side is inside the junction.
				if road.BelongsToJunction() || paired.BelongsToJunction() {
					continue
				}
				heads, tails, startToEnd, endToStart, ok := endpointDistances(road, paired)
				if !ok {
					continue
				}
				closest := math.Min(math.Min(heads, tails), math.Min(startToEnd, endToStart))
				if closest <= connectivityTolerance {
					continue
				}
				issue := Issue{
					RuleUID: FormatRuleUID("asam.net", "1.4.0", "road.geometry.referece_lines_connect_along_paired_roads"),
					Description: fmt.Sprintf("Reference line does not connect for road %s and its %s road %s.",
						road.DisplayName(), strings.ToUpper(direction.String()), paired.DisplayName()),
					Severity: SEVERITY_ERROR,
					Location: road.Location,
				}
				if start, end, ok := road.Endpoints(); ok {
					if direction == DIRECTION_SUCCESSOR {
						issue.Inertial = &end
					} else {
						issue.Inertial = &start
					}
				}
				data.Outcome.AddIssue(issue)
			}
			return nil
		})
	}
	return group.Wait()
}
