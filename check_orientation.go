package xodrqc

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

func checkerLanesDirection() Checker {
	return Checker{
		ID:                CHECKER_LANES_DIRECTION,
		Description:       "Lanes connected across a road boundary should agree on their traffic direction.",
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run:               runLanesDirection,
	}
}

// referenceLinesReversed classifies the relative orientation of two roads by
// their nearest endpoint pairing: when the closest pair is heads (start-start)
// or tails (end-end) the reference lines run against each other. Comparing
// the four distances against each other needs no tolerance constant; an exact
// tie counts as reversed. Symmetric in its arguments. The boolean is false
// when either road carries no usable geometry.
func referenceLinesReversed(road, other *Road) (bool, bool) {
	heads, tails, startToEnd, endToStart, ok := endpointDistances(road, other)
	if !ok {
		return false, false
	}
	return math.Min(heads, tails) <= math.Min(startToEnd, endToStart), true
}

func runLanesDirection(data *CheckerData) error {
	document := data.Document
	group := errgroup.Group{}
	group.SetLimit(data.Config.Workers)
	for _, road := range document.Roads {
		road := road
		group.Go(func() error {
			checkRoadLanesDirection(data, road)
			return nil
		})
	}
	return group.Wait()
}

func checkRoadLanesDirection(data *CheckerData, road *Road) {
	document := data.Document
	ruleUID := FormatRuleUID("me.net", "1.4.0", "connected_lanes.direction.reversed")
	boundary := append(road.BoundaryLanes(DIRECTION_SUCCESSOR), road.BoundaryLanes(DIRECTION_PREDECESSOR)...)
	for _, lane := range boundary {
		for _, connected := range document.ConnectedLanes(road, lane) {
			if connected.Lane.ID == 0 {
				// Center lanes never participate in connections
				continue
			}
			idSignsReversed := (lane.ID < 0) != (connected.Lane.ID < 0)
			lineReversed, ok := referenceLinesReversed(road, connected.Road)
			if !ok {
				continue
			}
			// Traffic directions collide when exactly one of the two flips
			if idSignsReversed == lineReversed {
				continue
			}
			data.Outcome.AddIssue(Issue{
				RuleUID: ruleUID,
				Description: fmt.Sprintf("Lane %d of road %d connects to lane %d of road %d with a reversed traffic direction.",
					lane.ID, road.ID, connected.Lane.ID, connected.Road.ID),
				Severity: SEVERITY_WARNING,
				Location: lane.Location,
			})
		}
	}
}
