package xodrqc

import (
	"fmt"
	"strings"
)

func checkerReferencedRoadIDExists() Checker {
	return Checker{
		ID:                CHECKER_ROAD_ID_EXISTS,
		Description:       "Every referenced road or junction id must exist.",
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run:               runReferencedRoadIDExists,
	}
}

func runReferencedRoadIDExists(data *CheckerData) error {
	document := data.Document
	ruleUID := FormatRuleUID("me.net", "1.4.0", "roads.id.exists")
	for _, road := range document.Roads {
		for _, direction := range []LinkDirection{DIRECTION_PREDECESSOR, DIRECTION_SUCCESSOR} {
			linkage, ok := road.LinkageAt(direction)
			if !ok {
				continue
			}
			resolved := false
			switch linkage.Kind {
			case LINKAGE_ROAD:
				_, resolved = document.RoadByID(RoadID(linkage.ElementID))
			case LINKAGE_JUNCTION:
				_, resolved = document.JunctionByID(JunctionID(linkage.ElementID))
			}
			if resolved {
				continue
			}
			data.Outcome.AddIssue(Issue{
				RuleUID: ruleUID,
				Description: fmt.Sprintf("Referenced %s %s id does not exist.",
					strings.ToUpper(direction.String()), linkage.Kind.String()),
				Severity: SEVERITY_WARNING,
				Location: linkage.Location,
			})
		}
	}
	for _, junction := range document.Junctions {
		for _, connection := range junction.Connections {
			if _, ok := document.RoadByID(connection.IncomingRoad); !ok {
				data.Outcome.AddIssue(Issue{
					RuleUID:     ruleUID,
					Description: "Referenced incomingRoad does not exist.",
					Severity:    SEVERITY_WARNING,
					Location:    connection.Location,
				})
			}
			if _, ok := document.RoadByID(connection.ConnectingRoad); !ok {
				data.Outcome.AddIssue(Issue{
					RuleUID:     ruleUID,
					Description: "Referenced connectingRoad does not exist.",
					Severity:    SEVERITY_WARNING,
					Location:    connection.Location,
				})
			}
		}
	}
	return nil
}

func checkerReferencedJunctionIDExists() Checker {
	return Checker{
		ID:                CHECKER_JUNCTION_ID_EXISTS,
		Description:       "The junction attribute of a road must name an existing junction.",
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run: func(data *CheckerData) error {
			ruleUID := FormatRuleUID("mobileye.com", "1.4.0", "junctions.id.exists")
			for _, road := range data.Document.Roads {
				if !road.BelongsToJunction() {
					continue
				}
				if _, ok := data.Document.JunctionByID(road.Junction); ok {
					continue
				}
				data.Outcome.AddIssue(Issue{
					RuleUID:     ruleUID,
					Description: "Referenced junction does not exist.",
					Severity:    SEVERITY_WARNING,
					Location:    road.Location,
				})
			}
			return nil
		},
	}
}
