package xodrqc

func checkerIncomingRoadsNumber() Checker {
	return Checker{
		ID:                CHECKER_INCOMING_ROADS_NUMBER,
		Description:       "Junctions should have at least 2 distinct incoming roads.",
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run: func(data *CheckerData) error {
			ruleUID := FormatRuleUID("me.net", "1.4.0", "junctions.incoming_roads_number")
			for _, junction := range data.Document.Junctions {
				if len(junction.IncomingRoads()) >= 2 {
					continue
				}
				data.Outcome.AddIssue(Issue{
					RuleUID:     ruleUID,
					Description: "Junction does not contain at least 2 incoming roads.",
					Severity:    SEVERITY_INFORMATION,
					Location:    junction.Location,
				})
			}
			return nil
		},
	}
}

// connectionChecks walks every junction connection whose contact point matches
// and whose connecting road resolves
func connectionChecks(document *Document, contactPoint ContactPoint, visit func(connection *Connection, connecting *Road)) {
	for _, junction := range document.Junctions {
		for _, connection := range junction.Connections {
			if connection.ContactPoint != contactPoint {
				continue
			}
			connecting, ok := document.RoadByID(connection.ConnectingRoad)
			if !ok {
				continue
			}
			visit(connection, connecting)
		}
	}
}

func checkerConnectionStartAlongLinkage() Checker {
	return Checker{
		ID:                CHECKER_CONNECTION_START_ALONG,
		Description:       `The value "start" shall be used to indicate that the connecting road runs along the direction of the linkage indicated in the element.`,
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run: func(data *CheckerData) error {
			ruleUID := FormatRuleUID("asam.net", "1.7.0", "junctions.connection.start_along_linkage")
			connectionChecks(data.Document, CONTACT_POINT_START, func(connection *Connection, connecting *Road) {
				linkage, ok := connecting.LinkageAt(DIRECTION_PREDECESSOR)
				if !ok || linkage.Kind != LINKAGE_ROAD {
					return
				}
				if RoadID(linkage.ElementID) == connection.IncomingRoad {
					return
				}
				issue := Issue{
					RuleUID:     ruleUID,
					Description: `The value 'start' shall be used to indicate that the connecting road runs along the direction of the linkage indicated in the element.`,
					Severity:    SEVERITY_ERROR,
					Location:    connection.Location,
				}
				if start, _, ok := connecting.Endpoints(); ok {
					issue.Inertial = &start
				}
				data.Outcome.AddIssue(issue)
			})
			return nil
		},
	}
}

func checkerConnectionEndOppositeLinkage() Checker {
	return Checker{
		ID:                CHECKER_CONNECTION_END_OPPOSITE,
		Description:       `The value "end" shall be used to indicate that the connecting road runs along the opposite direction of the linkage indicated in the element.`,
		ApplicableVersion: ">=1.4.0,<2.0.0",
		RequiresDocument:  true,
		Preconditions:     basicPreconditions,
		Run: func(data *CheckerData) error {
			ruleUID := FormatRuleUID("asam.net", "1.7.0", "junctions.connection.end_opposite_linkage")
			connectionChecks(data.Document, CONTACT_POINT_END, func(connection *Connection, connecting *Road) {
				linkage, ok := connecting.LinkageAt(DIRECTION_SUCCESSOR)
				if !ok || linkage.Kind != LINKAGE_ROAD {
					return
				}
				if RoadID(linkage.ElementID) == connection.IncomingRoad {
					return
				}
				issue := Issue{
					RuleUID:     ruleUID,
					Description: `The value 'end' shall be used to indicate that the connecting road runs along the opposite direction of the linkage indicated in the element.`,
					Severity:    SEVERITY_ERROR,
					Location:    connection.Location,
				}
				if _, end, ok := connecting.Endpoints(); ok {
					issue.Inertial = &end
				}
				data.Outcome.AddIssue(issue)
			})
			return nil
		},
	}
}
