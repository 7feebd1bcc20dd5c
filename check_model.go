package xodrqc

func checkerModelAttributesParse() Checker {
	return Checker{
		ID:            CHECKER_MODEL_ATTRIBUTES_PARSE,
		Description:   "Every numeric attribute of the road network must parse as a finite typed value.",
		Preconditions: basicPreconditions,
		Run: func(data *CheckerData) error {
			ruleUID := FormatRuleUID("me.net", "1.0.0", "model.attributes_parse_strictly")
			for _, malformed := range data.Report.Malformed {
				data.Outcome.AddIssue(Issue{
					RuleUID:     ruleUID,
					Description: malformed.Description,
					Severity:    SEVERITY_ERROR,
					Location:    malformed.Location,
				})
			}
			return nil
		},
	}
}
