package xodrqc

import "fmt"

func checkerValidXMLDocument() Checker {
	return Checker{
		ID:          CHECKER_VALID_XML_DOCUMENT,
		Description: "The input file must be a valid XML document.",
		Run: func(data *CheckerData) error {
			if data.Report.XMLError == nil {
				return nil
			}
			data.Outcome.AddIssue(Issue{
				RuleUID:     FormatRuleUID("asam.net", "1.0.0", "xml.valid_xml_document"),
				Description: fmt.Sprintf("The input file is not a valid xml document: %s.", data.Report.XMLError.Error()),
				Severity:    SEVERITY_ERROR,
				Location:    Location{Row: data.Report.XMLErrorLine},
			})
			return nil
		},
	}
}

func checkerRootTagIsOpenDRIVE() Checker {
	return Checker{
		ID:            CHECKER_ROOT_TAG_IS_OPENDRIVE,
		Description:   "The root element of the input file must be OpenDRIVE.",
		Preconditions: []string{CHECKER_VALID_XML_DOCUMENT},
		Run: func(data *CheckerData) error {
			if data.Report.RootTag == "OpenDRIVE" {
				return nil
			}
			data.Outcome.AddIssue(Issue{
				RuleUID:     FormatRuleUID("asam.net", "1.0.0", "xml.root_tag_is_opendrive"),
				Description: fmt.Sprintf("Root element %q is not OpenDRIVE.", data.Report.RootTag),
				Severity:    SEVERITY_ERROR,
				Location:    data.Report.RootLocation,
			})
			return nil
		},
	}
}

func checkerFileheaderIsPresent() Checker {
	return Checker{
		ID:            CHECKER_FILEHEADER_IS_PRESENT,
		Description:   "The input file must contain a header element.",
		Preconditions: []string{CHECKER_VALID_XML_DOCUMENT, CHECKER_ROOT_TAG_IS_OPENDRIVE},
		Run: func(data *CheckerData) error {
			if data.Report.HeaderFound {
				return nil
			}
			data.Outcome.AddIssue(Issue{
				RuleUID:     FormatRuleUID("asam.net", "1.0.0", "xml.fileheader_is_present"),
				Description: "Root element does not contain a header element.",
				Severity:    SEVERITY_ERROR,
				Location:    data.Report.RootLocation,
			})
			return nil
		},
	}
}

func checkerVersionIsDefined() Checker {
	return Checker{
		ID:            CHECKER_VERSION_IS_DEFINED,
		Description:   "The header element must define a parsable revMajor/revMinor version.",
		Preconditions: []string{CHECKER_VALID_XML_DOCUMENT, CHECKER_ROOT_TAG_IS_OPENDRIVE, CHECKER_FILEHEADER_IS_PRESENT},
		Run: func(data *CheckerData) error {
			if data.Report.VersionOK {
				return nil
			}
			data.Outcome.AddIssue(Issue{
				RuleUID: FormatRuleUID("asam.net", "1.0.0", "xml.version_is_defined"),
				Description: fmt.Sprintf("Header attributes revMajor=%q revMinor=%q do not parse as integers.",
					data.Report.RevMajorRaw, data.Report.RevMinorRaw),
				Severity: SEVERITY_ERROR,
				Location: data.Report.HeaderLocation,
			})
			return nil
		},
	}
}
