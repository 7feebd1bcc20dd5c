package xodrqc

import (
	"encoding/xml"
	"os"

	"github.com/pkg/errors"
)

// XML report structures following the checker-result layout of the quality
// framework: one CheckerBundle with one Checker element per registered
// checker, each carrying its issues with their locations.

type xqarReport struct {
	XMLName xml.Name   `xml:"CheckerResults"`
	Version string     `xml:"version,attr"`
	Bundle  xqarBundle `xml:"CheckerBundle"`
}

type xqarBundle struct {
	Name     string        `xml:"name,attr"`
	Version  string        `xml:"version,attr"`
	File     string        `xml:"file,attr"`
	Checkers []xqarChecker `xml:"Checker"`
}

type xqarChecker struct {
	CheckerID   string      `xml:"checkerId,attr"`
	Description string      `xml:"description,attr"`
	Status      string      `xml:"status,attr"`
	Summary     string      `xml:"summary,attr,omitempty"`
	Issues      []xqarIssue `xml:"Issue"`
}

type xqarIssue struct {
	RuleUID     string        `xml:"ruleUID,attr"`
	Description string        `xml:"description,attr"`
	Level       uint8         `xml:"level,attr"`
	Locations   *xqarLocation `xml:"Locations,omitempty"`
}

type xqarLocation struct {
	XML      *xqarXMLLocation      `xml:"XMLLocation,omitempty"`
	File     *xqarFileLocation     `xml:"FileLocation,omitempty"`
	Inertial *xqarInertialLocation `xml:"InertialLocation,omitempty"`
}

type xqarXMLLocation struct {
	XPath string `xml:"xpath,attr"`
}

type xqarFileLocation struct {
	Row    int `xml:"row,attr"`
	Column int `xml:"column,attr"`
}

type xqarInertialLocation struct {
	X float64 `xml:"x,attr"`
	Y float64 `xml:"y,attr"`
	Z float64 `xml:"z,attr"`
}

func issueLocations(issue Issue) *xqarLocation {
	locations := &xqarLocation{}
	filled := false
	if issue.Location.XPath != "" {
		locations.XML = &xqarXMLLocation{XPath: issue.Location.XPath}
		filled = true
	}
	if issue.Location.Row > 0 {
		locations.File = &xqarFileLocation{Row: issue.Location.Row, Column: issue.Location.Column}
		filled = true
	}
	if issue.Inertial != nil {
		locations.Inertial = &xqarInertialLocation{X: issue.Inertial.X, Y: issue.Inertial.Y, Z: issue.Inertial.Z}
		filled = true
	}
	if !filled {
		return nil
	}
	return locations
}

// PrepareXMLReport renders a finished run as the XML report document
func PrepareXMLReport(result *Result) ([]byte, error) {
	report := xqarReport{
		Version: BundleVersion,
		Bundle: xqarBundle{
			Name:    result.BundleName,
			Version: result.BundleVersion,
			File:    result.FileName,
		},
	}
	for _, outcome := range result.Outcomes() {
		checker := xqarChecker{
			CheckerID:   outcome.CheckerID,
			Description: outcome.Description,
			Status:      outcome.Status.String(),
			Summary:     outcome.StatusDetail,
		}
		for _, issue := range outcome.Issues() {
			checker.Issues = append(checker.Issues, xqarIssue{
				RuleUID:     issue.RuleUID,
				Description: issue.Description,
				Level:       uint8(issue.Severity),
				Locations:   issueLocations(issue),
			})
		}
		report.Bundle.Checkers = append(report.Bundle.Checkers, checker)
	}
	data, err := xml.MarshalIndent(report, "", "    ")
	if err != nil {
		return nil, errors.Wrap(err, "Can't render xml report")
	}
	return append([]byte(xml.Header), data...), nil
}

// SaveXMLReport writes the XML report of a run to the given file
func SaveXMLReport(result *Result, fileName string) error {
	data, err := PrepareXMLReport(result)
	if err != nil {
		return err
	}
	if err := os.WriteFile(fileName, data, 0644); err != nil {
		return errors.Wrap(err, "Can't write report file")
	}
	return nil
}
