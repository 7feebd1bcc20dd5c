package xodrqc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacoelho/xsd"
	xsderrors "github.com/jacoelho/xsd/xsderrors"
	"github.com/pkg/errors"
)

func checkerValidSchema() Checker {
	return Checker{
		ID:               CHECKER_VALID_SCHEMA,
		Description:      "The input file must be valid according to the version-matching OpenDRIVE schema.",
		RequiresDocument: true,
		Preconditions: []string{
			CHECKER_VALID_XML_DOCUMENT,
			CHECKER_ROOT_TAG_IS_OPENDRIVE,
			CHECKER_FILEHEADER_IS_PRESENT,
			CHECKER_VERSION_IS_DEFINED,
		},
		Run: runValidSchema,
	}
}

func runValidSchema(data *CheckerData) error {
	if data.Config.SchemaDir == "" {
		data.Outcome.Status = STATUS_SKIPPED
		data.Outcome.StatusDetail = "No schema directory configured."
		return nil
	}
	schemaFile := data.Document.SchemaLocation()
	if schemaFile == "" {
		data.Outcome.Status = STATUS_SKIPPED
		data.Outcome.StatusDetail = "Input version does not map onto a schema file."
		return nil
	}
	schemaPath := filepath.Join(data.Config.SchemaDir, schemaFile)
	if _, err := os.Stat(schemaPath); err != nil {
		data.Outcome.Status = STATUS_SKIPPED
		data.Outcome.StatusDetail = fmt.Sprintf("Schema file '%s' is not available.", schemaPath)
		return nil
	}
	schema, err := xsd.LoadFile(schemaPath)
	if err != nil {
		return errors.Wrap(err, "Can't compile schema")
	}
	err = schema.Validate(bytes.NewReader(data.Input))
	if err == nil {
		return nil
	}
	violations, ok := xsderrors.AsValidations(err)
	if !ok {
		return errors.Wrap(err, "Can't validate against schema")
	}
	ruleUID := FormatRuleUID("asam.net", "1.0.0", "xml.valid_schema")
	for _, violation := range violations {
		severity := SEVERITY_ERROR
		if data.Config.LenientSchema {
			lenient, keep := lenientSchemaSeverity(violation)
			if !keep {
				continue
			}
			severity = lenient
		}
		data.Outcome.AddIssue(Issue{
			RuleUID:     ruleUID,
			Description: violation.Message,
			Severity:    severity,
			Location: Location{
				XPath:  violation.Path,
				Row:    violation.Line,
				Column: violation.Column,
			},
		})
	}
	return nil
}

// lenientSchemaSeverity filters schema violations that map tooling is known to
// emit without harming consumers. Traffic-island fill types and junction
// userData payloads are dropped entirely; zero object lengths and sOffset
// values a rounding error below zero are downgraded to warnings.
func lenientSchemaSeverity(violation xsderrors.Validation) (Severity, bool) {
	message := violation.Message
	switch {
	case strings.Contains(message, "trafficIsland"):
		return 0, false
	case strings.Contains(violation.Path, "userData"):
		return 0, false
	case strings.Contains(message, "'length'") && strings.Contains(message, "minExclusive"):
		return SEVERITY_WARNING, true
	case strings.Contains(message, "'sOffset'") && strings.Contains(message, "minInclusive"):
		return SEVERITY_WARNING, true
	}
	return SEVERITY_ERROR, true
}
