package xodrqc

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
)

var versionClausePattern = regexp.MustCompile(`^(>=|<=|>|<)(\d+)\.(\d+)\.(\d+)$`)

func splitVersionClauses(expression string) []string {
	clauses := strings.Split(expression, ",")
	for i := range clauses {
		clauses[i] = strings.ReplaceAll(clauses[i], " ", "")
	}
	return clauses
}

// IsValidVersionExpression reports whether every comma-separated clause is a
// bounded comparison against a full three-part version
func IsValidVersionExpression(expression string) bool {
	for _, clause := range splitVersionClauses(expression) {
		if !versionClausePattern.MatchString(clause) {
			return false
		}
	}
	return true
}

// HasLowerBound reports whether at least one clause bounds the version from
// below, e.g. "<1.0.0,>0.0.1" has one and "<1.0.0" does not
func HasLowerBound(expression string) bool {
	for _, clause := range splitVersionClauses(expression) {
		if strings.HasPrefix(clause, ">") {
			return true
		}
	}
	return false
}

// MatchVersion reports whether the version satisfies every clause of the
// applicable-version expression. The comma acts as a logical AND. Two-part
// versions such as "1.6" are read as "1.6.0".
func MatchVersion(version, expression string) (bool, error) {
	parsed, err := semver.NewVersion(version)
	if err != nil {
		return false, errors.Wrap(err, "Can't parse version")
	}
	constraint, err := semver.NewConstraint(strings.Join(splitVersionClauses(expression), ", "))
	if err != nil {
		return false, errors.Wrap(err, "Can't parse applicable version expression")
	}
	return constraint.Check(parsed), nil
}
