package xodrqc

import (
	"fmt"
	"sync"
)

// Severity grades a finding. Smaller values are more severe, matching the
// numeric levels of the XQAR report format.
type Severity uint8

const (
	SEVERITY_ERROR = Severity(iota + 1)
	SEVERITY_WARNING
	SEVERITY_INFORMATION
)

func (iotaIdx Severity) String() string {
	return [...]string{"error", "warning", "information"}[iotaIdx-1]
}

// CheckerStatus is the lifecycle outcome of one checker run
type CheckerStatus uint8

const (
	STATUS_COMPLETED = CheckerStatus(iota + 1)
	STATUS_SKIPPED
	STATUS_ERROR
)

func (iotaIdx CheckerStatus) String() string {
	return [...]string{"completed", "skipped", "error"}[iotaIdx-1]
}

// Location points at the XML element a finding refers to. XPath addresses the
// element in document order, Row/Column its position in the source file.
type Location struct {
	XPath  string
	Row    int
	Column int
}

// Issue is a single finding produced by a checker
type Issue struct {
	RuleUID     string
	Description string
	Severity    Severity
	Location    Location
	// Inertial carries map coordinates for findings that have a natural
	// position, so downstream viewers can jump there.
	Inertial *Point3D
}

// FormatRuleUID renders a rule identifier from its parts, e.g.
// "asam.net:xodr:1.4.0:road.link.connected_roads_connect_in_the_inertial_space"
func FormatRuleUID(registrar, version, name string) string {
	return fmt.Sprintf("%s:xodr:%s:%s", registrar, version, name)
}

// CheckerOutcome aggregates the findings and final status of one checker.
// AddIssue may be called from multiple goroutines.
type CheckerOutcome struct {
	CheckerID   string
	Description string
	Status      CheckerStatus
	// StatusDetail explains a skipped or errored run
	StatusDetail string

	mu     sync.Mutex
	issues []Issue
}

// AddIssue appends a finding
func (outcome *CheckerOutcome) AddIssue(issue Issue) {
	outcome.mu.Lock()
	outcome.issues = append(outcome.issues, issue)
	outcome.mu.Unlock()
}

// Issues returns a copy of the collected findings
func (outcome *CheckerOutcome) Issues() []Issue {
	outcome.mu.Lock()
	defer outcome.mu.Unlock()
	issues := make([]Issue, len(outcome.issues))
	copy(issues, outcome.issues)
	return issues
}

// IssueCount returns the number of collected findings
func (outcome *CheckerOutcome) IssueCount() int {
	outcome.mu.Lock()
	defer outcome.mu.Unlock()
	return len(outcome.issues)
}

// CountBySeverity returns the number of findings at the given severity
func (outcome *CheckerOutcome) CountBySeverity(severity Severity) int {
	outcome.mu.Lock()
	defer outcome.mu.Unlock()
	count := 0
	for i := range outcome.issues {
		if outcome.issues[i].Severity == severity {
			count++
		}
	}
	return count
}

// Result is the aggregate of one bundle run over one input file
type Result struct {
	FileName      string
	InputVersion  string
	BundleName    string
	BundleVersion string

	mu       sync.Mutex
	outcomes []*CheckerOutcome
	byID     map[string]*CheckerOutcome
}

// NewResult prepares an empty result for the given input file
func NewResult(fileName, inputVersion, bundleName, bundleVersion string) *Result {
	return &Result{
		FileName:      fileName,
		InputVersion:  inputVersion,
		BundleName:    bundleName,
		BundleVersion: bundleVersion,
		byID:          make(map[string]*CheckerOutcome),
	}
}

// RegisterChecker creates and tracks the outcome slot for one checker
func (result *Result) RegisterChecker(checkerID, description string) *CheckerOutcome {
	outcome := &CheckerOutcome{
		CheckerID:   checkerID,
		Description: description,
	}
	result.mu.Lock()
	result.outcomes = append(result.outcomes, outcome)
	result.byID[checkerID] = outcome
	result.mu.Unlock()
	return outcome
}

// OutcomeByChecker returns the outcome slot registered for the given checker
func (result *Result) OutcomeByChecker(checkerID string) (*CheckerOutcome, bool) {
	result.mu.Lock()
	defer result.mu.Unlock()
	outcome, ok := result.byID[checkerID]
	return outcome, ok
}

// Outcomes returns the outcomes in registration order
func (result *Result) Outcomes() []*CheckerOutcome {
	result.mu.Lock()
	defer result.mu.Unlock()
	outcomes := make([]*CheckerOutcome, len(result.outcomes))
	copy(outcomes, result.outcomes)
	return outcomes
}

// TotalIssues returns the number of findings across all checkers
func (result *Result) TotalIssues() int {
	total := 0
	for _, outcome := range result.Outcomes() {
		total += outcome.IssueCount()
	}
	return total
}

// WorstSeverity returns the most severe finding level present. The boolean is
// false when the run produced no findings at all.
func (result *Result) WorstSeverity() (Severity, bool) {
	worst := Severity(0)
	for _, outcome := range result.Outcomes() {
		for _, issue := range outcome.Issues() {
			if worst == 0 || issue.Severity < worst {
				worst = issue.Severity
			}
		}
	}
	return worst, worst != 0
}
