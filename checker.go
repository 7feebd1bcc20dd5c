package xodrqc

import (
	"go.uber.org/zap"
)

const (
	// BundleName identifies this checker bundle in reports
	BundleName = "xodrqc"
	// BundleVersion is the released version of the bundle
	BundleVersion = "1.0.0"
)

// Checker identifiers, used for precondition wiring and report lookups
const (
	CHECKER_VALID_XML_DOCUMENT      = "valid_xml_document"
	CHECKER_ROOT_TAG_IS_OPENDRIVE   = "root_tag_is_opendrive"
	CHECKER_FILEHEADER_IS_PRESENT   = "fileheader_is_present"
	CHECKER_VERSION_IS_DEFINED      = "version_is_defined"
	CHECKER_VALID_SCHEMA            = "valid_schema"
	CHECKER_MODEL_ATTRIBUTES_PARSE  = "model_attributes_parse"
	CHECKER_ROAD_ID_EXISTS          = "referenced_road_id_exists"
	CHECKER_JUNCTION_ID_EXISTS      = "referenced_junction_id_exists"
	CHECKER_INCOMING_ROADS_NUMBER   = "junctions_incoming_roads_number"
	CHECKER_CONNECTION_START_ALONG  = "junctions_connection_start_along_linkage"
	CHECKER_CONNECTION_END_OPPOSITE = "junctions_connection_end_opposite_linkage"
	CHECKER_REFERENCE_LINES_CONNECT = "connected_roads_connect_reference_lines"
	CHECKER_LANES_DIRECTION         = "lanes_connect_with_reversed_direction"
	CHECKER_VERTICAL_VARIANCE       = "road_smoothness_vertical_variance"
)

// basicPreconditions gate every checker that needs a trustworthy document
var basicPreconditions = []string{
	CHECKER_VALID_XML_DOCUMENT,
	CHECKER_ROOT_TAG_IS_OPENDRIVE,
	CHECKER_FILEHEADER_IS_PRESENT,
	CHECKER_VERSION_IS_DEFINED,
	CHECKER_VALID_SCHEMA,
}

// CheckerData is handed to every checker run. Document may be nil when the
// input was not well-formed XML; the basic checkers guard that through their
// precondition chain.
type CheckerData struct {
	Input    []byte
	Document *Document
	Report   *ParseReport
	Config   *Config
	Outcome  *CheckerOutcome
	Logger   *zap.SugaredLogger
}

// Checker couples one rule implementation with the metadata the runner needs
// to decide whether and when to execute it
type Checker struct {
	ID          string
	Description string
	// ApplicableVersion is a comma-separated clause expression such as
	// ">=1.4.0,<2.0.0"; empty applies to every input version
	ApplicableVersion string
	// Preconditions name checkers that must have completed without
	// error-severity findings before this one runs
	Preconditions []string
	// RequiresDocument skips the checker when no document could be built,
	// which matters when preconditions are force-ignored
	RequiresDocument bool
	Run              func(data *CheckerData) error
}

// DefaultCheckers returns the full bundle in registration order: document
// health first, then referential integrity, then the geometric and semantic
// rules that depend on both
func DefaultCheckers() []Checker {
	return []Checker{
		checkerValidXMLDocument(),
		checkerRootTagIsOpenDRIVE(),
		checkerFileheaderIsPresent(),
		checkerVersionIsDefined(),
		checkerValidSchema(),
		checkerModelAttributesParse(),
		checkerReferencedRoadIDExists(),
		checkerReferencedJunctionIDExists(),
		checkerIncomingRoadsNumber(),
		checkerConnectionStartAlongLinkage(),
		checkerConnectionEndOppositeLinkage(),
		checkerReferenceLinesConnect(),
		checkerLanesDirection(),
		checkerVerticalVariance(),
	}
}

// Bundle executes a fixed set of checkers over one loaded document
type Bundle struct {
	config   *Config
	checkers []Checker
	logger   *zap.SugaredLogger
}

// NewBundle prepares the default checker set with the given parameters
func NewBundle(config *Config, options ...func(*Bundle)) *Bundle {
	bundle := &Bundle{
		config:   config,
		checkers: DefaultCheckers(),
		logger:   zap.NewNop().Sugar(),
	}
	for _, option := range options {
		option(bundle)
	}
	return bundle
}

// WithBundleLogger sets the logger used by the runner and the checkers
func WithBundleLogger(logger *zap.SugaredLogger) func(*Bundle) {
	return func(bundle *Bundle) {
		bundle.logger = logger
	}
}

// WithCheckers replaces the default checker set, e.g. to run a subset
func WithCheckers(checkers []Checker) func(*Bundle) {
	return func(bundle *Bundle) {
		bundle.checkers = checkers
	}
}

// preconditionsHold reports whether every named precondition checker either
// completed without error-severity findings or was skipped. A skipped
// precondition found nothing, so it does not block downstream checkers.
func preconditionsHold(result *Result, preconditions []string) bool {
	for _, checkerID := range preconditions {
		outcome, ok := result.OutcomeByChecker(checkerID)
		if !ok {
			continue
		}
		if outcome.Status == STATUS_ERROR {
			return false
		}
		if outcome.Status == STATUS_COMPLETED && outcome.CountBySeverity(SEVERITY_ERROR) > 0 {
			return false
		}
	}
	return true
}

// Execute runs every checker in registration order over one input. The input
// bytes, the document and the parse report come from the Loader; document may
// be nil for non-XML input. Checkers never abort the run: a panic-free failed
// checker lands in its outcome status and the remaining checkers still run.
func (bundle *Bundle) Execute(fileName string, input []byte, document *Document, report *ParseReport) *Result {
	version := ""
	if document != nil {
		version = document.Version
	}
	result := NewResult(fileName, version, BundleName, BundleVersion)
	for _, checker := range bundle.checkers {
		outcome := result.RegisterChecker(checker.ID, checker.Description)
		if !bundle.config.IgnorePreconditions && !preconditionsHold(result, checker.Preconditions) {
			outcome.Status = STATUS_SKIPPED
			outcome.StatusDetail = "Preconditions are not fulfilled."
			bundle.logger.Debugf("Checker '%s' skipped: preconditions are not fulfilled", checker.ID)
			continue
		}
		if checker.RequiresDocument && document == nil {
			outcome.Status = STATUS_SKIPPED
			outcome.StatusDetail = "Input document is not available."
			continue
		}
		if checker.ApplicableVersion != "" {
			if version == "" {
				outcome.Status = STATUS_SKIPPED
				outcome.StatusDetail = "Input version is unknown."
				continue
			}
			matched, err := MatchVersion(version, checker.ApplicableVersion)
			if err != nil {
				outcome.Status = STATUS_ERROR
				outcome.StatusDetail = err.Error()
				continue
			}
			if !matched {
				outcome.Status = STATUS_SKIPPED
				outcome.StatusDetail = "Input version is out of the applicable range " + checker.ApplicableVersion + "."
				continue
			}
		}
		data := &CheckerData{
			Input:    input,
			Document: document,
			Report:   report,
			Config:   bundle.config,
			Outcome:  outcome,
			Logger:   bundle.logger,
		}
		bundle.logger.Debugf("Executing checker '%s'", checker.ID)
		if err := checker.Run(data); err != nil {
			outcome.Status = STATUS_ERROR
			outcome.StatusDetail = err.Error()
			bundle.logger.Warnf("Checker '%s' failed: %s", checker.ID, err.Error())
			continue
		}
		// A checker may have marked itself skipped from inside Run
		if outcome.Status == 0 {
			outcome.Status = STATUS_COMPLETED
		}
	}
	return result
}
