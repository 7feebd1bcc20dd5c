package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xodrqc/xodrqc"
	"go.uber.org/zap"
)

var (
	inputFileName = flag.String("file", "", "Filename of the *.xodr OpenDRIVE file to check")
	configFile    = flag.String("config", "", "Optional YAML configuration file; flags override its values")
	reportFile    = flag.String("report", "", "Filename of the XML report output (skipped when empty)")
	geojsonFile   = flag.String("geojson", "", "Filename of the GeoJSON findings output (skipped when empty)")
	schemaDir     = flag.String("schema-dir", "", "Directory with per-version schema files named like opendrive_16.xsd")
	lenientSchema = flag.Bool("lenient-schema", false, "Downgrade or drop known benign schema violations")
	ignorePrecond = flag.Bool("ignore-preconditions", false, "Run every checker even when its preconditions failed")
	workers       = flag.Int("workers", 0, "Per-road parallelism of the geometric checkers (0 keeps the default)")
	verbose       = flag.Bool("verbose", false, "Enable debug logging")
)

// exit codes: 0 clean, 1 error-severity findings, 2 run failure
func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	config := xodrqc.DefaultConfig()
	if *configFile != "" {
		loaded, err := xodrqc.LoadConfig(*configFile)
		if err != nil {
			fmt.Println(err)
			return 2
		}
		config = loaded
	}
	if *inputFileName != "" {
		config.FileName = *inputFileName
	}
	if *reportFile != "" {
		config.ReportFile = *reportFile
	}
	if *geojsonFile != "" {
		config.GeoJSONFile = *geojsonFile
	}
	if *schemaDir != "" {
		config.SchemaDir = *schemaDir
	}
	if *lenientSchema {
		config.LenientSchema = true
	}
	if *ignorePrecond {
		config.IgnorePreconditions = true
	}
	if *workers > 0 {
		config.Workers = *workers
	}
	if config.FileName == "" {
		fmt.Println("No input file given, see -h for usage")
		return 2
	}

	zapConfig := zap.NewProductionConfig()
	if *verbose {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Println(err)
		return 2
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	loader := xodrqc.NewLoader(config.FileName, xodrqc.WithLoaderLogger(logger))
	input, err := os.ReadFile(config.FileName)
	if err != nil {
		logger.Errorf("Can't read input file: %s", err.Error())
		return 2
	}
	document, report := loader.LoadBytes(input)

	bundle := xodrqc.NewBundle(config, xodrqc.WithBundleLogger(logger))
	result := bundle.Execute(config.FileName, input, document, report)

	for _, outcome := range result.Outcomes() {
		logger.Infof("Checker '%s': %s, %d issue(s)", outcome.CheckerID, outcome.Status.String(), outcome.IssueCount())
		for _, issue := range outcome.Issues() {
			if issue.Inertial != nil {
				logger.Debugf("  [%s] %s at %s", issue.Severity.String(), issue.Description, xodrqc.PrepareWKTPoint(*issue.Inertial))
			} else {
				logger.Debugf("  [%s] %s", issue.Severity.String(), issue.Description)
			}
		}
	}

	if config.ReportFile != "" {
		if err := xodrqc.SaveXMLReport(result, config.ReportFile); err != nil {
			logger.Errorf("Can't save report: %s", err.Error())
			return 2
		}
		logger.Infof("Report written to '%s'", config.ReportFile)
	}
	if config.GeoJSONFile != "" {
		if err := xodrqc.SaveGeoJSONFindings(result, config.GeoJSONFile); err != nil {
			logger.Errorf("Can't save geojson findings: %s", err.Error())
			return 2
		}
		logger.Infof("GeoJSON findings written to '%s'", config.GeoJSONFile)
	}

	worst, found := result.WorstSeverity()
	if found {
		logger.Infof("Finished with %d issue(s), worst severity '%s'", result.TotalIssues(), worst.String())
	} else {
		logger.Info("Finished without issues")
	}
	if found && worst == xodrqc.SEVERITY_ERROR {
		return 1
	}
	return 0
}
