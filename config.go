package xodrqc

import (
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultMaxVerticalRoadGap is the largest accepted gap between sorted road
// mid-point elevations before the vertical-variance checker warns
const DefaultMaxVerticalRoadGap = 150.0

// Config carries the run parameters of one checker bundle execution. The zero
// value is not usable, start from DefaultConfig.
type Config struct {
	// FileName is the input .xodr file
	FileName string `yaml:"file"`
	// SchemaDir holds the per-version XSD files, named opendrive_<major><minor>.xsd.
	// Empty disables the schema checker (it reports itself skipped).
	SchemaDir string `yaml:"schema_dir"`
	// ReportFile is the XML report output path, empty disables the writer
	ReportFile string `yaml:"report"`
	// GeoJSONFile is the findings GeoJSON output path, empty disables the writer
	GeoJSONFile string `yaml:"geojson"`
	// Workers bounds the per-road parallelism of the geometric checkers
	Workers int `yaml:"workers" validate:"gte=1"`
	// IgnorePreconditions forces every checker to run even when its
	// preconditions reported findings
	IgnorePreconditions bool `yaml:"ignore_preconditions"`
	// LenientSchema downgrades or drops known benign schema violations
	LenientSchema bool `yaml:"lenient_schema"`
	// MaxVerticalRoadGap parameterizes the vertical-variance checker
	MaxVerticalRoadGap float64 `yaml:"max_vertical_road_gap" validate:"gte=0"`
}

// DefaultConfig returns the parameters used when no config file is given
func DefaultConfig() *Config {
	return &Config{
		Workers:            runtime.NumCPU(),
		MaxVerticalRoadGap: DefaultMaxVerticalRoadGap,
	}
}

// LoadConfig reads a YAML config file on top of the defaults and validates
// the merged parameters
func LoadConfig(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read configuration file")
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrap(err, "Can't decode configuration file")
	}
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "Configuration is not valid")
	}
	return config, nil
}
