package audit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fieldops/route-audit/pkg/geo"
)

// Config collects every tunable of the audit pipeline. All fields have
// working defaults; a YAML file and CLI flags may override them.
type Config struct {
	IndexFile string `yaml:"index_file"`
	DataDir   string `yaml:"data_dir"`
	DataExt   string `yaml:"data_ext"`

	SummaryFile string `yaml:"summary_file"`
	ProblemFile string `yaml:"problem_file"`
	MissingFile string `yaml:"missing_file"`

	Parallel bool `yaml:"parallel"`
	Workers  int  `yaml:"workers"`

	Region geo.Bounds `yaml:"region"`

	LargeJumpKM         float64 `yaml:"large_jump_km"`
	StationaryKM        float64 `yaml:"stationary_km"`
	StationaryCount     int     `yaml:"stationary_count"`
	AlternationFraction float64 `yaml:"alternation_fraction"`
	PoorQualityYield    float64 `yaml:"poor_quality_yield"`
}

func DefaultConfig() Config {
	return Config{
		IndexFile:           "routesinformation.csv",
		DataDir:             "data",
		DataExt:             ".xlsx",
		SummaryFile:         "route_analysis_summary.csv",
		ProblemFile:         "problem_routes.csv",
		MissingFile:         "missing_files.csv",
		Region:              geo.DefaultRegionBounds,
		LargeJumpKM:         100,
		StationaryKM:        0.01,
		StationaryCount:     5,
		AlternationFraction: 0.3,
		PoorQualityYield:    0.5,
	}
}

// LoadConfig overlays a YAML file on the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Detector builds an anomaly detector from the configured thresholds.
func (c Config) Detector() Detector {
	return Detector{
		LargeJumpKM:         c.LargeJumpKM,
		StationaryKM:        c.StationaryKM,
		StationaryCount:     c.StationaryCount,
		AlternationFraction: c.AlternationFraction,
	}
}
