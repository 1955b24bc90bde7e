package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/propmatch/internal/tabular"
	"github.com/katalvlaran/propmatch/match"
)

// Algorithm names accepted in the config file.
const (
	algoNearest = "nearest"
	algoOptimal = "optimal"
)

var errConfig = errors.New("propmatch: invalid config")

// Config is one analyst iteration, stated in YAML. Between runs the analyst
// edits the covariate set, the caliper, or the exclusion list and reruns —
// the iteration loop lives in this file, not in code.
type Config struct {
	Data           string   `yaml:"data"`
	IDColumn       string   `yaml:"id_column"`
	GroupColumn    string   `yaml:"group_column"`
	TreatmentLabel string   `yaml:"treatment_label"`
	ControlLabel   string   `yaml:"control_label"`
	Covariates     []string `yaml:"covariates"`
	Categorical    []string `yaml:"categorical"`
	Algorithm      string   `yaml:"algorithm"`
	Caliper        float64  `yaml:"caliper"`
	Exclude        []string `yaml:"exclude"`
}

// loadConfig reads and validates the YAML analysis config.
func loadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("propmatch: read config: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("propmatch: parse config: %w", err)
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = algoNearest
	}

	return cfg, cfg.validate()
}

// validate rejects configs the pipeline could not run.
func (c Config) validate() error {
	switch {
	case c.Data == "":
		return fmt.Errorf("data path is required: %w", errConfig)
	case c.IDColumn == "" || c.GroupColumn == "":
		return fmt.Errorf("id_column and group_column are required: %w", errConfig)
	case c.TreatmentLabel == "":
		return fmt.Errorf("treatment_label is required: %w", errConfig)
	case len(c.Covariates) == 0:
		return fmt.Errorf("at least one covariate is required: %w", errConfig)
	case c.Caliper < 0:
		return fmt.Errorf("caliper must be non-negative: %w", errConfig)
	}
	if _, err := c.algorithm(); err != nil {
		return err
	}

	return nil
}

// algorithm maps the config name onto the match constant.
func (c Config) algorithm() (match.Algorithm, error) {
	switch c.Algorithm {
	case algoNearest:
		return match.NearestNeighbor, nil
	case algoOptimal:
		return match.Optimal, nil
	default:
		return 0, fmt.Errorf("algorithm %q (want %q or %q): %w",
			c.Algorithm, algoNearest, algoOptimal, errConfig)
	}
}

// spec translates the config columns into the loader's layout.
func (c Config) spec() tabular.Spec {
	return tabular.Spec{
		IDColumn:       c.IDColumn,
		GroupColumn:    c.GroupColumn,
		TreatmentLabel: c.TreatmentLabel,
		ControlLabel:   c.ControlLabel,
		Continuous:     c.Covariates,
		Categorical:    c.Categorical,
	}
}
