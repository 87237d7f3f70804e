package config

import (
	"errors"
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"fraudprep/pkg/pipeline"
)

// EnvPrefix namespaces every environment variable, e.g. FRAUDPREP_TRAIN_RATIO.
const EnvPrefix = "FRAUDPREP"

// Config is the CLI configuration. Environment variables set the defaults and
// command-line flags override them.
type Config struct {
	Input      string  `envconfig:"INPUT" default:"creditcard.csv"`
	OutputDir  string  `envconfig:"OUTPUT_DIR" default:"processed"`
	Engineer   bool    `envconfig:"ENGINEER" default:"false"`
	TrainRatio float64 `envconfig:"TRAIN_RATIO" default:"0.8"`
	Scaling    string  `envconfig:"SCALING" default:"train"`
	PlotColumn string  `envconfig:"PLOT_COLUMN"`
	PlotBins   int     `envconfig:"PLOT_BINS" default:"30"`

	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"LOG_DEVELOPMENT" default:"false"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	return &cfg, nil
}

// Validate checks values the pipeline would otherwise reject later.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New("input path is required")
	}
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if c.TrainRatio <= 0 || c.TrainRatio >= 1 {
		return fmt.Errorf("train ratio %v must be in (0, 1)", c.TrainRatio)
	}
	if _, err := pipeline.ParseScalingMode(c.Scaling); err != nil {
		return err
	}
	if c.PlotColumn != "" && c.PlotBins <= 0 {
		return fmt.Errorf("plot bins must be positive, got %d", c.PlotBins)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// PipelineOptions maps the configuration onto pipeline options.
func (c *Config) PipelineOptions() (pipeline.Options, error) {
	scaling, err := pipeline.ParseScalingMode(c.Scaling)
	if err != nil {
		return pipeline.Options{}, err
	}
	return pipeline.Options{
		ApplyFeatureEngineering: c.Engineer,
		TrainRatio:              c.TrainRatio,
		Scaling:                 scaling,
	}, nil
}
