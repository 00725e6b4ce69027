package experiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/evaluation"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/models"
)

const (
	// ScaleFull computes standardization parameters on the full table before
	// splitting, faithful to the original analysis. This leaks test-set
	// distributional information into the training-time scaling; ScaleTrain
	// fits the scaler on the training partition only.
	ScaleFull  = "full"
	ScaleTrain = "train"
)

type Config struct {
	Analysis struct {
		Targets         []string `yaml:"targets"`
		Excluded        []string `yaml:"excluded"`
		Methods         []string `yaml:"methods"`
		TrainFraction   float64  `yaml:"train_fraction"`
		Seed            int64    `yaml:"seed"`
		ScaleScope      string   `yaml:"scale_scope"`
		Workers         int      `yaml:"workers"`
		CrossValidation struct {
			Folds int `yaml:"folds"`
		} `yaml:"cross_validation"`
		LambdaGrid struct {
			Count  int     `yaml:"count"`
			MinExp float64 `yaml:"min_exp"`
			MaxExp float64 `yaml:"max_exp"`
		} `yaml:"lambda_grid"`
	} `yaml:"analysis"`
}

func DefaultConfig() *Config {
	config := &Config{}
	config.Analysis.Targets = []string{"Total_Pdn_yds", "Rejection"}
	config.Analysis.Methods = models.Methods()
	config.Analysis.TrainFraction = 0.75
	config.Analysis.Seed = 42
	config.Analysis.ScaleScope = ScaleFull
	config.Analysis.Workers = 4
	config.Analysis.CrossValidation.Folds = 10
	config.Analysis.LambdaGrid.Count = 100
	config.Analysis.LambdaGrid.MinExp = -2
	config.Analysis.LambdaGrid.MaxExp = 10
	return config
}

// LoadConfig reads a YAML analysis config, starting from defaults so partial
// files work.
func LoadConfig(filename string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

// Validate rejects invalid setups before any fitting begins.
func (c *Config) Validate() error {
	a := &c.Analysis

	if len(a.Targets) == 0 {
		return fmt.Errorf("%w: no target variables configured", evaluation.ErrConfiguration)
	}
	if len(a.Methods) == 0 {
		return fmt.Errorf("%w: no methods configured", evaluation.ErrConfiguration)
	}
	for _, method := range a.Methods {
		switch method {
		case models.MethodOLS, models.MethodRidge, models.MethodLasso:
		default:
			return fmt.Errorf("%w: unknown method %q", evaluation.ErrConfiguration, method)
		}
	}
	if a.TrainFraction <= 0 || a.TrainFraction >= 1 {
		return fmt.Errorf("%w: train fraction must be in (0, 1), got %v",
			evaluation.ErrConfiguration, a.TrainFraction)
	}
	if a.CrossValidation.Folds <= 1 {
		return fmt.Errorf("%w: cross-validation folds must be at least 2, got %d",
			evaluation.ErrConfiguration, a.CrossValidation.Folds)
	}
	if a.LambdaGrid.Count <= 0 {
		return fmt.Errorf("%w: lambda grid is empty", evaluation.ErrConfiguration)
	}
	if a.ScaleScope != ScaleFull && a.ScaleScope != ScaleTrain {
		return fmt.Errorf("%w: scale scope must be %q or %q, got %q",
			evaluation.ErrConfiguration, ScaleFull, ScaleTrain, a.ScaleScope)
	}
	return nil
}
