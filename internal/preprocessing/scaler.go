package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/data"
)

// StandardScaler rescales predictor columns to zero mean and unit variance
// using statistics computed once by Fit. Target columns never pass through a
// scaler: the pipeline keeps them on their original scale.
type StandardScaler struct {
	Features    []string
	FeatureMean []float64
	FeatureStd  []float64
	IsFitted    bool
}

func NewStandardScaler(features []string) *StandardScaler {
	return &StandardScaler{
		Features: append([]string(nil), features...),
	}
}

// Fit computes per-feature mean and sample standard deviation. A zero-variance
// feature is a fatal configuration problem and the error names it.
func (s *StandardScaler) Fit(x [][]float64) error {
	if len(x) < 2 {
		return fmt.Errorf("%w: need at least 2 records to fit scaler, got %d",
			data.ErrDataIntegrity, len(x))
	}

	nFeatures := len(s.Features)
	for i, row := range x {
		if len(row) != nFeatures {
			return fmt.Errorf("%w: record %d has %d features, scaler expects %d",
				data.ErrDataIntegrity, i, len(row), nFeatures)
		}
	}

	s.FeatureMean = make([]float64, nFeatures)
	s.FeatureStd = make([]float64, nFeatures)

	column := make([]float64, len(x))
	for j := 0; j < nFeatures; j++ {
		for i := range x {
			column[i] = x[i][j]
		}
		mean, std := stat.MeanStdDev(column, nil)
		if std == 0 {
			return fmt.Errorf("%w: feature %q has zero standard deviation",
				data.ErrDataIntegrity, s.Features[j])
		}
		s.FeatureMean[j] = mean
		s.FeatureStd[j] = std
	}

	s.IsFitted = true
	return nil
}

// Transform returns a new matrix; the input is never mutated.
func (s *StandardScaler) Transform(x [][]float64) ([][]float64, error) {
	if !s.IsFitted {
		return nil, fmt.Errorf("scaler must be fitted before transform")
	}

	result := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.Features) {
			return nil, fmt.Errorf("%w: record %d has %d features, scaler expects %d",
				data.ErrDataIntegrity, i, len(row), len(s.Features))
		}
		result[i] = make([]float64, len(row))
		for j, value := range row {
			result[i][j] = (value - s.FeatureMean[j]) / s.FeatureStd[j]
		}
	}
	return result, nil
}

func (s *StandardScaler) FitTransform(x [][]float64) ([][]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}
