package data

import (
	"fmt"
	"math"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateFrame checks the loaded table against the schema before any
// modeling starts: every record must carry a finite value for every predictor
// and target, and no predictor may be constant.
func (v *Validator) ValidateFrame(frame *Frame, schema *Schema) error {
	if frame.NumRows() == 0 {
		return fmt.Errorf("%w: dataset is empty", ErrDataIntegrity)
	}

	for _, name := range frame.Columns() {
		role, ok := schema.Role(name)
		if !ok {
			return fmt.Errorf("%w: column %q has no schema role", ErrDataIntegrity, name)
		}
		if role == RoleExcluded {
			continue
		}

		values, err := frame.Column(name)
		if err != nil {
			return err
		}
		for i, value := range values {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("%w: non-finite value in column %q at row %d",
					ErrDataIntegrity, name, i)
			}
		}

		if role == RolePredictor && isConstant(values) {
			return fmt.Errorf("%w: predictor %q has zero variance", ErrDataIntegrity, name)
		}
	}

	return nil
}

// ValidateMatrix checks that a feature matrix agrees with the feature list,
// used to guard train/predict schema drift.
func (v *Validator) ValidateMatrix(x [][]float64, features []string) error {
	if len(x) == 0 {
		return fmt.Errorf("%w: feature matrix is empty", ErrDataIntegrity)
	}
	for i, row := range x {
		if len(row) != len(features) {
			return fmt.Errorf("%w: record %d has %d features, schema declares %d",
				ErrDataIntegrity, i, len(row), len(features))
		}
	}
	return nil
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
