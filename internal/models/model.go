package models

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ErrNumericalInstability marks solver failures: singular or ill-conditioned
// systems and non-convergence. Recoverable during tuning by dropping the
// offending penalty candidate.
var ErrNumericalInstability = errors.New("numerical instability")

// Model is a linear predictor over a fixed feature schema. Fit consumes a
// row-major feature matrix and target vector; Predict applies the learned
// coefficients and intercept to new records with the same schema.
type Model interface {
	Fit(x [][]float64, y []float64) error
	Predict(x [][]float64) []float64
	Coefficients() []float64
	Intercept() float64
	GetName() string
	GetParams() map[string]any
}

type BaseModel struct {
	Name   string
	Params map[string]any
	Coef   []float64
	Bias   float64
}

func (bm *BaseModel) GetName() string {
	return bm.Name
}

func (bm *BaseModel) GetParams() map[string]any {
	return bm.Params
}

func (bm *BaseModel) Coefficients() []float64 {
	return append([]float64(nil), bm.Coef...)
}

func (bm *BaseModel) Intercept() float64 {
	return bm.Bias
}

func (bm *BaseModel) Predict(x [][]float64) []float64 {
	predictions := make([]float64, len(x))
	for i, row := range x {
		yHat := bm.Bias
		for j, coef := range bm.Coef {
			yHat += coef * row[j]
		}
		predictions[i] = yHat
	}
	return predictions
}

func checkTrainingData(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("cannot fit on empty dataset")
	}
	if len(x) != len(y) {
		return fmt.Errorf("x and y must have the same length: %d vs %d", len(x), len(y))
	}
	nFeatures := len(x[0])
	if nFeatures == 0 {
		return fmt.Errorf("cannot fit with zero features")
	}
	for i, row := range x {
		if len(row) != nFeatures {
			return fmt.Errorf("inconsistent feature count at record %d: expected %d, got %d",
				i, nFeatures, len(row))
		}
	}
	return nil
}

// centerTrainingData subtracts column means from x and the mean from y,
// returning the centered copies and the means. Ridge and LASSO solve for
// slopes on centered data so the intercept is never penalized.
func centerTrainingData(x [][]float64, y []float64) (xc [][]float64, yc []float64, xMean []float64, yMean float64) {
	n := len(x)
	p := len(x[0])

	xMean = make([]float64, p)
	column := make([]float64, n)
	for j := 0; j < p; j++ {
		for i := range x {
			column[i] = x[i][j]
		}
		xMean[j] = stat.Mean(column, nil)
	}
	yMean = stat.Mean(y, nil)

	xc = make([][]float64, n)
	yc = make([]float64, n)
	for i, row := range x {
		xc[i] = make([]float64, p)
		for j, value := range row {
			xc[i][j] = value - xMean[j]
		}
		yc[i] = y[i] - yMean
	}
	return xc, yc, xMean, yMean
}

func interceptFromMeans(coef, xMean []float64, yMean float64) float64 {
	intercept := yMean
	for j, c := range coef {
		intercept -= c * xMean[j]
	}
	return intercept
}
