package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// OLS is ordinary least squares: minimizes the sum of squared residuals over
// all predictors with no penalty.
type OLS struct {
	BaseModel
}

func NewOLS() *OLS {
	return &OLS{
		BaseModel: BaseModel{
			Name:   "OLS",
			Params: map[string]any{},
		},
	}
}

func (m *OLS) Fit(x [][]float64, y []float64) error {
	if err := checkTrainingData(x, y); err != nil {
		return err
	}

	n := len(x)
	p := len(x[0])
	if n <= p {
		return fmt.Errorf("%w: %d records cannot determine %d coefficients plus intercept",
			ErrNumericalInstability, n, p)
	}

	// Design matrix with a leading intercept column.
	design := mat.NewDense(n, p+1, nil)
	for i, row := range x {
		design.Set(i, 0, 1)
		for j, value := range row {
			design.Set(i, j+1, value)
		}
	}
	response := mat.NewVecDense(n, append([]float64(nil), y...))

	var beta mat.VecDense
	if err := beta.SolveVec(design, response); err != nil {
		return fmt.Errorf("%w: least-squares solve failed (rank-deficient predictors?): %v",
			ErrNumericalInstability, err)
	}

	m.Bias = beta.AtVec(0)
	m.Coef = make([]float64, p)
	for j := 0; j < p; j++ {
		m.Coef[j] = beta.AtVec(j + 1)
	}
	return nil
}
