package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Ridge minimizes RSS + lambda * sum(coef^2). The intercept is not penalized:
// slopes are solved on centered data and the intercept recovered from the
// training means. Larger lambda shrinks coefficients toward zero but never
// exactly to zero.
type Ridge struct {
	BaseModel
	Lambda float64
}

func NewRidge(lambda float64) *Ridge {
	return &Ridge{
		Lambda: lambda,
		BaseModel: BaseModel{
			Name:   "Ridge",
			Params: map[string]any{"lambda": lambda},
		},
	}
}

func (m *Ridge) Fit(x [][]float64, y []float64) error {
	if err := checkTrainingData(x, y); err != nil {
		return err
	}
	if m.Lambda < 0 {
		return fmt.Errorf("ridge penalty must be non-negative, got %v", m.Lambda)
	}

	xc, yc, xMean, yMean := centerTrainingData(x, y)

	n := len(xc)
	p := len(xc[0])
	flat := make([]float64, 0, n*p)
	for _, row := range xc {
		flat = append(flat, row...)
	}
	design := mat.NewDense(n, p, flat)
	response := mat.NewVecDense(n, yc)

	// Normal equations (X'X + lambda*I) beta = X'y. The lambda*I term keeps
	// the system well-posed for any lambda > 0.
	var gram mat.Dense
	gram.Mul(design.T(), design)
	for j := 0; j < p; j++ {
		gram.Set(j, j, gram.At(j, j)+m.Lambda)
	}

	var rhs mat.VecDense
	rhs.MulVec(design.T(), response)

	var beta mat.VecDense
	if err := beta.SolveVec(&gram, &rhs); err != nil {
		return fmt.Errorf("%w: ridge solve failed for lambda=%v: %v",
			ErrNumericalInstability, m.Lambda, err)
	}

	m.Coef = make([]float64, p)
	for j := 0; j < p; j++ {
		m.Coef[j] = beta.AtVec(j)
	}
	m.Bias = interceptFromMeans(m.Coef, xMean, yMean)
	return nil
}
