package models

import (
	"fmt"
	"math"
)

const (
	defaultLassoTol     = 1e-7
	defaultLassoMaxIter = 10000
)

// Lasso minimizes RSS + lambda * sum(|coef|) by cyclic coordinate descent
// with soft thresholding. Large enough lambda drives every coefficient
// exactly to zero; lambda = 0 recovers the least-squares fit.
type Lasso struct {
	BaseModel
	Lambda  float64
	Tol     float64
	MaxIter int
}

func NewLasso(lambda float64) *Lasso {
	return &Lasso{
		Lambda:  lambda,
		Tol:     defaultLassoTol,
		MaxIter: defaultLassoMaxIter,
		BaseModel: BaseModel{
			Name:   "LASSO",
			Params: map[string]any{"lambda": lambda},
		},
	}
}

func (m *Lasso) Fit(x [][]float64, y []float64) error {
	if err := checkTrainingData(x, y); err != nil {
		return err
	}
	if m.Lambda < 0 {
		return fmt.Errorf("lasso penalty must be non-negative, got %v", m.Lambda)
	}

	xc, yc, xMean, yMean := centerTrainingData(x, y)

	n := len(xc)
	p := len(xc[0])

	// Column-major copy and per-column squared norms.
	columns := make([][]float64, p)
	norms := make([]float64, p)
	for j := 0; j < p; j++ {
		columns[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			v := xc[i][j]
			columns[j][i] = v
			norms[j] += v * v
		}
	}

	coef := make([]float64, p)
	residual := append([]float64(nil), yc...)

	converged := false
	for iter := 0; iter < m.MaxIter; iter++ {
		maxDelta := 0.0
		for j := 0; j < p; j++ {
			if norms[j] == 0 {
				coef[j] = 0
				continue
			}

			// rho is the correlation of column j with the residual that
			// excludes column j's own contribution.
			rho := coef[j] * norms[j]
			for i := 0; i < n; i++ {
				rho += columns[j][i] * residual[i]
			}

			updated := softThreshold(rho, m.Lambda/2) / norms[j]
			delta := updated - coef[j]
			if delta != 0 {
				for i := 0; i < n; i++ {
					residual[i] -= delta * columns[j][i]
				}
				coef[j] = updated
			}
			if math.Abs(delta) > maxDelta {
				maxDelta = math.Abs(delta)
			}
		}

		if maxDelta < m.Tol {
			converged = true
			break
		}
	}

	if !converged {
		return fmt.Errorf("%w: lasso coordinate descent did not converge for lambda=%v after %d iterations",
			ErrNumericalInstability, m.Lambda, m.MaxIter)
	}

	m.Coef = coef
	m.Bias = interceptFromMeans(coef, xMean, yMean)
	return nil
}

func softThreshold(value, threshold float64) float64 {
	switch {
	case value > threshold:
		return value - threshold
	case value < -threshold:
		return value + threshold
	default:
		return 0
	}
}
