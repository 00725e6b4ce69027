package tuning

import (
	"fmt"
	"math"
	"sync"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/evaluation"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/models"
)

// LambdaGrid returns count log-spaced penalty values from 10^minExp to
// 10^maxExp, ascending.
func LambdaGrid(count int, minExp, maxExp float64) ([]float64, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: lambda grid must have at least 1 value, got %d",
			evaluation.ErrConfiguration, count)
	}
	if maxExp < minExp {
		return nil, fmt.Errorf("%w: lambda grid bounds inverted: 10^%v..10^%v",
			evaluation.ErrConfiguration, minExp, maxExp)
	}

	if count == 1 {
		return []float64{math.Pow(10, minExp)}, nil
	}

	grid := make([]float64, count)
	step := (maxExp - minExp) / float64(count-1)
	for i := range grid {
		grid[i] = math.Pow(10, minExp+step*float64(i))
	}
	return grid, nil
}

// CellWarning records one failed (lambda, fold) fit. The lambda is excluded
// from selection; the run continues unless every candidate fails.
type CellWarning struct {
	Lambda float64
	Fold   int
	Err    error
}

func (w CellWarning) String() string {
	return fmt.Sprintf("lambda=%g fold=%d: %v", w.Lambda, w.Fold, w.Err)
}

// Result is the outcome of one tuning run.
type Result struct {
	Lambda   float64       // selected penalty
	CVRMSE   float64       // mean cross-validated RMSE at the selected penalty
	MeanRMSE []float64     // per-candidate mean RMSE, NaN where the candidate failed
	Warnings []CellWarning // failed cells, if any
}

// Tuner searches a penalty grid with k-fold cross-validation. Folds are built
// once from the seed and reused for every candidate, so candidates are
// compared on identical resamples. Each (lambda, fold) cell is an independent
// fit and runs on a worker pool.
type Tuner struct {
	NFolds  int
	Seed    int64
	Workers int
}

func NewTuner(nFolds int, seed int64, workers int) *Tuner {
	if workers <= 0 {
		workers = 4
	}
	return &Tuner{NFolds: nFolds, Seed: seed, Workers: workers}
}

// Tune fits the method on every (lambda, fold) combination over the supplied
// training data and returns the lambda minimizing mean cross-validated RMSE.
// On an exact tie the larger lambda wins: the more regularized model, and a
// deterministic rule rather than an order-dependent first-hit.
func (t *Tuner) Tune(x [][]float64, y []float64, method string, lambdas []float64) (*Result, error) {
	if len(lambdas) == 0 {
		return nil, fmt.Errorf("%w: empty penalty candidate grid", evaluation.ErrConfiguration)
	}
	if !models.IsRegularized(method) {
		return nil, fmt.Errorf("%w: method %s has no penalty to tune", evaluation.ErrConfiguration, method)
	}

	indices := make([]int, len(x))
	for i := range indices {
		indices[i] = i
	}

	kfs := evaluation.NewKFoldSplitter(t.NFolds, t.Seed)
	folds, err := kfs.Split(indices)
	if err != nil {
		return nil, err
	}

	// Precompute fold complements once; cells only read them.
	trainSets := make([][]int, len(folds))
	for fi := range folds {
		var train []int
		for fj, fold := range folds {
			if fj != fi {
				train = append(train, fold...)
			}
		}
		trainSets[fi] = train
	}

	type cell struct {
		li, fi int
	}

	nCells := len(lambdas) * len(folds)
	rmse := make([]float64, nCells)
	cellErr := make([]error, nCells)

	workers := t.Workers
	if workers > nCells {
		workers = nCells
	}

	jobs := make(chan cell, nCells)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				idx := c.li*len(folds) + c.fi
				rmse[idx], cellErr[idx] = t.evaluateCell(x, y, method, lambdas[c.li],
					trainSets[c.fi], folds[c.fi])
			}
		}()
	}

	for li := range lambdas {
		for fi := range folds {
			jobs <- cell{li: li, fi: fi}
		}
	}
	close(jobs)
	wg.Wait()

	result := &Result{
		Lambda:   math.NaN(),
		CVRMSE:   math.Inf(1),
		MeanRMSE: make([]float64, len(lambdas)),
	}

	selected := false
	for li, lambda := range lambdas {
		failed := false
		sum := 0.0
		for fi := range folds {
			idx := li*len(folds) + fi
			if cellErr[idx] != nil {
				result.Warnings = append(result.Warnings, CellWarning{
					Lambda: lambda,
					Fold:   fi,
					Err:    cellErr[idx],
				})
				failed = true
				continue
			}
			sum += rmse[idx]
		}

		if failed {
			result.MeanRMSE[li] = math.NaN()
			continue
		}

		mean := sum / float64(len(folds))
		result.MeanRMSE[li] = mean

		// <= keeps the later (larger) lambda on exact ties; the grid is
		// ascending.
		if mean <= result.CVRMSE {
			result.CVRMSE = mean
			result.Lambda = lambda
			selected = true
		}
	}

	if !selected {
		return nil, fmt.Errorf("%w: all %d penalty candidates failed cross-validation",
			models.ErrNumericalInstability, len(lambdas))
	}
	return result, nil
}

func (t *Tuner) evaluateCell(x [][]float64, y []float64, method string, lambda float64,
	trainIdx, testIdx []int) (float64, error) {

	model, err := models.CreateModel(models.ModelConfig{Method: method, Lambda: lambda})
	if err != nil {
		return 0, err
	}

	xTrain, yTrain := subset(x, y, trainIdx)
	if err := model.Fit(xTrain, yTrain); err != nil {
		return 0, err
	}

	xTest, yTest := subset(x, y, testIdx)
	return evaluation.RMSE(yTest, model.Predict(xTest))
}

func subset(x [][]float64, y []float64, indices []int) ([][]float64, []float64) {
	xs := make([][]float64, len(indices))
	ys := make([]float64, len(indices))
	for i, idx := range indices {
		xs[i] = x[idx]
		ys[i] = y[idx]
	}
	return xs, ys
}
