package experiment

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/data"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/evaluation"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/models"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/preprocessing"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/report"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/tuning"
)

// Runner drives the full comparison: for each target it splits, standardizes,
// tunes the regularized methods, fits every method on the training partition,
// and evaluates on the held-out test set. Pipelines are independent: a failure
// in one (method, target) pair is recorded in its result and does not abort
// the siblings.
type Runner struct {
	Config *Config
}

func NewRunner(config *Config) *Runner {
	return &Runner{Config: config}
}

func (r *Runner) Run(frame *data.Frame, schema *data.Schema) ([]report.Evaluation, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}
	if err := data.NewValidator().ValidateFrame(frame, schema); err != nil {
		return nil, err
	}

	a := &r.Config.Analysis
	var results []report.Evaluation

	for ti, target := range a.Targets {
		pipelines, err := r.runTarget(frame, schema, target, int64(ti))
		if err != nil {
			// A target-level failure (bad schema, degenerate scaling) takes
			// down that target's pipelines only.
			for _, method := range a.Methods {
				results = append(results, report.Evaluation{
					Method: method,
					Target: target,
					Err:    fmt.Errorf("target %s: %w", target, err),
				})
			}
			continue
		}
		results = append(results, pipelines...)
	}

	return results, nil
}

// runTarget evaluates every configured method on one target. Each target gets
// its own train/test partition: the split seed is offset by the target index,
// mirroring the original analysis which re-sampled before each target's
// models. Targets are modeled independently, so they need not share a
// partition.
func (r *Runner) runTarget(frame *data.Frame, schema *data.Schema, target string, targetIndex int64) ([]report.Evaluation, error) {
	a := &r.Config.Analysis

	predictors, err := schema.PredictorsFor(target)
	if err != nil {
		return nil, err
	}

	x, err := frame.Matrix(predictors)
	if err != nil {
		return nil, err
	}
	y, err := frame.Column(target)
	if err != nil {
		return nil, err
	}

	seed := a.Seed + targetIndex
	splitter := evaluation.NewTrainTestSplitter(a.TrainFraction, seed)
	trainIdx, testIdx, err := splitter.Split(len(x))
	if err != nil {
		return nil, err
	}

	xTrain, yTrain, xTest, yTest, err := r.partition(x, y, predictors, trainIdx, testIdx)
	if err != nil {
		return nil, err
	}

	var results []report.Evaluation
	for _, method := range a.Methods {
		results = append(results, r.runMethod(method, target, seed, xTrain, yTrain, xTest, yTest))
	}
	return results, nil
}

// partition standardizes the predictors and splits them into train and test
// matrices. Scope "full" fits the scaler on the whole table before splitting,
// as the original analysis did; scope "train" fits on the training partition
// only and applies those parameters to the test rows.
func (r *Runner) partition(x [][]float64, y []float64, predictors []string,
	trainIdx, testIdx []int) (xTrain [][]float64, yTrain []float64, xTest [][]float64, yTest []float64, err error) {

	scaler := preprocessing.NewStandardScaler(predictors)

	switch r.Config.Analysis.ScaleScope {
	case ScaleFull:
		scaled, err := scaler.FitTransform(x)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		xTrain, yTrain = take(scaled, y, trainIdx)
		xTest, yTest = take(scaled, y, testIdx)

	case ScaleTrain:
		rawTrain, trainTargets := take(x, y, trainIdx)
		rawTest, testTargets := take(x, y, testIdx)

		xTrain, err = scaler.FitTransform(rawTrain)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		xTest, err = scaler.Transform(rawTest)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		yTrain, yTest = trainTargets, testTargets

	default:
		return nil, nil, nil, nil, fmt.Errorf("%w: unknown scale scope %q",
			evaluation.ErrConfiguration, r.Config.Analysis.ScaleScope)
	}

	return xTrain, yTrain, xTest, yTest, nil
}

func (r *Runner) runMethod(method, target string, seed int64,
	xTrain [][]float64, yTrain []float64, xTest [][]float64, yTest []float64) report.Evaluation {

	a := &r.Config.Analysis
	result := report.Evaluation{Method: method, Target: target}

	fail := func(err error) report.Evaluation {
		result.Err = fmt.Errorf("%s/%s: %w", method, target, err)
		return result
	}

	config := models.ModelConfig{Method: method}

	if models.IsRegularized(method) {
		lambdas, err := tuning.LambdaGrid(a.LambdaGrid.Count, a.LambdaGrid.MinExp, a.LambdaGrid.MaxExp)
		if err != nil {
			return fail(err)
		}

		tuner := tuning.NewTuner(a.CrossValidation.Folds, seed, a.Workers)
		tuned, err := tuner.Tune(xTrain, yTrain, method, lambdas)
		if err != nil {
			return fail(err)
		}

		config.Lambda = tuned.Lambda
		result.HasLambda = true
		result.Lambda = tuned.Lambda
		result.CVRMSE = tuned.CVRMSE
	}

	model, err := models.CreateModel(config)
	if err != nil {
		return fail(err)
	}
	if err := model.Fit(xTrain, yTrain); err != nil {
		return fail(err)
	}

	metrics, err := evaluation.EvaluateModel(model, xTest, yTest)
	if err != nil {
		return fail(err)
	}

	result.RMSE = metrics.RMSE
	result.StdRMSE = metrics.StdRMSE
	result.R2 = metrics.R2
	return result
}

func take(x [][]float64, y []float64, indices []int) ([][]float64, []float64) {
	xs := make([][]float64, len(indices))
	ys := make([]float64, len(indices))
	for i, idx := range indices {
		xs[i] = x[idx]
		ys[i] = y[idx]
	}
	return xs, ys
}

// ExportResults writes the raw evaluation numbers to CSV for downstream
// report rendering.
func ExportResults(results []report.Evaluation, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{
		"Method", "Target", "RMSE", "StdRMSE", "R2", "Lambda", "CVRMSE", "Error",
	}); err != nil {
		return err
	}

	for _, r := range results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		lambda, cvRMSE := "", ""
		if r.HasLambda {
			lambda = fmt.Sprintf("%g", r.Lambda)
			cvRMSE = fmt.Sprintf("%.6f", r.CVRMSE)
		}
		if err := writer.Write([]string{
			r.Method,
			r.Target,
			fmt.Sprintf("%.6f", r.RMSE),
			fmt.Sprintf("%.6f", r.StdRMSE),
			fmt.Sprintf("%.6f", r.R2),
			lambda,
			cvRMSE,
			errText,
		}); err != nil {
			return err
		}
	}

	return nil
}
