package evaluation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/data"
)

// RegressionMetrics holds held-out prediction accuracy for one fitted model.
// StdRMSE is RMSE divided by the sample standard deviation of the true target
// values, making errors comparable across differently-scaled targets.
type RegressionMetrics struct {
	RMSE    float64 `json:"rmse"`
	StdRMSE float64 `json:"std_rmse"`
	R2      float64 `json:"r_squared"`
}

func CalculateMetrics(yTrue, yPred []float64) (*RegressionMetrics, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%w: true and predicted lengths differ: %d vs %d",
			data.ErrDataIntegrity, len(yTrue), len(yPred))
	}
	if len(yTrue) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 test records, got %d",
			data.ErrDataIntegrity, len(yTrue))
	}

	mean := stat.Mean(yTrue, nil)

	var ssRes, ssTot float64
	for i := range yTrue {
		residual := yTrue[i] - yPred[i]
		ssRes += residual * residual
		dev := yTrue[i] - mean
		ssTot += dev * dev
	}

	rmse := math.Sqrt(ssRes / float64(len(yTrue)))

	std := stat.StdDev(yTrue, nil)
	if std == 0 {
		return nil, fmt.Errorf("%w: test target has zero standard deviation", data.ErrDataIntegrity)
	}

	return &RegressionMetrics{
		RMSE:    rmse,
		StdRMSE: rmse / std,
		R2:      1 - ssRes/ssTot,
	}, nil
}

// RMSE is the bare root-mean-squared error, used by the tuner on fold
// holdouts where the standardized variant is not needed.
func RMSE(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) != len(yPred) {
		return 0, fmt.Errorf("%w: true and predicted lengths differ: %d vs %d",
			data.ErrDataIntegrity, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return 0, fmt.Errorf("%w: empty evaluation set", data.ErrDataIntegrity)
	}

	var ssRes float64
	for i := range yTrue {
		residual := yTrue[i] - yPred[i]
		ssRes += residual * residual
	}
	return math.Sqrt(ssRes / float64(len(yTrue))), nil
}
