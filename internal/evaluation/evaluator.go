package evaluation

import (
	"fmt"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/data"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/models"
)

// EvaluateModel applies a fitted model to held-out data and reports RMSE,
// standardized RMSE, and R² on that set.
func EvaluateModel(model models.Model, xTest [][]float64, yTest []float64) (*RegressionMetrics, error) {
	nCoef := len(model.Coefficients())
	for i, row := range xTest {
		if len(row) != nCoef {
			return nil, fmt.Errorf("%w: test record %d has %d features, model %s was fitted on %d",
				data.ErrDataIntegrity, i, len(row), model.GetName(), nCoef)
		}
	}

	predictions := model.Predict(xTest)

	metrics, err := CalculateMetrics(yTest, predictions)
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", model.GetName(), err)
	}
	return metrics, nil
}
