package evaluation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/data"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/models"
)

func TestEvaluateModel(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}}
	y := []float64{2.1, 3.9, 6.1, 7.9, 10.1, 11.9}

	model := models.NewOLS()
	require.NoError(t, model.Fit(x, y))

	metrics, err := EvaluateModel(model, [][]float64{{7}, {8}, {9}}, []float64{14, 16, 18})
	require.NoError(t, err)
	require.Less(t, metrics.RMSE, 0.2)
	require.Greater(t, metrics.R2, 0.99)
}

func TestEvaluateModelSchemaMismatch(t *testing.T) {
	x := [][]float64{{1, 1}, {2, 4}, {3, 9}, {4, 16}}
	y := []float64{1, 2, 3, 4}

	model := models.NewOLS()
	require.NoError(t, model.Fit(x, y))

	_, err := EvaluateModel(model, [][]float64{{1}, {2}}, []float64{1, 2})
	require.ErrorIs(t, err, data.ErrDataIntegrity)
}
