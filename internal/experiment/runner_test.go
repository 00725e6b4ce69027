package experiment

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nathanmitchell8675/Fabric-Prediction/internal/data"
	"github.com/nathanmitchell8675/Fabric-Prediction/internal/models"
)

// productionFrame builds a synthetic weaving table: four process parameters
// and two targets, each a linear combination of the predictors plus noise.
func productionFrame(t *testing.T, n int, seed int64) *data.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	columns := []string{"Epi", "Ppi", "Weft_Count", "Beam_Length", "Total_Pdn_yds", "Rejection"}
	rows := make([][]float64, n)
	for i := range rows {
		epi := 60 + rng.NormFloat64()*8
		ppi := 56 + rng.NormFloat64()*6
		weft := 30 + rng.NormFloat64()*4
		beam := 900 + rng.NormFloat64()*50

		production := 200 + 12*epi + 8*ppi - 3*weft + 0.5*beam + rng.NormFloat64()*20
		rejection := 40 - 0.2*epi + 0.1*ppi + 0.8*weft - 0.01*beam + rng.NormFloat64()*2

		rows[i] = []float64{epi, ppi, weft, beam, production, rejection}
	}

	frame, err := data.NewFrame(columns, rows)
	require.NoError(t, err)
	return frame
}

func testConfig() *Config {
	config := DefaultConfig()
	config.Analysis.CrossValidation.Folds = 5
	config.Analysis.LambdaGrid.Count = 10
	config.Analysis.LambdaGrid.MaxExp = 4
	config.Analysis.Workers = 2
	return config
}

func TestRunnerEndToEnd(t *testing.T) {
	frame := productionFrame(t, 200, 51)
	config := testConfig()

	schema, err := data.NewSchema(frame.Columns(), config.Analysis.Targets, nil)
	require.NoError(t, err)

	results, err := NewRunner(config).Run(frame, schema)
	require.NoError(t, err)
	require.Len(t, results, 6) // 3 methods x 2 targets

	for _, r := range results {
		require.NoError(t, r.Err, "%s/%s", r.Method, r.Target)
		require.Greater(t, r.RMSE, 0.0)
		require.Greater(t, r.StdRMSE, 0.0)
		require.Greater(t, r.R2, 0.5, "%s/%s should explain most variance", r.Method, r.Target)

		if models.IsRegularized(r.Method) {
			require.True(t, r.HasLambda)
			require.Greater(t, r.Lambda, 0.0)
			require.Greater(t, r.CVRMSE, 0.0)
		} else {
			require.False(t, r.HasLambda)
		}
	}
}

func TestRunnerIsDeterministic(t *testing.T) {
	frame := productionFrame(t, 150, 52)
	config := testConfig()

	schema, err := data.NewSchema(frame.Columns(), config.Analysis.Targets, nil)
	require.NoError(t, err)

	first, err := NewRunner(config).Run(frame, schema)
	require.NoError(t, err)
	second, err := NewRunner(config).Run(frame, schema)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestRunnerExcludesSiblingTargetFromPredictors(t *testing.T) {
	frame := productionFrame(t, 150, 53)
	config := testConfig()

	schema, err := data.NewSchema(frame.Columns(), config.Analysis.Targets, nil)
	require.NoError(t, err)

	// The fitted coefficient vector must carry one entry per predictor and
	// none for the excluded sibling target.
	predictors, err := schema.PredictorsFor("Total_Pdn_yds")
	require.NoError(t, err)
	require.NotContains(t, predictors, "Rejection")
	require.Len(t, predictors, 4)

	x, err := frame.Matrix(predictors)
	require.NoError(t, err)
	y, err := frame.Column("Total_Pdn_yds")
	require.NoError(t, err)

	model := models.NewOLS()
	require.NoError(t, model.Fit(x, y))
	require.Len(t, model.Coefficients(), len(predictors))
}

func TestRunnerSiblingPipelinesSurviveFailure(t *testing.T) {
	// One target is constant: its pipelines fail on the degenerate test-set
	// standard deviation, the other target's results are unaffected.
	rng := rand.New(rand.NewSource(54))
	columns := []string{"Epi", "Ppi", "Good", "Broken"}
	rows := make([][]float64, 120)
	for i := range rows {
		epi := rng.NormFloat64()
		ppi := rng.NormFloat64()
		rows[i] = []float64{epi, ppi, 3*epi - ppi + rng.NormFloat64()*0.1, 7}
	}
	frame, err := data.NewFrame(columns, rows)
	require.NoError(t, err)

	config := testConfig()
	config.Analysis.Targets = []string{"Good", "Broken"}

	schema, err := data.NewSchema(frame.Columns(), config.Analysis.Targets, nil)
	require.NoError(t, err)

	results, err := NewRunner(config).Run(frame, schema)
	require.NoError(t, err)
	require.Len(t, results, 6)

	for _, r := range results {
		if r.Target == "Good" {
			require.NoError(t, r.Err)
		} else {
			require.Error(t, r.Err)
		}
	}
}

func TestRunnerScaleScopeTrain(t *testing.T) {
	frame := productionFrame(t, 150, 55)
	config := testConfig()
	config.Analysis.ScaleScope = ScaleTrain

	schema, err := data.NewSchema(frame.Columns(), config.Analysis.Targets, nil)
	require.NoError(t, err)

	results, err := NewRunner(config).Run(frame, schema)
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, r.Err)
	}
}

func TestConfigValidation(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.Analysis.Targets = nil },
		func(c *Config) { c.Analysis.Methods = []string{"boost"} },
		func(c *Config) { c.Analysis.TrainFraction = 1.2 },
		func(c *Config) { c.Analysis.CrossValidation.Folds = 1 },
		func(c *Config) { c.Analysis.LambdaGrid.Count = 0 },
		func(c *Config) { c.Analysis.ScaleScope = "global" },
	}

	for i, mutate := range cases {
		config := DefaultConfig()
		mutate(config)
		require.Error(t, config.Validate(), "case %d", i)
	}

	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	content := `
analysis:
  targets: [Total_Pdn_yds]
  methods: [ols, ridge]
  train_fraction: 0.8
  cross_validation:
    folds: 5
`
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []string{"Total_Pdn_yds"}, config.Analysis.Targets)
	require.Equal(t, 0.8, config.Analysis.TrainFraction)
	require.Equal(t, 5, config.Analysis.CrossValidation.Folds)
	// Unset fields keep defaults.
	require.Equal(t, 100, config.Analysis.LambdaGrid.Count)
	require.NoError(t, config.Validate())
}

func TestExportResults(t *testing.T) {
	frame := productionFrame(t, 120, 56)
	config := testConfig()
	config.Analysis.Targets = []string{"Total_Pdn_yds"}
	config.Analysis.Methods = []string{models.MethodOLS}

	schema, err := data.NewSchema(frame.Columns(), config.Analysis.Targets, nil)
	require.NoError(t, err)

	results, err := NewRunner(config).Run(frame, schema)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, ExportResults(results, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "StdRMSE")
	require.Contains(t, lines[1], "ols")
}
