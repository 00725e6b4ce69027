package data

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testFrame(t *testing.T) *Frame {
	t.Helper()
	frame, err := NewFrame(
		[]string{"Epi", "Ppi", "Total_Pdn_yds", "Rejection"},
		[][]float64{
			{60, 56, 1200, 14},
			{72, 60, 1350, 9},
			{64, 58, 1100, 21},
		},
	)
	require.NoError(t, err)
	return frame
}

func TestNewFrameRejectsRaggedRows(t *testing.T) {
	_, err := NewFrame([]string{"a", "b"}, [][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestNewFrameRejectsDuplicateColumns(t *testing.T) {
	_, err := NewFrame([]string{"a", "a"}, nil)
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestFrameColumn(t *testing.T) {
	frame := testFrame(t)

	values, err := frame.Column("Rejection")
	require.NoError(t, err)
	require.Equal(t, []float64{14, 9, 21}, values)

	_, err = frame.Column("missing")
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestFrameMatrixIsACopy(t *testing.T) {
	frame := testFrame(t)

	matrix, err := frame.Matrix([]string{"Ppi", "Epi"})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{56, 60}, {60, 72}, {58, 64}}, matrix)

	matrix[0][0] = -1
	again, err := frame.Matrix([]string{"Ppi", "Epi"})
	require.NoError(t, err)
	require.Equal(t, 56.0, again[0][0])
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Total Pdn (yds)":  "Total_Pdn_yds",
		"Rejection":        "Rejection",
		"ends-per-inch":    "ends_per_inch",
		"  weft count  ":   "weft_count",
		"shrink%allowance": "shrink_allowance",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeName(in), "input %q", in)
	}
}

func TestSchemaRolesAndExclusion(t *testing.T) {
	frame := testFrame(t)
	schema, err := NewSchema(frame.Columns(), []string{"Total_Pdn_yds", "Rejection"}, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"Total_Pdn_yds", "Rejection"}, schema.Targets())

	// Each target's predictor set excludes the sibling target.
	predictors, err := schema.PredictorsFor("Total_Pdn_yds")
	require.NoError(t, err)
	require.Equal(t, []string{"Epi", "Ppi"}, predictors)
	require.NotContains(t, predictors, "Rejection")

	predictors, err = schema.PredictorsFor("Rejection")
	require.NoError(t, err)
	require.NotContains(t, predictors, "Total_Pdn_yds")
}

func TestSchemaExcludedColumns(t *testing.T) {
	frame := testFrame(t)
	schema, err := NewSchema(frame.Columns(), []string{"Rejection"}, []string{"Ppi"})
	require.NoError(t, err)

	predictors, err := schema.PredictorsFor("Rejection")
	require.NoError(t, err)
	require.NotContains(t, predictors, "Ppi")

	role, ok := schema.Role("Ppi")
	require.True(t, ok)
	require.Equal(t, RoleExcluded, role)
}

func TestSchemaUnknownTarget(t *testing.T) {
	frame := testFrame(t)
	_, err := NewSchema(frame.Columns(), []string{"NotThere"}, nil)
	require.ErrorIs(t, err, ErrDataIntegrity)

	schema, err := NewSchema(frame.Columns(), []string{"Rejection"}, nil)
	require.NoError(t, err)
	_, err = schema.PredictorsFor("Epi")
	require.ErrorIs(t, err, ErrDataIntegrity)
}

func TestValidatorZeroVariancePredictor(t *testing.T) {
	frame, err := NewFrame(
		[]string{"Epi", "Const", "Rejection"},
		[][]float64{{60, 5, 14}, {72, 5, 9}, {64, 5, 21}},
	)
	require.NoError(t, err)

	schema, err := NewSchema(frame.Columns(), []string{"Rejection"}, nil)
	require.NoError(t, err)

	err = NewValidator().ValidateFrame(frame, schema)
	require.ErrorIs(t, err, ErrDataIntegrity)
	require.Contains(t, err.Error(), "Const")
}
