package accessibility

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateReferenceModeGetsNoASC(t *testing.T) {
	coefs := Coefficients{"asc_auto": 5, "time_auto": -0.1}
	u, err := Evaluate(coefs, Record{AltCode: 0, Time: Some(10)}, nil)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, u, 1e-12)
}

func TestEvaluateAbsentCoefficientsContributeZero(t *testing.T) {
	rec := Record{
		AltCode: 2,
		Time:    Some(15),
		Cost:    Some(3),
		Attrs:   map[string]Value{"age": Some(40), "male": Some(1)},
	}
	u, err := Evaluate(Coefficients{}, rec, []string{"age", "male"})
	require.NoError(t, err)
	assert.Equal(t, 0.0, u)

	u, err = Evaluate(Coefficients{"asc_bike": -2}, rec, []string{"age", "male"})
	require.NoError(t, err)
	assert.Equal(t, -2.0, u)
}

func TestEvaluateAllTerms(t *testing.T) {
	coefs := Coefficients{
		"asc_transit":  -1.0,
		"time_transit": -0.03,
		"cost_transit": -0.2,
		"age_transit":  0.01,
		"male_transit": 0.5,
		"age_auto":     99,
	}
	rec := Record{
		AltCode: 1,
		Time:    Some(30),
		Cost:    Some(2.5),
		Attrs:   map[string]Value{"age": Some(50), "male": Missing(), "hhinc": Some(7)},
	}
	u, err := Evaluate(coefs, rec, []string{"age", "male", "hhinc"})
	require.NoError(t, err)
	want := -1.0 + -0.03*30 + -0.2*2.5 + 0.01*50
	assert.InDelta(t, want, u, 1e-12)
}

func TestEvaluateMissingCostSkipsTerm(t *testing.T) {
	coefs := Coefficients{"time_walk": -0.1, "cost_walk": -1}
	u, err := Evaluate(coefs, Record{AltCode: 3, Time: Some(10), Cost: Missing()}, nil)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, u, 1e-12)
}

func TestEvaluateUnknownMode(t *testing.T) {
	_, err := Evaluate(Coefficients{}, Record{Row: 4, PersonID: "7", AltCode: 9, Time: Some(1)}, nil)
	var ume *UnknownModeError
	require.True(t, errors.As(err, &ume))
	assert.Equal(t, 9, ume.Code)
	assert.Equal(t, 4, ume.Row)
	assert.Contains(t, err.Error(), "row 4")
}

func TestEvaluateMissingTime(t *testing.T) {
	rec := Record{Row: 2, PersonID: "1", AltCode: 1, Time: Missing()}
	_, err := Evaluate(Coefficients{"time_transit": -0.1}, rec, nil)
	var mrf *MissingRequiredFieldError
	require.True(t, errors.As(err, &mrf))
	assert.Equal(t, "time", mrf.Field)

	u, err := Evaluator{Coefs: Coefficients{}, RequireTime: false}.Utility(rec)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(u))
}

func TestSomeTreatsNaNAsMissing(t *testing.T) {
	assert.False(t, Some(math.NaN()).Valid)
	assert.True(t, Some(0).Valid)
}

func TestModeFromCode(t *testing.T) {
	for i, m := range Modes() {
		got, err := ModeFromCode(i)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	assert.Equal(t, "transit", Transit.String())
	_, err := ModeFromCode(-1)
	assert.Error(t, err)
	assert.Equal(t, "unknown", Mode(7).String())
}

func TestCoefficientsUnused(t *testing.T) {
	coefs := Coefficients{
		"asc_auto":    1,
		"asc_bike":    1,
		"time_walk":   1,
		"hhinc_bike":  1,
		"income_walk": 1,
	}
	assert.Equal(t, []string{"asc_auto", "income_walk"}, coefs.Unused([]string{"hhinc"}))
}
