package privacy

import (
	"io"
	"math"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/inferloop/tabsynth/pkg/errors"
	"github.com/inferloop/tabsynth/pkg/models"
)

func newTestDPEngine(t *testing.T, epsilon float64, seed int64) *DifferentialPrivacyEngine {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	engine, err := NewDifferentialPrivacyEngine(epsilon, rand.New(rand.NewSource(seed)), logger)
	require.NoError(t, err)
	return engine
}

func TestNewDifferentialPrivacyEngineRejectsNonPositiveEpsilon(t *testing.T) {
	_, err := NewDifferentialPrivacyEngine(0, nil, nil)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidEpsilon, appErr.Code)

	_, err = NewDifferentialPrivacyEngine(-1.5, nil, nil)
	assert.Error(t, err)
}

func TestAddLaplaceNoiseReproducible(t *testing.T) {
	data := []interface{}{10.0, 20.0, 30.0}

	first := newTestDPEngine(t, 1.0, 42).AddLaplaceNoise(data, 1.0)
	second := newTestDPEngine(t, 1.0, 42).AddLaplaceNoise(data, 1.0)

	assert.Equal(t, first, second)
}

func TestAddLaplaceNoisePerturbsValues(t *testing.T) {
	engine := newTestDPEngine(t, 1.0, 42)

	data := make([]interface{}, 100)
	for i := range data {
		data[i] = 50.0
	}
	noisy := engine.AddLaplaceNoise(data, 1.0)

	changed := 0
	for _, v := range noisy {
		if v.(float64) != 50.0 {
			changed++
		}
	}
	assert.Greater(t, changed, 50)
}

func TestAddLaplaceNoiseTypePreservation(t *testing.T) {
	engine := newTestDPEngine(t, 1.0, 7)

	noisy := engine.AddLaplaceNoise([]interface{}{100, 2.5, nil, "text"}, 1.0)

	_, ok := noisy[0].(int)
	assert.True(t, ok)

	f, ok := noisy[1].(float64)
	assert.True(t, ok)
	assert.Equal(t, math.Round(f*100)/100, f)

	assert.Nil(t, noisy[2])
	assert.Equal(t, "text", noisy[3])
}

func TestAddGaussianNoiseValidatesDelta(t *testing.T) {
	engine := newTestDPEngine(t, 1.0, 1)

	_, err := engine.AddGaussianNoise([]interface{}{1.0}, 1.0, 0)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidDelta, appErr.Code)

	_, err = engine.AddGaussianNoise([]interface{}{1.0}, 1.0, 1)
	assert.Error(t, err)

	noisy, err := engine.AddGaussianNoise([]interface{}{1.0, nil}, 1.0, 1e-5)
	require.NoError(t, err)
	assert.Len(t, noisy, 2)
	assert.Nil(t, noisy[1])
}

func TestSmallerEpsilonMeansMoreNoise(t *testing.T) {
	data := make([]interface{}, 500)
	for i := range data {
		data[i] = 0.0
	}

	tight := newTestDPEngine(t, 10.0, 42).AddLaplaceNoise(data, 1.0)
	loose := newTestDPEngine(t, 0.1, 42).AddLaplaceNoise(data, 1.0)

	var tightSum, looseSum float64
	for i := range data {
		tightSum += math.Abs(tight[i].(float64))
		looseSum += math.Abs(loose[i].(float64))
	}
	assert.Greater(t, looseSum, tightSum)
}

func TestPrivateMeanNearTrueMeanWithLargeEpsilon(t *testing.T) {
	engine := newTestDPEngine(t, 1000.0, 42)

	data := []interface{}{10.0, 20.0, 30.0, 40.0, 50.0}
	mean := engine.PrivateMean(data, 1.0)

	assert.InDelta(t, 30.0, mean, 1.0)
}

func TestPrivateAggregationEmptyInput(t *testing.T) {
	engine := newTestDPEngine(t, 1.0, 1)

	result := engine.ApplyPrivateAggregation([]interface{}{nil, "text"})
	assert.Zero(t, result.Mean)
	assert.Zero(t, result.Std)
}

func TestPrivateAggregationReportsBudget(t *testing.T) {
	engine := newTestDPEngine(t, 0.5, 42)

	data := []interface{}{1.0, 2.0, 3.0, 4.0, 100.0}
	result := engine.ApplyPrivateAggregation(data)

	assert.Equal(t, 1.0, result.Min)
	assert.Equal(t, 100.0, result.Max)
	assert.Equal(t, 0.5, result.PrivacyBudgetUsed)
}

func TestPrivateHistogramNumericBins(t *testing.T) {
	engine := newTestDPEngine(t, 1.0, 42)

	data := make([]interface{}, 200)
	for i := range data {
		data[i] = float64(i % 100)
	}
	result := engine.ApplyPrivateHistogram(data, 10)

	require.Len(t, result.Bins, 10)
	require.Len(t, result.Counts, 10)
	for _, count := range result.Counts {
		assert.GreaterOrEqual(t, count, 0)
	}
}

func TestPrivateHistogramCategorical(t *testing.T) {
	engine := newTestDPEngine(t, 1.0, 42)

	data := []interface{}{"red", "blue", "red", "green", "red", nil}
	result := engine.ApplyPrivateHistogram(data, 10)

	require.Len(t, result.Bins, 3)
	assert.Equal(t, []interface{}{"blue", "green", "red"}, result.Bins)
	for _, count := range result.Counts {
		assert.GreaterOrEqual(t, count, 0)
	}
}

func TestKAnonymitySatisfied(t *testing.T) {
	checker := NewKAnonymityChecker(nil)

	records := []models.Record{
		{"age_band": "25-34", "zip": "972**"},
		{"age_band": "25-34", "zip": "972**"},
		{"age_band": "35-49", "zip": "973**"},
		{"age_band": "35-49", "zip": "973**"},
	}

	result := checker.Check(records, []string{"age_band", "zip"}, 2)
	assert.True(t, result.Satisfied)
	assert.Equal(t, 2, result.MinGroupSize)
	assert.Equal(t, 2, result.TotalGroups)
	assert.Zero(t, result.Violations)
}

func TestKAnonymityViolation(t *testing.T) {
	checker := NewKAnonymityChecker(nil)

	records := []models.Record{
		{"age_band": "25-34", "zip": "972**"},
		{"age_band": "25-34", "zip": "972**"},
		{"age_band": "50+", "zip": "999**"},
	}

	result := checker.Check(records, []string{"age_band", "zip"}, 2)
	assert.False(t, result.Satisfied)
	assert.Equal(t, 1, result.MinGroupSize)
	assert.Equal(t, 1, result.Violations)
}

func TestKAnonymityTrivialCases(t *testing.T) {
	checker := NewKAnonymityChecker(nil)

	assert.True(t, checker.Check(nil, []string{"zip"}, 5).Satisfied)
	assert.True(t, checker.Check([]models.Record{{"a": 1}}, nil, 5).Satisfied)
}
