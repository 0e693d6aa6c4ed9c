package privacy

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/inferloop/tabsynth/pkg/errors"
)

// DifferentialPrivacyEngine offers calibrated-noise mechanisms and private
// aggregates over columns. Epsilon is supplied once at construction and every
// invocation spends a fresh epsilon; there is no cross-call composition
// accounting, by contract.
type DifferentialPrivacyEngine struct {
	logger  *logrus.Logger
	rng     *rand.Rand
	epsilon float64
}

// AggregationResult holds differentially private summary statistics.
type AggregationResult struct {
	Mean              float64 `json:"mean"`
	Median            float64 `json:"median"`
	Std               float64 `json:"std"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	PrivacyBudgetUsed float64 `json:"privacy_budget_used"`
}

// HistogramResult holds a differentially private histogram. Bins are bin
// centers for numeric data and the distinct values for categorical data.
type HistogramResult struct {
	Bins              []interface{} `json:"bins"`
	Counts            []int         `json:"counts"`
	PrivacyBudgetUsed float64       `json:"privacy_budget_used"`
}

// NewDifferentialPrivacyEngine creates a DP engine for one epsilon budget.
func NewDifferentialPrivacyEngine(epsilon float64, rng *rand.Rand, logger *logrus.Logger) (*DifferentialPrivacyEngine, error) {
	if epsilon <= 0 {
		return nil, errors.NewPrivacyError(errors.CodeInvalidEpsilon,
			fmt.Sprintf("epsilon must be positive, got %g", epsilon))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &DifferentialPrivacyEngine{logger: logger, rng: rng, epsilon: epsilon}, nil
}

// Epsilon returns the engine's privacy budget per invocation.
func (e *DifferentialPrivacyEngine) Epsilon() float64 { return e.epsilon }

// AddLaplaceNoise adds one independent Laplace(0, sensitivity/epsilon) draw
// per non-nil value. Integer sources round to integers, float sources to two
// decimals; nil passes through in place.
func (e *DifferentialPrivacyEngine) AddLaplaceNoise(data []interface{}, sensitivity float64) []interface{} {
	scale := sensitivity / e.epsilon
	return e.perturb(data, func() float64 { return sampleLaplace(e.rng, scale) })
}

// AddGaussianNoise adds one independent Gaussian draw per non-nil value with
// scale sensitivity*sqrt(2*ln(1.25/delta))/epsilon.
func (e *DifferentialPrivacyEngine) AddGaussianNoise(data []interface{}, sensitivity, delta float64) ([]interface{}, error) {
	if delta <= 0 || delta >= 1 {
		return nil, errors.NewPrivacyError(errors.CodeInvalidDelta,
			fmt.Sprintf("delta must be in (0, 1), got %g", delta))
	}
	scale := gaussianScale(sensitivity, e.epsilon, delta)
	return e.perturb(data, func() float64 { return sampleGaussian(e.rng, scale) }), nil
}

func (e *DifferentialPrivacyEngine) perturb(data []interface{}, draw func() float64) []interface{} {
	result := make([]interface{}, len(data))
	for i, item := range data {
		if item == nil {
			result[i] = nil
			continue
		}
		switch v := item.(type) {
		case int:
			result[i] = int(math.Round(float64(v) + draw()))
		case float64:
			result[i] = math.Round((v+draw())*100) / 100
		default:
			result[i] = item
		}
	}
	return result
}

// PrivateMean computes the true mean over non-nil numeric values, then adds a
// single Laplace(0, sensitivity/epsilon) draw, rounded to two decimals.
func (e *DifferentialPrivacyEngine) PrivateMean(data []interface{}, sensitivity float64) float64 {
	values := toFloats(data)
	if len(values) == 0 {
		return 0
	}
	return round2(stat.Mean(values, nil) + sampleLaplace(e.rng, sensitivity/e.epsilon))
}

// PrivateMedian computes the true median, then adds a single Laplace draw.
func (e *DifferentialPrivacyEngine) PrivateMedian(data []interface{}, sensitivity float64) float64 {
	values := toFloats(data)
	if len(values) == 0 {
		return 0
	}
	return round2(median(values) + sampleLaplace(e.rng, sensitivity/e.epsilon))
}

// PrivateStd computes the true population standard deviation, adds a single
// Laplace draw, and clamps the result to be non-negative.
func (e *DifferentialPrivacyEngine) PrivateStd(data []interface{}, sensitivity float64) float64 {
	values := toFloats(data)
	if len(values) == 0 {
		return 0
	}
	noisy := populationStd(values) + sampleLaplace(e.rng, sensitivity/e.epsilon)
	return round2(math.Max(0, noisy))
}

// ApplyPrivateAggregation derives a shared sensitivity of (max-min)/n and
// reuses it across mean, median, and std. That reuse is a documented
// simplification of the source behavior: median and std sensitivity is not
// generally range/n, and this method preserves the simplification rather
// than correcting it. Min and max are reported exactly.
func (e *DifferentialPrivacyEngine) ApplyPrivateAggregation(data []interface{}) *AggregationResult {
	values := toFloats(data)
	if len(values) == 0 {
		return &AggregationResult{}
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	sensitivity := (maxVal - minVal) / float64(len(values))

	clean := make([]interface{}, len(values))
	for i, v := range values {
		clean[i] = v
	}

	return &AggregationResult{
		Mean:              e.PrivateMean(clean, sensitivity),
		Median:            e.PrivateMedian(clean, sensitivity),
		Std:               e.PrivateStd(clean, sensitivity),
		Min:               minVal,
		Max:               maxVal,
		PrivacyBudgetUsed: e.epsilon,
	}
}

// ApplyPrivateHistogram builds a fixed-width histogram for numeric data or a
// distinct-value frequency table for categorical data, adds an independent
// Laplace(0, 1/epsilon) draw to each count, and clamps noisy counts to >= 0.
func (e *DifferentialPrivacyEngine) ApplyPrivateHistogram(data []interface{}, bins int) *HistogramResult {
	clean := make([]interface{}, 0, len(data))
	for _, item := range data {
		if item != nil {
			clean = append(clean, item)
		}
	}
	if len(clean) == 0 {
		return &HistogramResult{}
	}

	var centers []interface{}
	var counts []int
	if isNumeric(clean[0]) {
		centers, counts = numericHistogram(toFloats(clean), bins)
	} else {
		centers, counts = frequencyTable(clean)
	}

	// Adding or removing one record changes any count by at most 1.
	noisy := make([]int, len(counts))
	for i, count := range counts {
		n := int(math.Round(float64(count) + sampleLaplace(e.rng, 1.0/e.epsilon)))
		if n < 0 {
			n = 0
		}
		noisy[i] = n
	}

	return &HistogramResult{
		Bins:              centers,
		Counts:            noisy,
		PrivacyBudgetUsed: e.epsilon,
	}
}

func numericHistogram(values []float64, bins int) ([]interface{}, []int) {
	if bins <= 0 {
		bins = 10
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}

	if maxVal == minVal {
		return []interface{}{minVal}, []int{len(values)}
	}

	width := (maxVal - minVal) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - minVal) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	centers := make([]interface{}, bins)
	for i := range centers {
		centers[i] = minVal + width*(float64(i)+0.5)
	}
	return centers, counts
}

func frequencyTable(values []interface{}) ([]interface{}, []int) {
	freq := make(map[string]int)
	for _, v := range values {
		freq[fmt.Sprintf("%v", v)]++
	}

	keys := make([]string, 0, len(freq))
	for key := range freq {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	centers := make([]interface{}, len(keys))
	counts := make([]int, len(keys))
	for i, key := range keys {
		centers[i] = key
		counts[i] = freq[key]
	}
	return centers, counts
}

func isNumeric(v interface{}) bool {
	switch v.(type) {
	case int, float64:
		return true
	default:
		return false
	}
}

// toFloats extracts the non-nil numeric values, preserving order.
func toFloats(data []interface{}) []float64 {
	values := make([]float64, 0, len(data))
	for _, item := range data {
		switch v := item.(type) {
		case int:
			values = append(values, float64(v))
		case float64:
			values = append(values, v)
		}
	}
	return values
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// populationStd divides by n, not n-1, matching the statistic the noise
// calibration was written against.
func populationStd(values []float64) float64 {
	mean := stat.Mean(values, nil)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
