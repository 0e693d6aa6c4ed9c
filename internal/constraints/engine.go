// Package constraints mutates generated columns in place: null injection,
// uniqueness, outlier injection, and duplication. It operates on one column
// at a time; record-level duplication lives in the synthesis orchestrator.
package constraints

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Engine applies column-level constraints using the shared run random source.
type Engine struct {
	logger *logrus.Logger
	rng    *rand.Rand
}

// outlierFactors are the multipliers applied to values selected for outlier
// injection, chosen uniformly.
var outlierFactors = []float64{0.1, 10, 100}

// NewEngine creates a constraint engine around the shared random source.
func NewEngine(rng *rand.Rand, logger *logrus.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{logger: logger, rng: rng}
}

// ApplyNulls sets floor(n*percentage/100) distinct positions to nil, chosen
// uniformly without replacement. The count is exact, not approximate.
func (e *Engine) ApplyNulls(column []interface{}, percentage float64) {
	if percentage <= 0 || len(column) == 0 {
		return
	}

	nullCount := int(float64(len(column)) * percentage / 100)
	if nullCount <= 0 {
		return
	}
	if nullCount > len(column) {
		nullCount = len(column)
	}

	for _, idx := range e.samplePositions(len(column), nullCount) {
		column[idx] = nil
	}
}

// ApplyUnique deduplicates the column by first occurrence. It may return
// fewer values than requested and never regenerates to restore the count;
// callers get a shorter column, not an error.
func (e *Engine) ApplyUnique(column []interface{}) []interface{} {
	seen := make(map[interface{}]struct{}, len(column))
	deduped := make([]interface{}, 0, len(column))

	for _, value := range column {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		deduped = append(deduped, value)
	}

	if len(deduped) < len(column) {
		e.logger.WithFields(logrus.Fields{
			"requested": len(column),
			"distinct":  len(deduped),
		}).Debug("unique constraint shrank column")
	}
	return deduped
}

// InjectOutliers multiplies floor(n*percentage/100) numeric values by one of
// {0.1, 10, 100}. Non-numeric and nil entries at selected positions are left
// alone.
func (e *Engine) InjectOutliers(column []interface{}, percentage float64) {
	if percentage <= 0 || len(column) == 0 {
		return
	}

	outlierCount := int(float64(len(column)) * percentage / 100)
	if outlierCount <= 0 {
		return
	}
	if outlierCount > len(column) {
		outlierCount = len(column)
	}

	for _, idx := range e.samplePositions(len(column), outlierCount) {
		factor := outlierFactors[e.rng.Intn(len(outlierFactors))]
		switch v := column[idx].(type) {
		case int:
			column[idx] = int(float64(v) * factor)
		case float64:
			column[idx] = v * factor
		}
	}
}

// InjectDuplicates samples floor(n*percentage/100) existing values with
// replacement and appends them, extending the column.
func (e *Engine) InjectDuplicates(column []interface{}, percentage float64) []interface{} {
	if percentage <= 0 || len(column) == 0 {
		return column
	}

	duplicateCount := int(float64(len(column)) * percentage / 100)
	for i := 0; i < duplicateCount; i++ {
		column = append(column, column[e.rng.Intn(len(column))])
	}
	return column
}

// samplePositions picks count distinct indices in [0, n) uniformly without
// replacement via a partial Fisher-Yates shuffle.
func (e *Engine) samplePositions(n, count int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	for i := 0; i < count; i++ {
		j := i + e.rng.Intn(n-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices[:count]
}
