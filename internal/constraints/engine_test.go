package constraints

import (
	"io"
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(seed int64) *Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewEngine(rand.New(rand.NewSource(seed)), logger)
}

func intColumn(n int) []interface{} {
	column := make([]interface{}, n)
	for i := range column {
		column[i] = i
	}
	return column
}

func countNils(column []interface{}) int {
	nils := 0
	for _, v := range column {
		if v == nil {
			nils++
		}
	}
	return nils
}

func TestApplyNullsExactCount(t *testing.T) {
	e := newTestEngine(1)

	column := intColumn(200)
	e.ApplyNulls(column, 10)

	assert.Equal(t, 20, countNils(column))
	assert.Len(t, column, 200)
}

func TestApplyNullsFloorsFractionalCount(t *testing.T) {
	e := newTestEngine(1)

	// 15% of 10 floors to 1.
	column := intColumn(10)
	e.ApplyNulls(column, 15)

	assert.Equal(t, 1, countNils(column))
}

func TestApplyNullsZeroPercentage(t *testing.T) {
	e := newTestEngine(1)

	column := intColumn(50)
	e.ApplyNulls(column, 0)

	assert.Equal(t, 0, countNils(column))
}

func TestApplyNullsHundredPercent(t *testing.T) {
	e := newTestEngine(1)

	column := intColumn(30)
	e.ApplyNulls(column, 100)

	assert.Equal(t, 30, countNils(column))
}

func TestApplyNullsDeterministic(t *testing.T) {
	first := intColumn(100)
	newTestEngine(42).ApplyNulls(first, 25)

	second := intColumn(100)
	newTestEngine(42).ApplyNulls(second, 25)

	assert.Equal(t, first, second)
}

func TestApplyUniqueKeepsFirstOccurrence(t *testing.T) {
	e := newTestEngine(1)

	column := []interface{}{"a", "b", "a", "c", "b", "d"}
	deduped := e.ApplyUnique(column)

	assert.Equal(t, []interface{}{"a", "b", "c", "d"}, deduped)
}

func TestApplyUniqueCollapsesNils(t *testing.T) {
	e := newTestEngine(1)

	column := []interface{}{nil, "a", nil, "a"}
	deduped := e.ApplyUnique(column)

	assert.Equal(t, []interface{}{nil, "a"}, deduped)
}

func TestApplyUniqueShrinksNarrowRange(t *testing.T) {
	e := newTestEngine(1)

	// 100 draws from a 10-value range can yield at most 10 distinct values.
	column := make([]interface{}, 100)
	for i := range column {
		column[i] = i % 10
	}
	deduped := e.ApplyUnique(column)

	assert.Len(t, deduped, 10)
}

func TestInjectOutliersScalesSelectedValues(t *testing.T) {
	e := newTestEngine(1)

	column := make([]interface{}, 100)
	for i := range column {
		column[i] = 7
	}
	e.InjectOutliers(column, 10)

	changed := 0
	for _, v := range column {
		n := v.(int)
		if n != 7 {
			changed++
			assert.Contains(t, []int{0, 70, 700}, n)
		}
	}
	assert.Equal(t, 10, changed)
}

func TestInjectOutliersSkipsNonNumeric(t *testing.T) {
	e := newTestEngine(1)

	column := []interface{}{"a", nil, "b", "c", "d", "e", "f", "g", "h", "i"}
	e.InjectOutliers(column, 50)

	assert.Equal(t, []interface{}{"a", nil, "b", "c", "d", "e", "f", "g", "h", "i"}, column)
}

func TestInjectDuplicatesExtendsColumn(t *testing.T) {
	e := newTestEngine(1)

	column := intColumn(50)
	extended := e.InjectDuplicates(column, 20)

	require.Len(t, extended, 60)
	original := map[interface{}]bool{}
	for _, v := range extended[:50] {
		original[v] = true
	}
	for _, v := range extended[50:] {
		assert.True(t, original[v], "appended value %v must come from the column", v)
	}
}

func TestInjectDuplicatesZeroPercentage(t *testing.T) {
	e := newTestEngine(1)

	column := intColumn(50)
	extended := e.InjectDuplicates(column, 0)

	assert.Len(t, extended, 50)
}
