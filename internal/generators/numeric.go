package generators

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/errors"
	"github.com/inferloop/tabsynth/pkg/models"
)

// NumericGenerator synthesizes integer and float columns. Subtypes carry the
// value shape: most are uniform draws, while salary/score/age follow a normal
// distribution and transaction_amount a log-normal, all clamped to the
// requested bounds afterwards.
type NumericGenerator struct {
	logger   *logrus.Logger
	rng      *rand.Rand
	subtypes map[string]func(models.Constraints) (interface{}, error)
}

// NewNumericGenerator creates the numeric family generator.
func NewNumericGenerator(rng *rand.Rand, logger *logrus.Logger) *NumericGenerator {
	if logger == nil {
		logger = logrus.New()
	}

	g := &NumericGenerator{logger: logger, rng: rng}
	g.subtypes = map[string]func(models.Constraints) (interface{}, error){
		"integer":            g.generateInteger,
		"float":              g.generateFloat,
		"percentage":         g.generatePercentage,
		"currency":           g.generateCurrency,
		"id":                 g.generateID,
		"transaction_amount": g.generateTransactionAmount,
		"salary":             g.generateSalary,
		"age":                g.generateAge,
		"temperature":        g.generateTemperature,
		"humidity":           g.generateHumidity,
		"latitude":           g.generateLatitude,
		"longitude":          g.generateLongitude,
		"rating":             g.generateRating,
		"score":              g.generateScore,
	}
	return g
}

// Family returns the family name.
func (g *NumericGenerator) Family() string { return "numeric" }

// Subtypes returns the recognized subtype strings.
func (g *NumericGenerator) Subtypes() []string {
	names := make([]string, 0, len(g.subtypes))
	for name := range g.subtypes {
		names = append(names, name)
	}
	return names
}

// Generate produces count numeric values of the given subtype. An unknown
// subtype fails the whole column; a failed individual draw falls back to a
// uniform integer in [1,100] so one bad value never aborts a batch.
func (g *NumericGenerator) Generate(count int, subtype string, constraints models.Constraints) ([]interface{}, error) {
	fn, ok := g.subtypes[subtype]
	if !ok {
		return nil, errors.NewUnknownSubtypeError(g.Family(), subtype)
	}

	values := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		value, err := fn(constraints)
		if err != nil {
			g.logger.WithFields(logrus.Fields{
				"subtype": subtype,
				"error":   err,
			}).Debug("numeric value synthesis failed, using fallback")
			value = g.rng.Intn(100) + 1
		}
		values = append(values, value)
	}

	return values, nil
}

func (g *NumericGenerator) generateInteger(c models.Constraints) (interface{}, error) {
	return g.randInt(int(c.MinOr(0)), int(c.MaxOr(100)))
}

func (g *NumericGenerator) generateFloat(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(0), c.MaxOr(100))
	if err != nil {
		return nil, err
	}
	return round(value, c.DecimalsOr(2)), nil
}

func (g *NumericGenerator) generatePercentage(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(0), c.MaxOr(100))
	if err != nil {
		return nil, err
	}
	return round(value, 2), nil
}

func (g *NumericGenerator) generateCurrency(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(0), c.MaxOr(10000))
	if err != nil {
		return nil, err
	}
	return round(value, 2), nil
}

func (g *NumericGenerator) generateID(c models.Constraints) (interface{}, error) {
	return g.randInt(int(c.MinOr(1)), int(c.MaxOr(999999)))
}

// generateTransactionAmount draws log-normal(mu=ln 100, sigma=1) and clamps
// to the bounds, which skews mass toward small amounts with a long tail.
func (g *NumericGenerator) generateTransactionAmount(c models.Constraints) (interface{}, error) {
	minVal, maxVal := c.MinOr(0.01), c.MaxOr(10000)
	if minVal > maxVal {
		return nil, fmt.Errorf("min_val %v exceeds max_val %v", minVal, maxVal)
	}
	value := math.Exp(math.Log(100) + 1.0*g.rng.NormFloat64())
	return round(clamp(value, minVal, maxVal), 2), nil
}

func (g *NumericGenerator) generateSalary(c models.Constraints) (interface{}, error) {
	minVal, maxVal := c.MinOr(30000), c.MaxOr(200000)
	if minVal > maxVal {
		return nil, fmt.Errorf("min_val %v exceeds max_val %v", minVal, maxVal)
	}
	mean := (minVal + maxVal) / 2
	std := (maxVal - minVal) / 6
	value := mean + std*g.rng.NormFloat64()
	return round(clamp(value, minVal, maxVal), 2), nil
}

// generateAge samples normal(35, 15), truncates to integer, and clamps.
func (g *NumericGenerator) generateAge(c models.Constraints) (interface{}, error) {
	minVal, maxVal := c.MinOr(18), c.MaxOr(80)
	if minVal > maxVal {
		return nil, fmt.Errorf("min_val %v exceeds max_val %v", minVal, maxVal)
	}
	value := float64(int(35 + 15*g.rng.NormFloat64()))
	return int(clamp(value, minVal, maxVal)), nil
}

func (g *NumericGenerator) generateTemperature(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(-10), c.MaxOr(40))
	if err != nil {
		return nil, err
	}
	return round(value, 1), nil
}

func (g *NumericGenerator) generateHumidity(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(0), c.MaxOr(100))
	if err != nil {
		return nil, err
	}
	return round(value, 1), nil
}

func (g *NumericGenerator) generateLatitude(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(-90), c.MaxOr(90))
	if err != nil {
		return nil, err
	}
	return round(value, 6), nil
}

func (g *NumericGenerator) generateLongitude(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(-180), c.MaxOr(180))
	if err != nil {
		return nil, err
	}
	return round(value, 6), nil
}

func (g *NumericGenerator) generateRating(c models.Constraints) (interface{}, error) {
	value, err := g.randFloat(c.MinOr(1), c.MaxOr(5))
	if err != nil {
		return nil, err
	}
	return round(value, 1), nil
}

func (g *NumericGenerator) generateScore(c models.Constraints) (interface{}, error) {
	minVal, maxVal := c.MinOr(0), c.MaxOr(100)
	if minVal > maxVal {
		return nil, fmt.Errorf("min_val %v exceeds max_val %v", minVal, maxVal)
	}
	mean := (minVal + maxVal) / 2
	std := (maxVal - minVal) / 6
	value := mean + std*g.rng.NormFloat64()
	return round(clamp(value, minVal, maxVal), 1), nil
}

// randInt draws a uniform integer in the closed interval [min, max].
func (g *NumericGenerator) randInt(min, max int) (interface{}, error) {
	if min > max {
		return nil, fmt.Errorf("min_val %d exceeds max_val %d", min, max)
	}
	return min + g.rng.Intn(max-min+1), nil
}

// randFloat draws a uniform float in [min, max).
func (g *NumericGenerator) randFloat(min, max float64) (float64, error) {
	if min > max {
		return 0, fmt.Errorf("min_val %v exceeds max_val %v", min, max)
	}
	return min + (max-min)*g.rng.Float64(), nil
}

func clamp(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

func round(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(value*shift) / shift
}
