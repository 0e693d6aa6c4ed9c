package generators

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/errors"
	"github.com/inferloop/tabsynth/pkg/models"
)

const dateLayout = "2006-01-02"

// DateGenerator synthesizes date and time columns. The base sample is uniform
// over [start_date, end_date] at day or second granularity; behavioral
// subtypes layer a bias on top (weekday signups, business-hour transactions,
// evening posts, minute-aligned sensor timestamps).
type DateGenerator struct {
	logger   *logrus.Logger
	rng      *rand.Rand
	subtypes map[string]func(models.Constraints) (interface{}, error)
}

// NewDateGenerator creates the date family generator.
func NewDateGenerator(rng *rand.Rand, logger *logrus.Logger) *DateGenerator {
	if logger == nil {
		logger = logrus.New()
	}

	g := &DateGenerator{logger: logger, rng: rng}
	g.subtypes = map[string]func(models.Constraints) (interface{}, error){
		"date":             g.generateDate,
		"datetime":         g.generateDatetime,
		"time":             g.generateTime,
		"date_range":       g.generateDateRange,
		"signup_date":      g.generateSignupDate,
		"transaction_date": g.generateTransactionDate,
		"hire_date":        g.generateHireDate,
		"visit_date":       g.generateVisitDate,
		"post_date":        g.generatePostDate,
		"sensor_timestamp": g.generateSensorTimestamp,
	}
	return g
}

// Family returns the family name.
func (g *DateGenerator) Family() string { return "date" }

// Subtypes returns the recognized subtype strings.
func (g *DateGenerator) Subtypes() []string {
	names := make([]string, 0, len(g.subtypes))
	for name := range g.subtypes {
		names = append(names, name)
	}
	return names
}

// Generate produces count date/time values of the given subtype. Unknown
// subtypes fail the column. A failed individual value falls back to the
// current wall-clock timestamp; that fallback path is the one place a seeded
// run is not reproducible.
func (g *DateGenerator) Generate(count int, subtype string, constraints models.Constraints) ([]interface{}, error) {
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
			}).Debug("date value synthesis failed, using fallback")
			value = time.Now()
		}
		values = append(values, value)
	}

	return values, nil
}

// bounds parses the start/end constraints, defaulting to 2020-01-01 through
// 2024-12-31.
func (g *DateGenerator) bounds(c models.Constraints) (time.Time, time.Time, error) {
	startStr, endStr := c.StartDate, c.EndDate
	if startStr == "" {
		startStr = "2020-01-01"
	}
	if endStr == "" {
		endStr = "2024-12-31"
	}

	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q: %w", startStr, err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q: %w", endStr, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date %q precedes start_date %q", endStr, startStr)
	}

	return start, end, nil
}

// randDate draws a uniform date at day granularity.
func (g *DateGenerator) randDate(c models.Constraints) (time.Time, error) {
	start, end, err := g.bounds(c)
	if err != nil {
		return time.Time{}, err
	}
	days := int(end.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, g.rng.Intn(days+1)), nil
}

// randDatetime draws a uniform timestamp at second granularity.
func (g *DateGenerator) randDatetime(c models.Constraints) (time.Time, error) {
	start, end, err := g.bounds(c)
	if err != nil {
		return time.Time{}, err
	}
	seconds := int64(end.Sub(start).Seconds())
	return start.Add(time.Duration(g.rng.Int63n(seconds+1)) * time.Second), nil
}

func (g *DateGenerator) generateDate(c models.Constraints) (interface{}, error) {
	return g.randDate(c)
}

func (g *DateGenerator) generateDatetime(c models.Constraints) (interface{}, error) {
	return g.randDatetime(c)
}

// generateTime produces a clock time as an HH:MM:SS string.
func (g *DateGenerator) generateTime(models.Constraints) (interface{}, error) {
	seconds := g.rng.Intn(24 * 3600)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60), nil
}

// generateDateRange produces a composite "{start} to {end}" string where the
// end lies 1 to 30 days after the start.
func (g *DateGenerator) generateDateRange(c models.Constraints) (interface{}, error) {
	start, err := g.randDate(c)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 1+g.rng.Intn(30))
	return fmt.Sprintf("%s to %s", start.Format(dateLayout), end.Format(dateLayout)), nil
}

// generateSignupDate biases toward weekdays: with probability 0.7 the drawn
// timestamp is advanced day by day until it lands on a weekday.
func (g *DateGenerator) generateSignupDate(c models.Constraints) (interface{}, error) {
	shift := g.rng.Float64() < 0.7
	base, err := g.randDatetime(c)
	if err != nil {
		return nil, err
	}
	if shift {
		for base.Weekday() == time.Saturday || base.Weekday() == time.Sunday {
			base = base.AddDate(0, 0, 1)
		}
	}
	return base, nil
}

// generateTransactionDate overwrites the time of day with a business-hours
// draw (09:00-17:59:59) with probability 0.6.
func (g *DateGenerator) generateTransactionDate(c models.Constraints) (interface{}, error) {
	base, err := g.randDatetime(c)
	if err != nil {
		return nil, err
	}
	if g.rng.Float64() < 0.6 {
		base = replaceClock(base, 9+g.rng.Intn(9), g.rng.Intn(60), g.rng.Intn(60))
	}
	return base, nil
}

func (g *DateGenerator) generateHireDate(c models.Constraints) (interface{}, error) {
	return g.randDate(c)
}

func (g *DateGenerator) generateVisitDate(c models.Constraints) (interface{}, error) {
	return g.randDatetime(c)
}

// generatePostDate overwrites the time of day with an evening draw
// (18:00-23:59:59) with probability 0.4.
func (g *DateGenerator) generatePostDate(c models.Constraints) (interface{}, error) {
	base, err := g.randDatetime(c)
	if err != nil {
		return nil, err
	}
	if g.rng.Float64() < 0.4 {
		base = replaceClock(base, 18+g.rng.Intn(6), g.rng.Intn(60), g.rng.Intn(60))
	}
	return base, nil
}

// generateSensorTimestamp truncates seconds and finer precision to zero.
func (g *DateGenerator) generateSensorTimestamp(c models.Constraints) (interface{}, error) {
	base, err := g.randDatetime(c)
	if err != nil {
		return nil, err
	}
	return base.Truncate(time.Minute), nil
}

func replaceClock(t time.Time, hour, min, sec int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, min, sec, 0, t.Location())
}
