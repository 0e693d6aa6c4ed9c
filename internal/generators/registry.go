package generators

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/errors"
	"github.com/inferloop/tabsynth/pkg/models"
)

// Registry owns one generator per family and dispatches column generation by
// field type. Every family draws from the same *rand.Rand, created once per
// run and threaded through explicitly, so a fixed seed plus a fixed call
// order reproduces a run bit for bit.
type Registry struct {
	logger  *logrus.Logger
	rng     *rand.Rand
	text    *TextGenerator
	numeric *NumericGenerator
	date    *DateGenerator
}

// defaultCategories backs categorical fields that declare no categories.
var defaultCategories = []string{"Option1", "Option2", "Option3"}

// NewRegistry creates a Registry around a shared random source.
func NewRegistry(rng *rand.Rand, logger *logrus.Logger) *Registry {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Registry{
		logger:  logger,
		rng:     rng,
		text:    NewTextGenerator(rng, logger),
		numeric: NewNumericGenerator(rng, logger),
		date:    NewDateGenerator(rng, logger),
	}
}

// Text returns the text family generator.
func (r *Registry) Text() *TextGenerator { return r.text }

// Numeric returns the numeric family generator.
func (r *Registry) Numeric() *NumericGenerator { return r.numeric }

// Date returns the date family generator.
func (r *Registry) Date() *DateGenerator { return r.date }

// GenerateColumn produces count values for one field. Boolean and categorical
// fields have no subtype family and are synthesized inline; everything else is
// dispatched to the owning family by exact subtype string.
func (r *Registry) GenerateColumn(count int, field models.FieldSpec) ([]interface{}, error) {
	if count <= 0 {
		return nil, errors.NewGenerationError(errors.CodeInvalidRowCount,
			fmt.Sprintf("row count must be positive, got %d", count))
	}

	switch field.Type {
	case models.FieldTypeText:
		return r.text.Generate(count, field.Subtype, field.Constraints)
	case models.FieldTypeInteger, models.FieldTypeFloat:
		return r.numeric.Generate(count, field.Subtype, field.Constraints)
	case models.FieldTypeDate:
		return r.date.Generate(count, field.Subtype, field.Constraints)
	case models.FieldTypeBoolean:
		return r.generateBooleans(count), nil
	case models.FieldTypeCategorical:
		return r.generateCategorical(count, field.Constraints), nil
	default:
		return nil, errors.NewValidationError(errors.CodeInvalidInput,
			fmt.Sprintf("unknown field type: %q", field.Type))
	}
}

func (r *Registry) generateBooleans(count int) []interface{} {
	values := make([]interface{}, count)
	for i := range values {
		values[i] = r.rng.Intn(2) == 1
	}
	return values
}

func (r *Registry) generateCategorical(count int, constraints models.Constraints) []interface{} {
	categories := constraints.Categories
	if len(categories) == 0 {
		categories = defaultCategories
	}

	values := make([]interface{}, count)
	for i := range values {
		values[i] = categories[r.rng.Intn(len(categories))]
	}
	return values
}

// SubtypesFor reports the recognized subtypes for a field type, sorted.
// Boolean and categorical fields have none.
func (r *Registry) SubtypesFor(fieldType models.FieldType) []string {
	var subtypes []string
	switch fieldType {
	case models.FieldTypeText:
		subtypes = r.text.Subtypes()
	case models.FieldTypeInteger, models.FieldTypeFloat:
		subtypes = r.numeric.Subtypes()
	case models.FieldTypeDate:
		subtypes = r.date.Subtypes()
	}
	sort.Strings(subtypes)
	return subtypes
}
