package interfaces

import (
	"io"

	"github.com/inferloop/tabsynth/pkg/models"
)

// ValueGenerator produces a column of values for one generator family.
// Implementations dispatch on the exact subtype string and return an
// UnknownSubtypeError for unrecognized subtypes; individual value failures
// are replaced by a documented fallback rather than aborting the batch.
type ValueGenerator interface {
	// Family returns the family name ("text", "numeric", "date").
	Family() string

	// Subtypes returns the recognized subtype strings in a stable order.
	Subtypes() []string

	// Generate produces count values for the given subtype under the given
	// constraints.
	Generate(count int, subtype string, constraints models.Constraints) ([]interface{}, error)
}

// Anonymizer rewrites a whole column according to a privacy level. The low
// level is identity; null entries pass through untouched at every level.
type Anonymizer interface {
	Anonymize(column []interface{}, fieldType string, level models.PrivacyLevel) []interface{}
}

// Exporter serializes a dataset into one concrete output format. Exporters
// must serialize nil, numeric, string, boolean, and time values faithfully.
type Exporter interface {
	Format() string
	Export(w io.Writer, dataset *models.Dataset) error
}

// SchemaValidator checks a schema and reports findings as data, never as an
// error: validation problems are not exceptional, they are the result.
type SchemaValidator interface {
	ValidateSchema(schema *models.Schema) ValidationResult
}

// ValidationResult is the structured outcome of a validation pass.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
