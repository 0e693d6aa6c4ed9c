package validation

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/interfaces"
	"github.com/inferloop/tabsynth/pkg/models"
)

// DataValidator checks a generated dataset against its schema. Structural
// problems (missing fields, empty data) are errors; value-level oddities such
// as out-of-bounds numbers or unexpected value kinds are warnings, since
// constraint and privacy passes legitimately reshape values.
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a data validator.
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataValidator{logger: logger}
}

// ValidateData checks every record for schema conformance.
func (v *DataValidator) ValidateData(dataset *models.Dataset, schema *models.Schema) interfaces.ValidationResult {
	result := interfaces.ValidationResult{Errors: []string{}, Warnings: []string{}}

	if dataset == nil || len(dataset.Records) == 0 {
		result.Errors = append(result.Errors, "dataset has no records")
		return result
	}
	if schema == nil {
		result.Errors = append(result.Errors, "schema is missing")
		return result
	}

	for i, record := range dataset.Records {
		for _, field := range schema.Fields {
			value, ok := record[field.Name]
			if !ok {
				result.Errors = append(result.Errors,
					fmt.Sprintf("record %d: missing field %q", i, field.Name))
				continue
			}
			if value == nil {
				continue
			}
			if warning := checkValueKind(value, field); warning != "" {
				result.Warnings = append(result.Warnings, fmt.Sprintf("record %d: %s", i, warning))
			}
		}
		for name := range record {
			if schema.Field(name) == nil {
				result.Errors = append(result.Errors,
					fmt.Sprintf("record %d: unexpected field %q", i, name))
			}
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// checkValueKind spot-checks a value against its field's declared type and
// numeric bounds. Anonymization may turn numerics into labels (age bands),
// so mismatches are reported, never enforced.
func checkValueKind(value interface{}, field models.FieldSpec) string {
	switch field.Type {
	case models.FieldTypeInteger:
		n, ok := value.(int)
		if !ok {
			return fmt.Sprintf("field %q: expected integer, got %T", field.Name, value)
		}
		return checkBounds(float64(n), field)
	case models.FieldTypeFloat:
		f, ok := value.(float64)
		if !ok {
			return fmt.Sprintf("field %q: expected float, got %T", field.Name, value)
		}
		return checkBounds(f, field)
	case models.FieldTypeBoolean:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("field %q: expected boolean, got %T", field.Name, value)
		}
	case models.FieldTypeDate:
		switch value.(type) {
		case time.Time, string:
		default:
			return fmt.Sprintf("field %q: expected date or string, got %T", field.Name, value)
		}
	case models.FieldTypeText, models.FieldTypeCategorical:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("field %q: expected string, got %T", field.Name, value)
		}
	}
	return ""
}

func checkBounds(v float64, field models.FieldSpec) string {
	c := field.Constraints
	if c.MinVal != nil && v < *c.MinVal {
		return fmt.Sprintf("field %q: value %v below min_val %v", field.Name, v, *c.MinVal)
	}
	if c.MaxVal != nil && v > *c.MaxVal {
		return fmt.Sprintf("field %q: value %v above max_val %v", field.Name, v, *c.MaxVal)
	}
	return ""
}
