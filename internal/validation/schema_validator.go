// Package validation checks schemas and generated datasets. Findings come
// back as structured results with human-readable error and warning strings;
// validators never raise and never mutate their input. Callers decide what is
// fatal.
package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inferloop/tabsynth/pkg/interfaces"
	"github.com/inferloop/tabsynth/pkg/models"
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SchemaValidator validates schema definitions, including the per-field-type
// constraint rules, once at schema-load time.
type SchemaValidator struct {
	logger *logrus.Logger
}

// NewSchemaValidator creates a schema validator.
func NewSchemaValidator(logger *logrus.Logger) *SchemaValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &SchemaValidator{logger: logger}
}

// ValidateSchema checks the whole schema and reports every problem found.
func (v *SchemaValidator) ValidateSchema(schema *models.Schema) interfaces.ValidationResult {
	result := interfaces.ValidationResult{Errors: []string{}, Warnings: []string{}}

	if schema == nil {
		result.Errors = append(result.Errors, "schema is missing")
		return result
	}
	if schema.Name == "" {
		result.Errors = append(result.Errors, "schema must have a 'name' field")
	}
	if len(schema.Fields) == 0 {
		result.Errors = append(result.Errors, "schema must have at least one field")
	}

	seen := make(map[string]bool)
	for i, field := range schema.Fields {
		result.Errors = append(result.Errors, v.validateField(field, i)...)
		if field.Name != "" {
			if seen[field.Name] {
				result.Errors = append(result.Errors, fmt.Sprintf("field %d: duplicate field name %q", i, field.Name))
			}
			seen[field.Name] = true
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (v *SchemaValidator) validateField(field models.FieldSpec, index int) []string {
	var errs []string

	if field.Name == "" {
		errs = append(errs, fmt.Sprintf("field %d: missing required property 'name'", index))
	} else if !identifierPattern.MatchString(field.Name) {
		errs = append(errs, fmt.Sprintf("field %d: 'name' must be a valid identifier", index))
	}

	if field.Type == "" {
		errs = append(errs, fmt.Sprintf("field %d: missing required property 'type'", index))
	} else if !isValidType(field.Type) {
		errs = append(errs, fmt.Sprintf("field %d: 'type' must be one of %v", index, models.ValidFieldTypes))
	}

	errs = append(errs, v.validateConstraints(field.Constraints, field.Type, index)...)
	return errs
}

func (v *SchemaValidator) validateConstraints(c models.Constraints, fieldType models.FieldType, index int) []string {
	var errs []string

	if fieldType == models.FieldTypeInteger || fieldType == models.FieldTypeFloat {
		if c.MinVal != nil && c.MaxVal != nil && *c.MinVal > *c.MaxVal {
			errs = append(errs, fmt.Sprintf("field %d: min_val cannot be greater than max_val", index))
		}
	}

	if fieldType == models.FieldTypeDate {
		var start, end time.Time
		var startOK, endOK bool
		if c.StartDate != "" {
			if t, err := time.Parse("2006-01-02", c.StartDate); err != nil {
				errs = append(errs, fmt.Sprintf("field %d: start_date must be in YYYY-MM-DD format", index))
			} else {
				start, startOK = t, true
			}
		}
		if c.EndDate != "" {
			if t, err := time.Parse("2006-01-02", c.EndDate); err != nil {
				errs = append(errs, fmt.Sprintf("field %d: end_date must be in YYYY-MM-DD format", index))
			} else {
				end, endOK = t, true
			}
		}
		if startOK && endOK && start.After(end) {
			errs = append(errs, fmt.Sprintf("field %d: start_date cannot be after end_date", index))
		}
	}

	if fieldType == models.FieldTypeCategorical && c.Categories != nil && len(c.Categories) == 0 {
		errs = append(errs, fmt.Sprintf("field %d: categories must be a non-empty list", index))
	}

	if c.NullPercentage < 0 || c.NullPercentage > 100 {
		errs = append(errs, fmt.Sprintf("field %d: null_percentage must be between 0 and 100", index))
	}

	return errs
}

func isValidType(t models.FieldType) bool {
	for _, valid := range models.ValidFieldTypes {
		if t == valid {
			return true
		}
	}
	return false
}
