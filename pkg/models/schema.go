package models

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FieldType identifies the generator family responsible for a field.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeInteger     FieldType = "integer"
	FieldTypeFloat       FieldType = "float"
	FieldTypeDate        FieldType = "date"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeCategorical FieldType = "categorical"
)

// ValidFieldTypes lists every recognized field type in a stable order.
var ValidFieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeInteger,
	FieldTypeFloat,
	FieldTypeDate,
	FieldTypeBoolean,
	FieldTypeCategorical,
}

// PrivacyLevel controls how aggressively a generation run anonymizes columns.
type PrivacyLevel string

const (
	PrivacyLevelLow    PrivacyLevel = "low"
	PrivacyLevelMedium PrivacyLevel = "medium"
	PrivacyLevelHigh   PrivacyLevel = "high"
)

// Constraints holds the per-field generation constraints. All members are
// optional; zero values mean "not set" except where a pointer distinguishes
// an explicit zero from absence.
type Constraints struct {
	MinVal         *float64 `json:"min_val,omitempty" yaml:"min_val,omitempty"`
	MaxVal         *float64 `json:"max_val,omitempty" yaml:"max_val,omitempty"`
	NullPercentage float64  `json:"null_percentage,omitempty" yaml:"null_percentage,omitempty"`
	Unique         bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Categories     []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Pattern        string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	StartDate      string   `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	DecimalPlaces  *int     `json:"decimal_places,omitempty" yaml:"decimal_places,omitempty"`
}

// Float returns a pointer to v, for building constraint literals.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building constraint literals.
func Int(v int) *int { return &v }

// MinOr returns MinVal or the supplied default when unset.
func (c Constraints) MinOr(def float64) float64 {
	if c.MinVal != nil {
		return *c.MinVal
	}
	return def
}

// MaxOr returns MaxVal or the supplied default when unset.
func (c Constraints) MaxOr(def float64) float64 {
	if c.MaxVal != nil {
		return *c.MaxVal
	}
	return def
}

// DecimalsOr returns DecimalPlaces or the supplied default when unset.
func (c Constraints) DecimalsOr(def int) int {
	if c.DecimalPlaces != nil {
		return *c.DecimalPlaces
	}
	return def
}

// FieldSpec describes one column of a schema: which generator family produces
// it, the subtype within that family, and the constraints applied afterwards.
type FieldSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Type        FieldType   `json:"type" yaml:"type"`
	Subtype     string      `json:"subtype,omitempty" yaml:"subtype,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Constraints Constraints `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

// Schema is an ordered collection of field specifications. Field order defines
// column order in generated records.
type Schema struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// FieldNames returns the field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the spec for the named field, or nil when absent.
func (s *Schema) Field(name string) *FieldSpec {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// LoadSchema reads a schema definition from a JSON or YAML file, selected by
// extension. Structural validation is the validation package's job; this only
// fails on undecodable input.
func LoadSchema(path string) (*Schema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var schema Schema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &schema); err != nil {
			return nil, fmt.Errorf("failed to parse YAML schema: %w", err)
		}
	default:
		if err := json.Unmarshal(raw, &schema); err != nil {
			return nil, fmt.Errorf("failed to parse JSON schema: %w", err)
		}
	}

	return &schema, nil
}
