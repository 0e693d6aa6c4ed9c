package models

import (
	"time"
)

// Record maps field names to generated values. Values are strings, int,
// float64, bool, time.Time, or nil.
type Record map[string]interface{}

// Dataset is the output of one generation run: the records plus the metadata
// needed to reproduce or export them.
type Dataset struct {
	ID           string       `json:"id"`
	SchemaName   string       `json:"schema_name"`
	FieldOrder   []string     `json:"field_order"`
	Records      []Record     `json:"records"`
	Seed         int64        `json:"seed"`
	PrivacyLevel PrivacyLevel `json:"privacy_level"`
	GeneratedAt  time.Time    `json:"generated_at"`
}

// Column extracts one field across all records, preserving record order.
// Missing entries surface as nil.
func (d *Dataset) Column(field string) []interface{} {
	column := make([]interface{}, len(d.Records))
	for i, record := range d.Records {
		column[i] = record[field]
	}
	return column
}

// SetColumn writes a column back into the records, position by position.
// Entries beyond the column length are left untouched.
func (d *Dataset) SetColumn(field string, values []interface{}) {
	for i := range d.Records {
		if i >= len(values) {
			break
		}
		d.Records[i][field] = values[i]
	}
}

// GenerationRequest carries the user-chosen parameters for one run.
type GenerationRequest struct {
	Schema              *Schema      `json:"schema"`
	Rows                int          `json:"rows"`
	Seed                int64        `json:"seed"`
	PrivacyLevel        PrivacyLevel `json:"privacy_level"`
	MissingPercentage   float64      `json:"missing_percentage"`
	OutlierPercentage   float64      `json:"outlier_percentage"`
	DuplicatePercentage float64      `json:"duplicate_percentage"`
}
