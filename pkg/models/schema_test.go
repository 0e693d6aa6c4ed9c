package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSchema(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSchemaJSON(t *testing.T) {
	path := writeTempSchema(t, "schema.json", `{
		"name": "orders",
		"fields": [
			{"name": "id", "type": "integer", "subtype": "id", "constraints": {"unique": true}},
			{"name": "amount", "type": "float", "subtype": "currency", "constraints": {"min_val": 1, "max_val": 500}}
		]
	}`)

	schema, err := LoadSchema(path)
	require.NoError(t, err)

	assert.Equal(t, "orders", schema.Name)
	require.Len(t, schema.Fields, 2)
	assert.True(t, schema.Fields[0].Constraints.Unique)
	require.NotNil(t, schema.Fields[1].Constraints.MinVal)
	assert.Equal(t, 1.0, *schema.Fields[1].Constraints.MinVal)
	assert.Equal(t, 500.0, *schema.Fields[1].Constraints.MaxVal)
}

func TestLoadSchemaYAML(t *testing.T) {
	path := writeTempSchema(t, "schema.yaml", `
name: sensors
fields:
  - name: reading
    type: float
    subtype: temperature
    constraints:
      min_val: -10
      max_val: 40
      decimal_places: 1
  - name: recorded_at
    type: date
    subtype: sensor_timestamp
    constraints:
      start_date: "2024-01-01"
      end_date: "2024-06-30"
`)

	schema, err := LoadSchema(path)
	require.NoError(t, err)

	assert.Equal(t, "sensors", schema.Name)
	require.Len(t, schema.Fields, 2)
	assert.Equal(t, FieldTypeFloat, schema.Fields[0].Type)
	require.NotNil(t, schema.Fields[0].Constraints.DecimalPlaces)
	assert.Equal(t, 1, *schema.Fields[0].Constraints.DecimalPlaces)
	assert.Equal(t, "2024-01-01", schema.Fields[1].Constraints.StartDate)
}

func TestLoadSchemaBadInput(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeTempSchema(t, "broken.json", `{not json`)
	_, err = LoadSchema(path)
	assert.Error(t, err)
}

func TestConstraintsDefaults(t *testing.T) {
	var c Constraints

	assert.Equal(t, 5.0, c.MinOr(5))
	assert.Equal(t, 10.0, c.MaxOr(10))
	assert.Equal(t, 2, c.DecimalsOr(2))

	c.MinVal = Float(1)
	c.MaxVal = Float(9)
	c.DecimalPlaces = Int(4)
	assert.Equal(t, 1.0, c.MinOr(5))
	assert.Equal(t, 9.0, c.MaxOr(10))
	assert.Equal(t, 4, c.DecimalsOr(2))
}

func TestSchemaFieldHelpers(t *testing.T) {
	schema := &Schema{
		Name: "s",
		Fields: []FieldSpec{
			{Name: "a", Type: FieldTypeText},
			{Name: "b", Type: FieldTypeInteger},
		},
	}

	assert.Equal(t, []string{"a", "b"}, schema.FieldNames())
	require.NotNil(t, schema.Field("b"))
	assert.Equal(t, FieldTypeInteger, schema.Field("b").Type)
	assert.Nil(t, schema.Field("c"))
}

func TestDatasetColumnRoundTrip(t *testing.T) {
	dataset := &Dataset{
		FieldOrder: []string{"x"},
		Records: []Record{
			{"x": 1},
			{"x": 2},
			{"x": 3},
		},
	}

	column := dataset.Column("x")
	assert.Equal(t, []interface{}{1, 2, 3}, column)

	dataset.SetColumn("x", []interface{}{10, 20, 30})
	assert.Equal(t, []interface{}{10, 20, 30}, dataset.Column("x"))
}
